package models

import "time"

type Order struct {
	Number          int       `json:"number" yaml:"number"`
	MealRows        []MealRow `json:"mealRows" yaml:"mealRows"`
	TotalOrderPrice *string   `json:"totalOrderPrice,omitempty" yaml:"totalOrderPrice,omitempty"`
}

// OrderFixture pairs an order with the filter criteria derived for each of its rows.
type OrderFixture struct {
	Order   Order            `json:"order" yaml:"order"`
	Filters []FilterCriteria `json:"filters" yaml:"filters"`
}

// Dataset is the output of one generator run.
type Dataset struct {
	RunID       string         `json:"runId" yaml:"runId"`
	Today       time.Time      `json:"today" yaml:"today"`
	GeneratedAt time.Time      `json:"generatedAt" yaml:"generatedAt"`
	MealRows    int            `json:"mealRows" yaml:"mealRows"`
	Fixtures    []OrderFixture `json:"fixtures" yaml:"fixtures"`
}

type OrderMetrics struct {
	TotalOrders     int
	TotalRows       int
	SingleRowOrders int
	MultiRowOrders  int
	LargestOrder    int
	RowsWithNote    int
	RowsWithTime    int
	FilterUsage     map[FilterType]int
}

// Metrics summarises the structural variety the dataset covers.
func (d *Dataset) Metrics() OrderMetrics {
	m := OrderMetrics{FilterUsage: make(map[FilterType]int)}
	for _, f := range d.Fixtures {
		m.TotalOrders++
		rows := len(f.Order.MealRows)
		m.TotalRows += rows
		if rows == 1 {
			m.SingleRowOrders++
		} else {
			m.MultiRowOrders++
		}
		if rows > m.LargestOrder {
			m.LargestOrder = rows
		}
		for _, r := range f.Order.MealRows {
			if r.Note != nil {
				m.RowsWithNote++
			}
			if r.MealTime != nil {
				m.RowsWithTime++
			}
		}
		for _, c := range f.Filters {
			m.FilterUsage[c.FilterType]++
		}
	}
	return m
}
