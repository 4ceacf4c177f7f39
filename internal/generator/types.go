package generator

import (
	"time"

	"github.com/chrisdamba/mealgen/internal/datetext"
	"github.com/chrisdamba/mealgen/internal/models"
)

// NewOrderRowRecords flattens every row of every fixture, in order.
func NewOrderRowRecords(dataset *models.Dataset) []models.OrderRowRecord {
	var records []models.OrderRowRecord
	timestamp := dataset.GeneratedAt.Unix()
	for _, fixture := range dataset.Fixtures {
		order := fixture.Order
		for i, row := range order.MealRows {
			record := models.OrderRowRecord{
				Timestamp:       timestamp,
				RunID:           dataset.RunID,
				OrderNumber:     int32(order.Number),
				RowIndex:        int32(i),
				Quantity:        int32(row.Quantity),
				RestaurantName:  string(row.RestaurantName),
				MealType:        string(row.MealType),
				Note:            row.Note,
				Date:            row.Date.Format(time.DateOnly),
				DateLabel:       datetext.FormatUI(row.Date),
				PricePerUnit:    row.PricePerUnit,
				TotalRowPrice:   row.TotalRowPrice,
				TotalOrderPrice: order.TotalOrderPrice,
			}
			if row.MealTime != nil {
				mealTime := string(*row.MealTime)
				record.MealTime = &mealTime
			}
			if i < len(fixture.Filters) {
				applyCriteria(&record, fixture.Filters[i])
			}
			records = append(records, record)
		}
	}
	return records
}

func applyCriteria(record *models.OrderRowRecord, c models.FilterCriteria) {
	record.FilterType = string(c.FilterType)
	record.IncludeRestaurant = c.IncludeRestaurant
	record.IncludeFoodType = c.IncludeFoodType
	record.IncludeDateRange = c.IncludeDateRange
	if c.DaysToInclude != nil {
		days := int32(*c.DaysToInclude)
		record.DaysToInclude = &days
	}
	if c.StartOffset != nil {
		start := int32(*c.StartOffset)
		record.StartOffset = &start
	}
}
