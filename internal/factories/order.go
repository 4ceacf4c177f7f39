package factories

import (
	"github.com/chrisdamba/mealgen/internal/models"
)

type OrderFactory struct{}

// CreateOrder wraps one sampled grouping. The order total is only set when every
// row carries a parseable row total.
func (of *OrderFactory) CreateOrder(number int, rows []models.MealRow) models.Order {
	order := models.Order{
		Number:   number,
		MealRows: rows,
	}

	var sum int64
	for _, row := range rows {
		if row.TotalRowPrice == nil {
			return order
		}
		cents, err := ParseCents(*row.TotalRowPrice)
		if err != nil {
			return order
		}
		sum += cents
	}
	if len(rows) > 0 {
		total := FormatCents(sum)
		order.TotalOrderPrice = &total
	}
	return order
}

// CreateOrders numbers orders from 1 in grouping order.
func (of *OrderFactory) CreateOrders(groupings [][]models.MealRow) []models.Order {
	orders := make([]models.Order, 0, len(groupings))
	for i, rows := range groupings {
		orders = append(orders, of.CreateOrder(i+1, rows))
	}
	return orders
}
