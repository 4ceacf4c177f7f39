package factories

import (
	"github.com/chrisdamba/mealgen/internal/models"
)

type MealRowFactory struct {
	Rules models.InclusionRules
	// Prices enables price simulation when set.
	Prices PriceList
}

// CreateMealRow builds the meal row for one combination. Optional fields the rules
// exclude are left nil rather than zero-valued.
func (mf *MealRowFactory) CreateMealRow(c models.Combination) models.MealRow {
	row := models.MealRow{
		Quantity:       c.Quantity,
		RestaurantName: c.Restaurant,
		MealType:       c.MealType,
		Date:           c.Date,
	}

	if mf.Rules.AllowsNote(c.Restaurant, c.Note) {
		note := c.Note
		row.Note = &note
	}
	if mf.Rules.AllowsMealTime(c.Restaurant, c.MealType) {
		mealTime := c.MealTime
		row.MealTime = &mealTime
	}

	if unit, ok := mf.Prices.UnitPrice(c.Restaurant, c.MealType); ok {
		perUnit := FormatCents(unit)
		total := FormatCents(unit * int64(c.Quantity))
		row.PricePerUnit = &perUnit
		row.TotalRowPrice = &total
	}

	return row
}
