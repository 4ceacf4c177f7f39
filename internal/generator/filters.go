package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/mealgen/internal/datetext"
	"github.com/chrisdamba/mealgen/internal/models"
)

var (
	ErrUnknownFilterType = errors.New("unknown filter type")
	ErrUnrelatableDate   = errors.New("meal row date cannot be related to today")
)

// mixed filter patterns, selected by row index modulo their count
const (
	mixedRestaurantOnly = iota
	mixedFoodTypeOnly
	mixedDateRangeOnly
	mixedRestaurantAndFoodType
	mixedPatternCount
)

// NewFilterCriteria derives the order list filters a test applies while looking for
// row. index is the row's position inside its order and picks the mixed pattern.
// The date offset is round((row.Date - today) / 24h) over the raw instants.
func NewFilterCriteria(row models.MealRow, filterType models.FilterType, index int, today time.Time, windows map[int]models.DateWindow) (models.FilterCriteria, error) {
	if row.Date.IsZero() || today.IsZero() {
		return models.FilterCriteria{}, fmt.Errorf("%w: row date %v, today %v", ErrUnrelatableDate, row.Date, today)
	}

	c := models.FilterCriteria{FilterType: filterType}
	offset := datetext.DaysBetween(today, row.Date)
	window, ok := windows[offset]
	hasWindow := ok && window.DaysToInclude > 0

	switch filterType {
	case models.FilterTypeNone:
	case models.FilterTypeAll:
		withRestaurant(&c, row)
		withFoodType(&c, row)
		if hasWindow {
			withDateRange(&c, window)
		}
	case models.FilterTypeMixed:
		switch ((index % mixedPatternCount) + mixedPatternCount) % mixedPatternCount {
		case mixedRestaurantOnly:
			withRestaurant(&c, row)
		case mixedFoodTypeOnly:
			withFoodType(&c, row)
		case mixedDateRangeOnly:
			if hasWindow {
				withDateRange(&c, window)
			}
		case mixedRestaurantAndFoodType:
			withRestaurant(&c, row)
			withFoodType(&c, row)
		}
	default:
		return models.FilterCriteria{}, fmt.Errorf("%w: %q", ErrUnknownFilterType, filterType)
	}
	return c, nil
}

// CriteriaForOrder cycles none, all and mixed across the rows of order.
func CriteriaForOrder(order models.Order, today time.Time, windows map[int]models.DateWindow) ([]models.FilterCriteria, error) {
	criteria := make([]models.FilterCriteria, 0, len(order.MealRows))
	for i, row := range order.MealRows {
		filterType := models.FilterTypeCycle[i%len(models.FilterTypeCycle)]
		c, err := NewFilterCriteria(row, filterType, i, today, windows)
		if err != nil {
			return nil, fmt.Errorf("order %d row %d: %w", order.Number, i, err)
		}
		criteria = append(criteria, c)
	}
	return criteria, nil
}

func withRestaurant(c *models.FilterCriteria, row models.MealRow) {
	restaurant := row.RestaurantName
	c.IncludeRestaurant = true
	c.Restaurant = &restaurant
}

func withFoodType(c *models.FilterCriteria, row models.MealRow) {
	foodType := row.MealType
	c.IncludeFoodType = true
	c.FoodType = &foodType
}

func withDateRange(c *models.FilterCriteria, w models.DateWindow) {
	days, start := w.DaysToInclude, w.StartOffset
	c.IncludeDateRange = true
	c.DaysToInclude = &days
	c.StartOffset = &start
}
