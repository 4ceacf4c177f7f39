package generator

import (
	"testing"
	"time"

	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newYear = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func rowOn(date time.Time) models.MealRow {
	return models.MealRow{
		Quantity:       1,
		RestaurantName: models.RestaurantCanteen,
		MealType:       models.MealTypeSoup,
		Date:           date,
	}
}

func assertCriteriaConsistent(t *testing.T, c models.FilterCriteria) {
	t.Helper()
	assert.Equal(t, c.IncludeRestaurant, c.Restaurant != nil, "restaurant")
	assert.Equal(t, c.IncludeFoodType, c.FoodType != nil, "food type")
	assert.Equal(t, c.IncludeDateRange, c.DaysToInclude != nil, "days to include")
	assert.Equal(t, c.IncludeDateRange, c.StartOffset != nil, "start offset")
}

func TestNewFilterCriteria_DayOffsetPolicy(t *testing.T) {
	testCases := []struct {
		name          string
		date          time.Time
		wantDateRange bool
		wantStart     int
		wantDays      int
	}{
		{"tomorrow", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), false, 0, 0},
		{"day after tomorrow", time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), true, 1, 7},
		{"one week out", time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), true, 7, 1},
		{"unlisted offset", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), false, 0, 0},
		{"past date", time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC), false, 0, 0},
		{"rounds up past half a day", time.Date(2024, time.January, 2, 13, 0, 0, 0, time.UTC), true, 1, 7},
		{"rounds down below half a day", time.Date(2024, time.January, 3, 11, 0, 0, 0, time.UTC), true, 1, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewFilterCriteria(rowOn(tc.date), models.FilterTypeAll, 0, newYear, models.DefaultDateWindows())
			require.NoError(t, err)

			assertCriteriaConsistent(t, c)
			assert.Equal(t, models.FilterTypeAll, c.FilterType)
			assert.True(t, c.IncludeRestaurant)
			assert.Equal(t, models.RestaurantCanteen, *c.Restaurant)
			assert.True(t, c.IncludeFoodType)
			assert.Equal(t, models.MealTypeSoup, *c.FoodType)
			assert.Equal(t, tc.wantDateRange, c.IncludeDateRange)
			if tc.wantDateRange {
				assert.Equal(t, tc.wantStart, *c.StartOffset)
				assert.Equal(t, tc.wantDays, *c.DaysToInclude)
			}
		})
	}
}

func TestNewFilterCriteria_OffsetFromLateToday(t *testing.T) {
	lateToday := time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC)

	c, err := NewFilterCriteria(rowOn(time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)), models.FilterTypeAll, 0, lateToday, models.DefaultDateWindows())
	require.NoError(t, err)

	// 25 hours away rounds to tomorrow, which has no window
	assertCriteriaConsistent(t, c)
	assert.False(t, c.IncludeDateRange)

	c, err = NewFilterCriteria(rowOn(time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)), models.FilterTypeAll, 0, lateToday, models.DefaultDateWindows())
	require.NoError(t, err)
	assert.True(t, c.IncludeDateRange)
	assert.Equal(t, 1, *c.StartOffset)
	assert.Equal(t, 7, *c.DaysToInclude)
}

func TestNewFilterCriteria_None(t *testing.T) {
	c, err := NewFilterCriteria(rowOn(newYear.AddDate(0, 0, 2)), models.FilterTypeNone, 3, newYear, models.DefaultDateWindows())
	require.NoError(t, err)

	assert.Equal(t, models.FilterCriteria{FilterType: models.FilterTypeNone}, c)
}

func TestNewFilterCriteria_MixedPatterns(t *testing.T) {
	row := rowOn(newYear.AddDate(0, 0, 2))
	windows := models.DefaultDateWindows()

	type flags struct{ restaurant, foodType, dateRange bool }
	want := []flags{
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{true, true, false},
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}
	for index, w := range want {
		c, err := NewFilterCriteria(row, models.FilterTypeMixed, index, newYear, windows)
		require.NoError(t, err)

		assertCriteriaConsistent(t, c)
		assert.Equal(t, w, flags{c.IncludeRestaurant, c.IncludeFoodType, c.IncludeDateRange}, "index %d", index)
	}
}

func TestNewFilterCriteria_MixedDateRangeWithoutWindow(t *testing.T) {
	c, err := NewFilterCriteria(rowOn(newYear.AddDate(0, 0, 1)), models.FilterTypeMixed, 2, newYear, models.DefaultDateWindows())
	require.NoError(t, err)

	assertCriteriaConsistent(t, c)
	assert.False(t, c.IncludeRestaurant)
	assert.False(t, c.IncludeFoodType)
	assert.False(t, c.IncludeDateRange)
}

func TestNewFilterCriteria_ZeroWidthWindowIsIgnored(t *testing.T) {
	windows := map[int]models.DateWindow{2: {StartOffset: 1, DaysToInclude: 0}}

	c, err := NewFilterCriteria(rowOn(newYear.AddDate(0, 0, 2)), models.FilterTypeAll, 0, newYear, windows)
	require.NoError(t, err)

	assertCriteriaConsistent(t, c)
	assert.False(t, c.IncludeDateRange)
}

func TestNewFilterCriteria_Errors(t *testing.T) {
	_, err := NewFilterCriteria(rowOn(newYear), "random", 0, newYear, nil)
	assert.ErrorIs(t, err, ErrUnknownFilterType)

	_, err = NewFilterCriteria(rowOn(time.Time{}), models.FilterTypeAll, 0, newYear, nil)
	assert.ErrorIs(t, err, ErrUnrelatableDate)

	_, err = NewFilterCriteria(rowOn(newYear), models.FilterTypeAll, 0, time.Time{}, nil)
	assert.ErrorIs(t, err, ErrUnrelatableDate)
}

func TestCriteriaForOrder_CyclesFilterTypes(t *testing.T) {
	order := models.Order{Number: 1}
	for i := 0; i < 5; i++ {
		order.MealRows = append(order.MealRows, rowOn(newYear.AddDate(0, 0, 2)))
	}

	criteria, err := CriteriaForOrder(order, newYear, models.DefaultDateWindows())
	require.NoError(t, err)

	require.Len(t, criteria, 5)
	var types []models.FilterType
	for _, c := range criteria {
		assertCriteriaConsistent(t, c)
		types = append(types, c.FilterType)
	}
	assert.Equal(t, []models.FilterType{
		models.FilterTypeNone,
		models.FilterTypeAll,
		models.FilterTypeMixed,
		models.FilterTypeNone,
		models.FilterTypeAll,
	}, types)
	// third row is mixed at index 2: date range only
	assert.True(t, criteria[2].IncludeDateRange)
	assert.False(t, criteria[2].IncludeRestaurant)
}

func TestCriteriaForOrder_PropagatesRowErrors(t *testing.T) {
	order := models.Order{Number: 9, MealRows: []models.MealRow{rowOn(newYear), rowOn(time.Time{})}}

	_, err := CriteriaForOrder(order, newYear, nil)
	assert.ErrorIs(t, err, ErrUnrelatableDate)
	assert.ErrorContains(t, err, "order 9 row 1")
}
