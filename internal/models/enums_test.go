package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValues_DropsReverseLookupKeys(t *testing.T) {
	got := EnumValues[MealType]("Soup", "0", "", "Salad", "1", "Soup", "-2", "17")

	assert.Equal(t, []MealType{"Soup", "Salad"}, got)
}

func TestEnumValues_KeepsFloatLikeLabels(t *testing.T) {
	got := EnumValues[Restaurant]("NaN", "Inf", "Infinity", "0x1p-2", "1e3", "2.5", "+-1", "-")

	assert.Equal(t, []Restaurant{"NaN", "Inf", "Infinity", "0x1p-2", "1e3", "2.5", "+-1", "-"}, got)
}

func TestEnumValues_Idempotent(t *testing.T) {
	assert.Equal(t, AllMealTypes(), EnumValues(AllMealTypes()...))
	assert.Equal(t, AllMealTypes(), AllMealTypes())
}

func TestAllValuesInDeclarationOrder(t *testing.T) {
	assert.Equal(t, []Restaurant{"Canteen", "Bistro", "Buffet"}, AllRestaurants())
	assert.Equal(t, []MealType{"Breakfast", "Soup", "Main Course", "Snack", "Salad", "Dessert"}, AllMealTypes())
	assert.Len(t, AllMealTimes(), 6)
	assert.Equal(t, MealTime1100, AllMealTimes()[0])
}

func TestParseEnums(t *testing.T) {
	r, err := ParseRestaurant("Bistro")
	require.NoError(t, err)
	assert.Equal(t, RestaurantBistro, r)

	mt, err := ParseMealType("Main Course")
	require.NoError(t, err)
	assert.Equal(t, MealTypeMainCourse, mt)

	_, err = ParseMealType("main course")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)

	_, err = ParseMealTime("14:00")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestParseEnumList(t *testing.T) {
	got, err := ParseEnumList([]string{"Buffet", "Canteen", "Buffet", "", "3"}, ParseRestaurant)
	require.NoError(t, err)
	assert.Equal(t, []Restaurant{RestaurantBuffet, RestaurantCanteen}, got)

	_, err = ParseEnumList([]string{"Canteen", "Diner"}, ParseRestaurant)
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestInclusionRules(t *testing.T) {
	rules := DefaultInclusionRules()

	assert.True(t, rules.AllowsNote(RestaurantCanteen, "X"))
	assert.False(t, rules.AllowsNote(RestaurantCanteen, ""))
	assert.False(t, rules.AllowsNote(RestaurantBuffet, "X"))

	assert.True(t, rules.AllowsMealTime(RestaurantBistro, MealTypeSoup))
	assert.True(t, rules.AllowsMealTime(RestaurantBistro, MealTypeDessert))
	assert.False(t, rules.AllowsMealTime(RestaurantBistro, MealTypeBreakfast))
	assert.False(t, rules.AllowsMealTime(RestaurantCanteen, MealTypeSnack))
	assert.False(t, rules.AllowsMealTime(RestaurantCanteen, MealTypeSalad))
	assert.False(t, rules.AllowsMealTime(RestaurantBuffet, MealTypeSoup))
}

func TestAxes(t *testing.T) {
	axes := Axes{
		Quantities:  []int{1, 2},
		Restaurants: []Restaurant{RestaurantCanteen},
		MealTypes:   []MealType{MealTypeSoup, MealTypeSalad},
		MealTimes:   []MealTime{MealTime1100},
		Notes:       []string{"", "X"},
	}
	assert.Equal(t, []int{2, 1, 2, 1, 2, 0}, axes.Lengths())

	axes.Dates = []time.Time{time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)}
	c := axes.Resolve([]int{1, 0, 1, 0, 1, 0})
	assert.Equal(t, Combination{
		Quantity:   2,
		Restaurant: RestaurantCanteen,
		MealType:   MealTypeSalad,
		MealTime:   MealTime1100,
		Note:       "X",
		Date:       axes.Dates[0],
	}, c)
}

func TestFoldEnum(t *testing.T) {
	mt, err := FoldEnum("main course", AllMealTypes())
	require.NoError(t, err)
	assert.Equal(t, MealTypeMainCourse, mt)

	_, err = FoldEnum("brunch", AllMealTypes())
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}
