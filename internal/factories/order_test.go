package factories

import (
	"testing"

	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedRow(total string) models.MealRow {
	return models.MealRow{Quantity: 1, RestaurantName: models.RestaurantCanteen, MealType: models.MealTypeSoup, TotalRowPrice: &total}
}

func TestCreateOrder_SumsRowTotals(t *testing.T) {
	factory := &OrderFactory{}

	order := factory.CreateOrder(1, []models.MealRow{pricedRow("89.00"), pricedRow("129.50"), pricedRow("0.10"), pricedRow("0.20")})

	require.NotNil(t, order.TotalOrderPrice)
	assert.Equal(t, "218.80", *order.TotalOrderPrice)
	assert.Equal(t, 1, order.Number)
	assert.Len(t, order.MealRows, 4)
}

func TestCreateOrder_TotalAbsentWhenAnyRowUnpriced(t *testing.T) {
	factory := &OrderFactory{}
	unpriced := models.MealRow{Quantity: 2, RestaurantName: models.RestaurantBistro, MealType: models.MealTypeSalad}

	order := factory.CreateOrder(3, []models.MealRow{pricedRow("50.00"), unpriced})
	assert.Nil(t, order.TotalOrderPrice)

	order = factory.CreateOrder(4, []models.MealRow{pricedRow("not a price")})
	assert.Nil(t, order.TotalOrderPrice)
}

func TestCreateOrders_NumbersFromOne(t *testing.T) {
	factory := &OrderFactory{}
	groupings := [][]models.MealRow{
		{pricedRow("10.00")},
		{pricedRow("10.00"), pricedRow("20.00")},
	}

	orders := factory.CreateOrders(groupings)

	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].Number)
	assert.Equal(t, 2, orders[1].Number)
	assert.Equal(t, "30.00", *orders[1].TotalOrderPrice)
}

func TestFormatAndParseCents(t *testing.T) {
	testCases := []struct {
		cents int64
		text  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{8900, "89.00"},
		{12950, "129.50"},
		{-250, "-2.50"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.text, FormatCents(tc.cents))
		parsed, err := ParseCents(tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.cents, parsed)
	}

	_, err := ParseCents("89 Kč")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
