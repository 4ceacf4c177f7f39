package factories

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/jaswdr/faker"
)

var ErrInvalidPrice = errors.New("invalid price")

type priceKey struct {
	restaurant models.Restaurant
	mealType   models.MealType
}

// PriceList holds unit prices in cents per restaurant and meal type.
type PriceList map[priceKey]int64

// NewPriceList draws one whole-unit price per restaurant and meal type from fake.
// Entries in overrides, keyed "<restaurant>/<meal type>" in any case, replace the drawn price.
func NewPriceList(fake faker.Faker, axes models.Axes, minPrice, maxPrice int, overrides map[string]float64) (PriceList, error) {
	prices := make(PriceList, len(axes.Restaurants)*len(axes.MealTypes))
	for _, r := range axes.Restaurants {
		for _, mt := range axes.MealTypes {
			prices[priceKey{r, mt}] = int64(fake.IntBetween(minPrice, maxPrice)) * 100
		}
	}
	for key, price := range overrides {
		name, kind, ok := strings.Cut(key, "/")
		if !ok {
			return nil, fmt.Errorf("%w: key %q is not <restaurant>/<meal type>", ErrInvalidPrice, key)
		}
		r, err := models.FoldEnum(strings.TrimSpace(name), models.AllRestaurants())
		if err != nil {
			return nil, err
		}
		mt, err := models.FoldEnum(strings.TrimSpace(kind), models.AllMealTypes())
		if err != nil {
			return nil, err
		}
		if price <= 0 {
			return nil, fmt.Errorf("%w: %s costs %v", ErrInvalidPrice, key, price)
		}
		prices[priceKey{r, mt}] = int64(math.Round(price * 100))
	}
	return prices, nil
}

func (p PriceList) UnitPrice(r models.Restaurant, mt models.MealType) (int64, bool) {
	cents, ok := p[priceKey{r, mt}]
	return cents, ok
}

// FormatCents renders cents as a plain decimal amount, e.g. 12950 -> "129.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseCents reads a decimal amount without currency symbol back into cents.
func ParseCents(s string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return int64(math.Round(f * 100)), nil
}
