package models

import "time"

// Axes holds one value list per dimension, in the canonical combination order.
type Axes struct {
	Quantities  []int
	Restaurants []Restaurant
	MealTypes   []MealType
	MealTimes   []MealTime
	Notes       []string
	Dates       []time.Time
}

// Lengths returns the axis lengths in canonical order.
func (a Axes) Lengths() []int {
	return []int{
		len(a.Quantities),
		len(a.Restaurants),
		len(a.MealTypes),
		len(a.MealTimes),
		len(a.Notes),
		len(a.Dates),
	}
}

// Combination is one value drawn from every axis. It is resolved from an index tuple
// and never kept after the meal row is built.
type Combination struct {
	Quantity   int
	Restaurant Restaurant
	MealType   MealType
	MealTime   MealTime
	Note       string
	Date       time.Time
}

// Resolve maps an index tuple (canonical axis order) to its values.
func (a Axes) Resolve(idx []int) Combination {
	return Combination{
		Quantity:   a.Quantities[idx[0]],
		Restaurant: a.Restaurants[idx[1]],
		MealType:   a.MealTypes[idx[2]],
		MealTime:   a.MealTimes[idx[3]],
		Note:       a.Notes[idx[4]],
		Date:       a.Dates[idx[5]],
	}
}

type MealRow struct {
	Quantity       int        `json:"quantity" yaml:"quantity"`
	RestaurantName Restaurant `json:"restaurantName" yaml:"restaurantName"`
	MealType       MealType   `json:"mealType" yaml:"mealType"`
	MealTime       *MealTime  `json:"mealTime,omitempty" yaml:"mealTime,omitempty"`
	Note           *string    `json:"note,omitempty" yaml:"note,omitempty"`
	Date           time.Time  `json:"date" yaml:"date"`
	PricePerUnit   *string    `json:"pricePerUnit,omitempty" yaml:"pricePerUnit,omitempty"`
	TotalRowPrice  *string    `json:"totalRowPrice,omitempty" yaml:"totalRowPrice,omitempty"`
}

// InclusionRules decide which optional meal row fields survive synthesis.
type InclusionRules struct {
	// NoteExcludedRestaurant takes neither notes nor pickup times.
	NoteExcludedRestaurant Restaurant
	// UntimedMealTypes are never ordered for a pickup time.
	UntimedMealTypes []MealType
}

func DefaultInclusionRules() InclusionRules {
	return InclusionRules{
		NoteExcludedRestaurant: RestaurantBuffet,
		UntimedMealTypes:       []MealType{MealTypeBreakfast, MealTypeSnack, MealTypeSalad},
	}
}

func (r InclusionRules) AllowsNote(restaurant Restaurant, note string) bool {
	return restaurant != r.NoteExcludedRestaurant && note != ""
}

func (r InclusionRules) AllowsMealTime(restaurant Restaurant, mealType MealType) bool {
	if restaurant == r.NoteExcludedRestaurant {
		return false
	}
	for _, t := range r.UntimedMealTypes {
		if t == mealType {
			return false
		}
	}
	return true
}
