package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownEnumValue = errors.New("unknown enum value")

type Restaurant string

const (
	RestaurantCanteen Restaurant = "Canteen"
	RestaurantBistro  Restaurant = "Bistro"
	RestaurantBuffet  Restaurant = "Buffet"
)

type MealType string

const (
	MealTypeBreakfast  MealType = "Breakfast"
	MealTypeSoup       MealType = "Soup"
	MealTypeMainCourse MealType = "Main Course"
	MealTypeSnack      MealType = "Snack"
	MealTypeSalad      MealType = "Salad"
	MealTypeDessert    MealType = "Dessert"
)

// MealTime is a pickup slot offered for meals that can be ordered by time.
type MealTime string

const (
	MealTime1100 MealTime = "11:00"
	MealTime1130 MealTime = "11:30"
	MealTime1200 MealTime = "12:00"
	MealTime1230 MealTime = "12:30"
	MealTime1300 MealTime = "13:00"
	MealTime1330 MealTime = "13:30"
)

// EnumValues returns the distinct members in declaration order. Empty members and
// members that are plain integers are dropped: they are reverse-lookup keys, not values.
func EnumValues[T ~string](members ...T) []T {
	seen := make(map[T]struct{}, len(members))
	values := make([]T, 0, len(members))
	for _, m := range members {
		if m == "" || isNumeric(string(m)) {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		values = append(values, m)
	}
	return values
}

// isNumeric reports whether s is an optionally signed run of decimal digits.
// Labels such as "NaN" or "Inf" stay values.
func isNumeric(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" || len(s)-len(digits) > 1 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func AllRestaurants() []Restaurant {
	return EnumValues(RestaurantCanteen, RestaurantBistro, RestaurantBuffet)
}

func AllMealTypes() []MealType {
	return EnumValues(
		MealTypeBreakfast,
		MealTypeSoup,
		MealTypeMainCourse,
		MealTypeSnack,
		MealTypeSalad,
		MealTypeDessert,
	)
}

func AllMealTimes() []MealTime {
	return EnumValues(MealTime1100, MealTime1130, MealTime1200, MealTime1230, MealTime1300, MealTime1330)
}

func ParseRestaurant(s string) (Restaurant, error) {
	return parseEnum(s, AllRestaurants(), "restaurant")
}

func ParseMealType(s string) (MealType, error) {
	return parseEnum(s, AllMealTypes(), "meal type")
}

func ParseMealTime(s string) (MealTime, error) {
	return parseEnum(s, AllMealTimes(), "meal time")
}

func parseEnum[T ~string](s string, members []T, kind string) (T, error) {
	for _, m := range members {
		if string(m) == s {
			return m, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, kind, s)
}

// FoldEnum matches s against members ignoring case. Config map keys arrive lowercased.
func FoldEnum[T ~string](s string, members []T) (T, error) {
	for _, m := range members {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", ErrUnknownEnumValue, s)
}

// ParseEnumList runs raw config values through EnumValues and resolves each one.
func ParseEnumList[T ~string](raw []string, parse func(string) (T, error)) ([]T, error) {
	members := make([]T, len(raw))
	for i, r := range raw {
		members[i] = T(r)
	}
	var out []T
	for _, m := range EnumValues(members...) {
		v, err := parse(string(m))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
