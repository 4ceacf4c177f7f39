package models

type FilterType string

const (
	FilterTypeNone  FilterType = "none"
	FilterTypeAll   FilterType = "all"
	FilterTypeMixed FilterType = "mixed"
)

// FilterTypeCycle is the rotation applied across the rows of one order.
var FilterTypeCycle = []FilterType{FilterTypeNone, FilterTypeAll, FilterTypeMixed}

// FilterCriteria tells the order list filter component which filters to apply.
// Every value pointer is set exactly when its include flag is true.
type FilterCriteria struct {
	FilterType        FilterType  `json:"filterType" yaml:"filterType"`
	IncludeRestaurant bool        `json:"includeRestaurant" yaml:"includeRestaurant"`
	Restaurant        *Restaurant `json:"restaurant,omitempty" yaml:"restaurant,omitempty"`
	IncludeFoodType   bool        `json:"includeFoodType" yaml:"includeFoodType"`
	FoodType          *MealType   `json:"foodType,omitempty" yaml:"foodType,omitempty"`
	IncludeDateRange  bool        `json:"includeDateRange" yaml:"includeDateRange"`
	DaysToInclude     *int        `json:"daysToInclude,omitempty" yaml:"daysToInclude,omitempty"`
	StartOffset       *int        `json:"startOffset,omitempty" yaml:"startOffset,omitempty"`
}

// DateWindow is the date range filter used for rows at a given day offset from today.
type DateWindow struct {
	StartOffset   int `mapstructure:"start_offset" json:"startOffset" yaml:"startOffset"`
	DaysToInclude int `mapstructure:"days_to_include" json:"daysToInclude" yaml:"daysToInclude"`
}

// DefaultDateWindows covers the default day offsets. Offsets without an entry,
// tomorrow included, get no date filter.
func DefaultDateWindows() map[int]DateWindow {
	return map[int]DateWindow{
		2: {StartOffset: 1, DaysToInclude: 7},
		7: {StartOffset: 7, DaysToInclude: 1},
	}
}
