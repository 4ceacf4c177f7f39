package models

import "strconv"

// OrderRowRecord is one meal row of one order, flattened for tabular sinks.
type OrderRowRecord struct {
	Timestamp         int64   `json:"timestamp" yaml:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID             string  `json:"runId" yaml:"runId" parquet:"name=run_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderNumber       int32   `json:"orderNumber" yaml:"orderNumber" parquet:"name=order_number,type=INT32"`
	RowIndex          int32   `json:"rowIndex" yaml:"rowIndex" parquet:"name=row_index,type=INT32"`
	Quantity          int32   `json:"quantity" yaml:"quantity" parquet:"name=quantity,type=INT32"`
	RestaurantName    string  `json:"restaurantName" yaml:"restaurantName" parquet:"name=restaurant_name,type=BYTE_ARRAY,convertedtype=UTF8"`
	MealType          string  `json:"mealType" yaml:"mealType" parquet:"name=meal_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	MealTime          *string `json:"mealTime,omitempty" yaml:"mealTime,omitempty" parquet:"name=meal_time,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	Note              *string `json:"note,omitempty" yaml:"note,omitempty" parquet:"name=note,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	Date              string  `json:"date" yaml:"date" parquet:"name=date,type=BYTE_ARRAY,convertedtype=UTF8"`
	DateLabel         string  `json:"dateLabel" yaml:"dateLabel" parquet:"name=date_label,type=BYTE_ARRAY,convertedtype=UTF8"`
	PricePerUnit      *string `json:"pricePerUnit,omitempty" yaml:"pricePerUnit,omitempty" parquet:"name=price_per_unit,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	TotalRowPrice     *string `json:"totalRowPrice,omitempty" yaml:"totalRowPrice,omitempty" parquet:"name=total_row_price,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	TotalOrderPrice   *string `json:"totalOrderPrice,omitempty" yaml:"totalOrderPrice,omitempty" parquet:"name=total_order_price,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	FilterType        string  `json:"filterType" yaml:"filterType" parquet:"name=filter_type,type=BYTE_ARRAY,convertedtype=UTF8"`
	IncludeRestaurant bool    `json:"includeRestaurant" yaml:"includeRestaurant" parquet:"name=include_restaurant,type=BOOLEAN"`
	IncludeFoodType   bool    `json:"includeFoodType" yaml:"includeFoodType" parquet:"name=include_food_type,type=BOOLEAN"`
	IncludeDateRange  bool    `json:"includeDateRange" yaml:"includeDateRange" parquet:"name=include_date_range,type=BOOLEAN"`
	DaysToInclude     *int32  `json:"daysToInclude,omitempty" yaml:"daysToInclude,omitempty" parquet:"name=days_to_include,type=INT32,repetitiontype=OPTIONAL"`
	StartOffset       *int32  `json:"startOffset,omitempty" yaml:"startOffset,omitempty" parquet:"name=start_offset,type=INT32,repetitiontype=OPTIONAL"`
}

// RecordColumns is the column order used by the csv sink and the postgres table.
var RecordColumns = []string{
	"timestamp", "run_id", "order_number", "row_index", "quantity",
	"restaurant_name", "meal_type", "meal_time", "note", "date", "date_label",
	"price_per_unit", "total_row_price", "total_order_price", "filter_type",
	"include_restaurant", "include_food_type", "include_date_range",
	"days_to_include", "start_offset",
}

// Strings renders the record in RecordColumns order; absent optional fields are empty.
func (r OrderRowRecord) Strings() []string {
	return []string{
		strconv.FormatInt(r.Timestamp, 10),
		r.RunID,
		strconv.Itoa(int(r.OrderNumber)),
		strconv.Itoa(int(r.RowIndex)),
		strconv.Itoa(int(r.Quantity)),
		r.RestaurantName,
		r.MealType,
		deref(r.MealTime),
		deref(r.Note),
		r.Date,
		r.DateLabel,
		deref(r.PricePerUnit),
		deref(r.TotalRowPrice),
		deref(r.TotalOrderPrice),
		r.FilterType,
		strconv.FormatBool(r.IncludeRestaurant),
		strconv.FormatBool(r.IncludeFoodType),
		strconv.FormatBool(r.IncludeDateRange),
		derefInt(r.DaysToInclude),
		derefInt(r.StartOffset),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int32) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(int(*i))
}
