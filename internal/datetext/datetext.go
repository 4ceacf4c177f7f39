// Package datetext parses and renders the date strings shown by the meal ordering admin.
package datetext

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var ErrUnrecognisedDate = errors.New("unrecognised date text")

// UILayout is the day format the order list renders, e.g. 8.1.2024.
const UILayout = "2.1.2006"

// layouts are tried in order. Day-first slash dates win over month-first ones.
var layouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04",
	"2.1.2006 15:04",
	"2. 1. 2006 15:04",
	UILayout,
	"2. 1. 2006",
	"02/01/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
}

// Parse reads text in any supported layout. Layouts without a zone are read in loc,
// or UTC when loc is nil.
func Parse(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnrecognisedDate)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognisedDate, text)
}

// FormatUI renders t the way the order list shows dates.
func FormatUI(t time.Time) string {
	return t.Format(UILayout)
}

// Midnight truncates t to the start of its calendar day, expressed in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the elapsed time from from to to in days, rounded half away
// from zero. Times are compared as instants, so 23:00 to midnight two days later is 1.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
