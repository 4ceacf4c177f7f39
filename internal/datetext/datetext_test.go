package datetext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SupportedLayouts(t *testing.T) {
	want := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name string
		text string
		want time.Time
	}{
		{"iso date", "2024-01-08", want},
		{"ui format", "8.1.2024", want},
		{"ui format padded", "08.01.2024", want},
		{"spaced czech format", "8. 1. 2024", want},
		{"extra whitespace", "  8.  1.  2024 ", want},
		{"slash day first", "08/01/2024", want},
		{"english short month", "Jan 8, 2024", want},
		{"english long month", "January 8, 2024", want},
		{"day month year", "8 Jan 2024", want},
		{"weekday", "Monday, January 8, 2024", want},
		{"rfc3339", "2024-01-08T00:00:00Z", want},
		{"ui format with time", "8.1.2024 11:30", time.Date(2024, time.January, 8, 11, 30, 0, 0, time.UTC)},
		{"iso with time", "2024-01-08 13:00", time.Date(2024, time.January, 8, 13, 0, 0, 0, time.UTC)},
		{"slash falls back to month first", "01/25/2024", time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.text, nil)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}
}

func TestParse_UsesLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	got, err := Parse("1.1.2024", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
}

func TestParse_Rejects(t *testing.T) {
	for _, text := range []string{"", "   ", "tomorrow", "32.1.2024", "2024/13/01"} {
		_, err := Parse(text, nil)
		assert.ErrorIs(t, err, ErrUnrecognisedDate, text)
	}
}

func TestFormatUI(t *testing.T) {
	assert.Equal(t, "3.1.2024", FormatUI(time.Date(2024, time.January, 3, 15, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(today, today.AddDate(0, 0, 1)))
	assert.Equal(t, 7, DaysBetween(today, today.AddDate(0, 0, 7)))
	assert.Equal(t, -2, DaysBetween(today, today.AddDate(0, 0, -2)))
	assert.Equal(t, -1, DaysBetween(today.Add(23*time.Hour), today))
	assert.Equal(t, 0, DaysBetween(today.Add(13*time.Hour), today))
	assert.Equal(t, 1, DaysBetween(today.Add(22*time.Hour), today.AddDate(0, 0, 1).Add(time.Hour)))
	assert.Equal(t, 1, DaysBetween(today.Add(23*time.Hour), today.AddDate(0, 0, 2)))
	assert.Equal(t, 2, DaysBetween(today, today.AddDate(0, 0, 1).Add(12*time.Hour)))
}
