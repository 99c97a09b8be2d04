package daterange_test

import (
	"testing"
	"time"

	"go-hrms/internal/shared/daterange"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := daterange.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToday(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 1, 9, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, day("2026-01-09"), daterange.Today(now, time.UTC))
	assert.Equal(t, day("2026-01-10"), daterange.Today(now, jakarta))
	assert.Equal(t, day("2026-01-09"), daterange.Today(now, nil))
}

func TestEndOfDay(t *testing.T) {
	end := daterange.EndOfDay(time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 4, 23, 59, 59, 999999999, time.UTC), end)
}

func TestNew(t *testing.T) {
	_, err := daterange.New(day("2026-03-05"), day("2026-03-04"))
	assert.ErrorIs(t, err, daterange.ErrInvertedRange)

	r, err := daterange.New(day("2026-03-04"), day("2026-03-04"))
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Days())
}

func TestRange_Overlaps(t *testing.T) {
	single := daterange.Single(day("2026-03-10"))

	cases := []struct {
		name  string
		other daterange.Range
		want  bool
	}{
		{"same single day", daterange.Single(day("2026-03-10")), true},
		{"multi-day covering", daterange.Range{Start: day("2026-03-08"), End: day("2026-03-12")}, true},
		{"ends on the day", daterange.Range{Start: day("2026-03-01"), End: day("2026-03-10")}, true},
		{"starts on the day", daterange.Range{Start: day("2026-03-10"), End: day("2026-03-20")}, true},
		{"day before", daterange.Single(day("2026-03-09")), false},
		{"day after", daterange.Range{Start: day("2026-03-11"), End: day("2026-03-15")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, single.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(single))
		})
	}
}

func TestRange_Clip(t *testing.T) {
	jan := daterange.Month(2026, time.January)

	leave := daterange.Range{Start: day("2025-12-29"), End: day("2026-01-02")}
	clipped, ok := leave.Clip(jan)
	assert.True(t, ok)
	assert.Equal(t, day("2026-01-01"), clipped.Start)
	assert.Equal(t, 2, clipped.Days())

	spanning := daterange.Range{Start: day("2025-12-01"), End: day("2026-02-10")}
	clipped, ok = spanning.Clip(jan)
	assert.True(t, ok)
	assert.Equal(t, 31, clipped.Days())

	_, ok = daterange.Single(day("2026-02-01")).Clip(jan)
	assert.False(t, ok)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, daterange.DaysInMonth(2026, time.January))
	assert.Equal(t, 28, daterange.DaysInMonth(2026, time.February))
	assert.Equal(t, 29, daterange.DaysInMonth(2028, time.February))
	assert.Equal(t, 30, daterange.DaysInMonth(2026, time.April))
}

func TestRange_Contains(t *testing.T) {
	r := daterange.Range{Start: day("2026-01-08"), End: day("2026-01-12")}
	assert.True(t, r.Contains(time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(day("2026-01-12")))
	assert.False(t, r.Contains(day("2026-01-13")))
}
