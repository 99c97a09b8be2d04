// Package daterange is the single date convention used by attendance, leave
// and payroll: a date is a calendar day stored as midnight UTC, and a Range
// covers every day from Start to End inclusive.
package daterange

import (
	"errors"
	"time"
)

const Layout = "2006-01-02"

var ErrInvertedRange = errors.New("end date is before start date")

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return StartOfDay(now.In(loc))
}

// StartOfDay drops the time of day and re-anchors the date to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay is the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	r := Range{Start: StartOfDay(start), End: StartOfDay(end)}
	if r.End.Before(r.Start) {
		return Range{}, ErrInvertedRange
	}
	return r, nil
}

func Single(day time.Time) Range {
	d := StartOfDay(day)
	return Range{Start: d, End: d}
}

func Month(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

func DaysInMonth(year int, month time.Month) int {
	return Month(year, month).Days()
}

func (r Range) Contains(day time.Time) bool {
	d := StartOfDay(day)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps follows s1 <= e2 AND s2 <= e1.
func (r Range) Overlaps(o Range) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// Days counts calendar days, both ends included.
func (r Range) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// Clip returns the part of r that falls inside bounds.
func (r Range) Clip(bounds Range) (Range, bool) {
	if !r.Overlaps(bounds) {
		return Range{}, false
	}
	clipped := r
	if clipped.Start.Before(bounds.Start) {
		clipped.Start = bounds.Start
	}
	if clipped.End.After(bounds.End) {
		clipped.End = bounds.End
	}
	return clipped, true
}

func (r Range) String() string {
	return r.Start.Format(Layout) + ".." + r.End.Format(Layout)
}
