// Package period resolves named reporting windows into inclusive calendar
// date ranges. All dates are midnight UTC.
package period

import (
	"sort"
	"time"

	apperrors "fintrack/internal/errors"
)

// Range is an inclusive [Start, End] window. For calendar ranges both bounds
// are midnight UTC; Trailing ranges keep the instant.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolver computes ranges relative to an injected clock.
type Resolver struct {
	now func() time.Time
}

// NewResolver returns a Resolver using now as its clock. A nil clock uses
// time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// Now returns the resolver's current instant in UTC.
func (r *Resolver) Now() time.Time {
	return r.now().UTC()
}

// Today returns the current calendar date.
func (r *Resolver) Today() time.Time {
	return truncate(r.Now())
}

// CurrentMonth spans the first to the last day of the current month.
func (r *Resolver) CurrentMonth() Range {
	return Month(r.Today().Year(), r.Today().Month())
}

// PreviousMonth spans the month before the current one. January rolls back
// to December of the prior year.
func (r *Resolver) PreviousMonth() Range {
	first := r.CurrentMonth().Start.AddDate(0, -1, 0)
	return Month(first.Year(), first.Month())
}

// CurrentYear spans January 1 to December 31 of the current year.
func (r *Resolver) CurrentYear() Range {
	y := r.Today().Year()
	return Range{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Trailing returns the instant window [now-d, now].
func (r *Resolver) Trailing(d time.Duration) Range {
	now := r.Now()
	return Range{Start: now.Add(-d), End: now}
}

// BusinessDays is the window used by the short-horizon dashboard series.
type BusinessDays struct {
	Range
	Limit int
}

// LastBusinessDays returns the window [today-7, today] capped at n dates.
// The window does not guarantee n dates; it filters whatever has activity.
func (r *Resolver) LastBusinessDays(n int) BusinessDays {
	today := r.Today()
	return BusinessDays{
		Range: Range{Start: today.AddDate(0, 0, -7), End: today},
		Limit: n,
	}
}

// Select keeps the weekday dates inside the window, most recent first, and
// at most Limit of them.
func (b BusinessDays) Select(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = truncate(d)
		if seen[d] || !b.Contains(d) || !IsBusinessDay(d) {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	if b.Limit >= 0 && len(out) > b.Limit {
		out = out[:b.Limit]
	}
	return out
}

// ExplicitRange validates a caller supplied range.
func ExplicitRange(start, end time.Time) (Range, error) {
	start, end = truncate(start), truncate(end)
	if start.After(end) {
		return Range{}, apperrors.ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Month returns the full calendar month.
func Month(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// IsBusinessDay reports whether t falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
