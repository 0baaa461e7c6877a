package period

import (
	"testing"
	"time"

	"fintrack/internal/testutil"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 30, 0, 0, time.UTC) }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentAndPreviousMonth(t *testing.T) {
	tests := []struct {
		name     string
		now      func() time.Time
		wantCur  Range
		wantPrev Range
	}{
		{
			name:     "mid year",
			now:      fixedClock(2024, time.March, 15),
			wantCur:  Range{date(2024, time.March, 1), date(2024, time.March, 31)},
			wantPrev: Range{date(2024, time.February, 1), date(2024, time.February, 29)},
		},
		{
			name:     "january rolls back to december",
			now:      fixedClock(2025, time.January, 10),
			wantCur:  Range{date(2025, time.January, 1), date(2025, time.January, 31)},
			wantPrev: Range{date(2024, time.December, 1), date(2024, time.December, 31)},
		},
		{
			name:     "end of month clock",
			now:      fixedClock(2024, time.May, 31),
			wantCur:  Range{date(2024, time.May, 1), date(2024, time.May, 31)},
			wantPrev: Range{date(2024, time.April, 1), date(2024, time.April, 30)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.now)
			if got := r.CurrentMonth(); got != tt.wantCur {
				t.Errorf("CurrentMonth = %v, want %v", got, tt.wantCur)
			}
			if got := r.PreviousMonth(); got != tt.wantPrev {
				t.Errorf("PreviousMonth = %v, want %v", got, tt.wantPrev)
			}
		})
	}
}

func TestCurrentYear(t *testing.T) {
	r := NewResolver(fixedClock(2024, time.July, 4))
	got := r.CurrentYear()
	if got.Start != date(2024, time.January, 1) || got.End != date(2024, time.December, 31) {
		t.Errorf("unexpected year range %v", got)
	}
}

func TestTrailing(t *testing.T) {
	r := NewResolver(fixedClock(2024, time.July, 4))
	got := r.Trailing(24 * time.Hour)
	if got.End.Sub(got.Start) != 24*time.Hour {
		t.Errorf("expected 24h window, got %s", got.End.Sub(got.Start))
	}
	if !got.End.Equal(r.Now()) {
		t.Errorf("expected window to end at now")
	}
}

func TestExplicitRange(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ExplicitRange(date(2024, 1, 1), date(2024, 3, 31))
		testutil.AssertNoError(t, err)
		if got.Start != date(2024, 1, 1) || got.End != date(2024, 3, 31) {
			t.Errorf("unexpected range %v", got)
		}
	})
	t.Run("single day", func(t *testing.T) {
		_, err := ExplicitRange(date(2024, 1, 1), date(2024, 1, 1))
		testutil.AssertNoError(t, err)
	})
	t.Run("start after end", func(t *testing.T) {
		_, err := ExplicitRange(date(2024, 3, 1), date(2024, 1, 1))
		testutil.AssertAppError(t, err, "INVALID_RANGE")
	})
}

func TestLastBusinessDays(t *testing.T) {
	// Wednesday 2024-07-10: window is Wed 07-03 .. Wed 07-10.
	r := NewResolver(fixedClock(2024, time.July, 10))
	window := r.LastBusinessDays(5)

	if window.Start != date(2024, 7, 3) || window.End != date(2024, 7, 10) {
		t.Fatalf("unexpected window %v", window.Range)
	}

	activity := []time.Time{
		date(2024, 7, 2),  // outside
		date(2024, 7, 3),  // Wed
		date(2024, 7, 4),  // Thu
		date(2024, 7, 5),  // Fri
		date(2024, 7, 6),  // Sat
		date(2024, 7, 7),  // Sun
		date(2024, 7, 8),  // Mon
		date(2024, 7, 9),  // Tue
		date(2024, 7, 10), // Wed
		date(2024, 7, 10), // duplicate
	}
	got := window.Select(activity)
	want := []time.Time{date(2024, 7, 10), date(2024, 7, 9), date(2024, 7, 8), date(2024, 7, 5), date(2024, 7, 4)}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLastBusinessDaysSparse(t *testing.T) {
	r := NewResolver(fixedClock(2024, time.July, 10))
	got := r.LastBusinessDays(5).Select([]time.Time{date(2024, 7, 6), date(2024, 7, 9)})
	if len(got) != 1 || !got[0].Equal(date(2024, 7, 9)) {
		t.Errorf("expected only Tuesday, got %v", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"plain date", "2024-02-29", date(2024, 2, 29), false},
		{"rfc3339 keeps calendar day", "2024-02-29T23:30:00-05:00", date(2024, 2, 29), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "29/02/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate("date", tt.in)
			if tt.wantErr {
				testutil.AssertAppError(t, err, "INVALID_INPUT")
				return
			}
			testutil.AssertNoError(t, err)
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
