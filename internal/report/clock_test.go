package report

import (
	"testing"
	"time"
)

func TestTodayInReportTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Fatal(err)
	}
	// 17:30 UTC on March 10 is already 00:30 on March 11 in Jakarta (UTC+7).
	clock := Clock{
		Now:      func() time.Time { return time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC) },
		Location: jakarta,
	}
	today := clock.Today()
	if today.Year() != 2026 || today.Month() != time.March || today.Day() != 11 {
		t.Fatalf("today = %v", today)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Fatalf("today is not midnight: %v", today)
	}
	tomorrow := clock.Tomorrow()
	if tomorrow.Day() != 12 {
		t.Fatalf("tomorrow = %v", tomorrow)
	}
}

func TestMidnightBelongsToStartingDay(t *testing.T) {
	jakarta, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Fatal(err)
	}
	midnight := time.Date(2026, 3, 11, 0, 0, 0, 0, jakarta)
	clock := Clock{Now: func() time.Time { return midnight }, Location: jakarta}
	if got := clock.Today(); !got.Equal(midnight) {
		t.Fatalf("instant at midnight attributed to %v, want %v", got, midnight)
	}
	if got := DateOf(midnight); !got.Equal(midnight) {
		t.Fatalf("DateOf(midnight) = %v", got)
	}
}

func TestNewClockFallsBackToUTC(t *testing.T) {
	clock := NewClock("Mars/Olympus")
	if clock.location() != time.UTC {
		t.Fatalf("unknown zone should fall back to UTC, got %v", clock.location())
	}
	if NewClock(DefaultTimezone).location().String() != DefaultTimezone {
		t.Fatal("default zone did not load")
	}
}
