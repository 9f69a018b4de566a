package report

import (
	"testing"
	"time"
)

func TestParseFiltersSentinels(t *testing.T) {
	c := ParseFilters(RawFilters{
		District:         "all",
		Plantation:       "ALL",
		Category:         " tm ",
		FertilizerType:   "  Urea  ",
		ApplicationRound: "2",
		Year:             "2026",
	}, time.UTC)
	if c.District != nil || c.Plantation != nil {
		t.Fatalf("sentinel values should stay unset: %+v", c)
	}
	if c.Category == nil || *c.Category != CategoryTM {
		t.Fatalf("category = %v", c.Category)
	}
	if c.FertilizerType == nil || *c.FertilizerType != "Urea" {
		t.Fatalf("fertilizer type = %v", c.FertilizerType)
	}
	if c.ApplicationRound == nil || *c.ApplicationRound != 2 {
		t.Fatalf("round = %v", c.ApplicationRound)
	}
	if c.Year == nil || *c.Year != 2026 {
		t.Fatalf("year = %v", c.Year)
	}
}

func TestParseFiltersDropsMalformed(t *testing.T) {
	c := ParseFilters(RawFilters{
		District:         "UTARA",
		Category:         "mature",
		ApplicationRound: "second",
		Year:             "on-going",
		DateFrom:         "31/12/2026",
		DateTo:           "2026-13-40",
	}, time.UTC)
	if c.District != nil || c.Category != nil || c.ApplicationRound != nil || c.Year != nil {
		t.Fatalf("malformed scalars should be dropped: %+v", c)
	}
	if c.DateFrom != nil || c.DateTo != nil {
		t.Fatalf("malformed dates should be dropped: %+v", c)
	}
}

func TestParseFiltersDates(t *testing.T) {
	c := ParseFilters(RawFilters{DateFrom: "2026-03-05"}, time.UTC)
	if c.DateFrom == nil {
		t.Fatal("date_from not parsed")
	}
	want := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if !c.DateFrom.Equal(want) {
		t.Fatalf("date_from = %v, want %v", c.DateFrom, want)
	}
}

func fixedRange(min, max time.Time, ok bool) DateRangeFunc {
	return func() (time.Time, time.Time, bool, error) {
		return min, max, ok, nil
	}
}

func TestResolvePeriodDefaults(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	clock := testClock(today)
	min := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	max := time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC)

	period, userFiltered, err := ResolvePeriod(FilterCriteria{}, fixedRange(min, max, true), clock)
	if err != nil {
		t.Fatal(err)
	}
	if userFiltered {
		t.Fatal("no explicit bound should not count as a user date filter")
	}
	if !period.Start.Equal(min) || !period.End.Equal(max) {
		t.Fatalf("period = %+v", period)
	}

	// No actual records at all: the window collapses to today.
	period, userFiltered, err = ResolvePeriod(FilterCriteria{}, fixedRange(time.Time{}, time.Time{}, false), clock)
	if err != nil {
		t.Fatal(err)
	}
	if userFiltered || !period.Start.Equal(today) || !period.End.Equal(today) {
		t.Fatalf("empty-range period = %+v, userFiltered = %v", period, userFiltered)
	}
}

func TestResolvePeriodPartialBounds(t *testing.T) {
	clock := testClock(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	min := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	max := time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	period, userFiltered, err := ResolvePeriod(FilterCriteria{DateFrom: &from}, fixedRange(min, max, true), clock)
	if err != nil {
		t.Fatal(err)
	}
	if !userFiltered {
		t.Fatal("one explicit bound should count as a user date filter")
	}
	if !period.Start.Equal(from) || !period.End.Equal(max) {
		t.Fatalf("period = %+v", period)
	}
}

func TestResolvePeriodSwapsReversedBounds(t *testing.T) {
	clock := testClock(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	from := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	period, userFiltered, err := ResolvePeriod(FilterCriteria{DateFrom: &from, DateTo: &to}, fixedRange(time.Time{}, time.Time{}, false), clock)
	if err != nil {
		t.Fatal(err)
	}
	if !userFiltered {
		t.Fatal("explicit bounds should count as a user date filter")
	}
	if !period.Start.Equal(to) || !period.End.Equal(from) {
		t.Fatalf("bounds not swapped: %+v", period)
	}
}
