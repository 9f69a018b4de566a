package report

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// filterAll is the boundary sentinel the dashboard sends for "no filter".
const filterAll = "all"

// RawFilters carries the untrusted, optional filter inputs exactly as the
// caller supplied them. Every field may be empty or the "all" sentinel.
type RawFilters struct {
	District         string `json:"district"`
	Plantation       string `json:"plantation"`
	Category         string `json:"category"`
	Division         string `json:"division"`
	PlantingYear     string `json:"planting_year"`
	Block            string `json:"block"`
	FertilizerType   string `json:"fertilizer_type"`
	ApplicationRound string `json:"application_round"`
	Year             string `json:"year"`
	DateFrom         string `json:"date_from"`
	DateTo           string `json:"date_to"`
}

// ParseFilters turns raw inputs into canonical criteria. Malformed numeric
// filters are dropped, not rejected; malformed dates likewise fall back to
// the default period during resolution.
func ParseFilters(raw RawFilters, loc *time.Location) FilterCriteria {
	var c FilterCriteria
	if d, ok := ParseDistrict(raw.District); ok {
		c.District = &d
	}
	if v := cleanFilter(raw.Plantation); v != "" {
		c.Plantation = &v
	}
	if cat, ok := ParseCategory(raw.Category); ok {
		c.Category = &cat
	}
	if v := cleanFilter(raw.Division); v != "" {
		c.Division = &v
	}
	if v := cleanFilter(raw.PlantingYear); v != "" {
		c.PlantingYear = &v
	}
	if v := cleanFilter(raw.Block); v != "" {
		c.Block = &v
	}
	if v := cleanFilter(raw.FertilizerType); v != "" {
		c.FertilizerType = &v
	}
	if v := cleanFilter(raw.ApplicationRound); v != "" {
		if round, err := strconv.Atoi(v); err == nil {
			c.ApplicationRound = &round
		}
	}
	if v := cleanFilter(raw.Year); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.Year = &year
		}
	}
	if t, ok := parseDate(raw.DateFrom, loc); ok {
		c.DateFrom = &t
	}
	if t, ok := parseDate(raw.DateTo, loc); ok {
		c.DateTo = &t
	}
	return c
}

func cleanFilter(raw string) string {
	v := strings.TrimSpace(raw)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return time.Time{}, false
	}
	return DateOf(t), true
}

// DateRangeFunc yields the historical [min, max] span of actual records.
// ok is false when no actual records exist.
type DateRangeFunc func() (min, max time.Time, ok bool, err error)

// ResolvePeriod derives the reporting window from the parsed criteria.
// With no explicit bound the window spans all actual records, collapsing
// to today when none exist, and hasUserDateFilter is false. With at least
// one explicit bound the missing side is filled from the same defaults,
// reversed bounds are swapped, and hasUserDateFilter is true.
func ResolvePeriod(c FilterCriteria, defaultRange DateRangeFunc, clock Clock) (Period, bool, error) {
	today := clock.Today()
	if c.DateFrom == nil && c.DateTo == nil {
		min, max, ok, err := defaultRange()
		if err != nil {
			return Period{}, false, err
		}
		if !ok {
			return Period{Start: today, End: today}, false, nil
		}
		return Period{Start: DateOf(min), End: DateOf(max)}, false, nil
	}

	start, end := today, today
	if min, max, ok, err := defaultRange(); err != nil {
		return Period{}, false, err
	} else if ok {
		start, end = DateOf(min), DateOf(max)
	}
	if c.DateFrom != nil {
		start = *c.DateFrom
	}
	if c.DateTo != nil {
		end = *c.DateTo
	}
	if start.After(end) {
		start, end = end, start
	}
	return Period{Start: start, End: end}, true, nil
}
