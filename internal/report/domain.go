package report

import (
	"strings"
	"time"
)

// Category enumerates the crop maturity classes tracked per record.
type Category string

const (
	// CategoryTM covers mature, producing stands.
	CategoryTM Category = "TM"
	// CategoryTBM covers immature, not-yet-producing stands.
	CategoryTBM Category = "TBM"
	// CategoryBibitan covers nursery stock.
	CategoryBibitan Category = "BIBITAN"
)

// ParseCategory maps raw input to a Category; empty and "all" mean unset.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(CategoryTM):
		return CategoryTM, true
	case string(CategoryTBM):
		return CategoryTBM, true
	case string(CategoryBibitan):
		return CategoryBibitan, true
	default:
		return "", false
	}
}

// District identifies one of the two regional estate groupings.
type District string

const (
	// DistrictBarat groups the western estates.
	DistrictBarat District = "BARAT"
	// DistrictTimur groups the eastern estates.
	DistrictTimur District = "TIMUR"
)

// ParseDistrict maps raw input to a District; empty and "all" mean unset.
func ParseDistrict(raw string) (District, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(DistrictBarat):
		return DistrictBarat, true
	case string(DistrictTimur):
		return DistrictTimur, true
	default:
		return "", false
	}
}

// FilterCriteria is the canonical form of the caller's optional filters.
// Nil means the dimension is unconstrained.
type FilterCriteria struct {
	District         *District
	Plantation       *string
	Category         *Category
	Division         *string
	PlantingYear     *string
	Block            *string
	FertilizerType   *string
	ApplicationRound *int
	Year             *int
	DateFrom         *time.Time
	DateTo           *time.Time
}

// Period is the resolved reporting window. Start and End are date-only
// values at midnight in the report timezone, Start <= End.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RoundFigures holds one plan/actual/percentage triple for an application round.
type RoundFigures struct {
	Plan    float64 `json:"plan"`
	Actual  float64 `json:"actual"`
	Percent float64 `json:"percent"`
}

// ComparisonRow is the per-plantation plan-vs-actual line of the report.
type ComparisonRow struct {
	Seq            int             `json:"seq"`
	PlantationCode string          `json:"plantation_code"`
	PlantationName string          `json:"plantation_name"`
	District       District        `json:"district"`
	Category       Category        `json:"category"`
	Rounds         [3]RoundFigures `json:"rounds"`
	TodayPlan      float64         `json:"today_plan"`
	TodayActual    float64         `json:"today_actual"`
	TomorrowPlan   float64         `json:"tomorrow_plan"`
	TotalPlan      float64         `json:"total_plan"`
	TotalActual    float64         `json:"total_actual"`
	TotalPercent   float64         `json:"total_percent"`
}

// ScopeTotals pairs a plan and actual sum for one scope of the report.
type ScopeTotals struct {
	Plan   float64 `json:"plan"`
	Actual float64 `json:"actual"`
}

// Totals carries the scope-level sums of the filtered report.
type Totals struct {
	Overall    ScopeTotals              `json:"overall"`
	ByCategory map[Category]ScopeTotals `json:"by_category"`
	ByDistrict map[District]ScopeTotals `json:"by_district"`
}

// FertilizerTypeRow is one line of the per-type breakdown.
type FertilizerTypeRow struct {
	FertilizerType string  `json:"fertilizer_type"`
	Plan           float64 `json:"plan"`
	Actual         float64 `json:"actual"`
	Percent        float64 `json:"percent"`
}

// Report is the full response of the comparison engine: the 40 canonical
// rows (TM then TBM), scope totals, the fertilizer-type breakdown and the
// resolved period.
type Report struct {
	Rows              []ComparisonRow     `json:"rows"`
	Totals            Totals              `json:"totals"`
	ByFertilizerType  []FertilizerTypeRow `json:"by_fertilizer_type"`
	ResolvedPeriod    Period              `json:"resolved_period"`
	HasUserDateFilter bool                `json:"has_user_date_filter"`
}

// percentOf applies the zero-guarded percentage rule shared by every row
// and total: plan of zero always yields zero, never NaN or Inf.
func percentOf(actual, plan float64) float64 {
	if plan <= 0 {
		return 0
	}
	return round2(actual / plan * 100)
}
