package report

import "math"

// categoryRollups gathers the five grouped sums feeding one category's rows.
type categoryRollups struct {
	planByRound   map[RoundKey]float64
	actualByRound map[RoundKey]float64
	planToday     map[string]float64
	planTomorrow  map[string]float64
	actualToday   map[string]float64
}

// BuildRows merges the rollup maps into one ComparisonRow per plantation that
// appears in any grouping. Row order is discovery order; the roster
// normalizer fixes the final ordering.
func BuildRows(r categoryRollups) []ComparisonRow {
	codes := make([]string, 0)
	seen := make(map[string]bool)
	note := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for key := range r.planByRound {
		note(key.Plantation)
	}
	for key := range r.actualByRound {
		note(key.Plantation)
	}
	for code := range r.planToday {
		note(code)
	}
	for code := range r.planTomorrow {
		note(code)
	}
	for code := range r.actualToday {
		note(code)
	}

	rows := make([]ComparisonRow, 0, len(codes))
	for _, code := range codes {
		row := ComparisonRow{PlantationCode: code}
		for round := 1; round <= 3; round++ {
			plan := r.planByRound[RoundKey{Plantation: code, Round: round}]
			actual := r.actualByRound[RoundKey{Plantation: code, Round: round}]
			row.Rounds[round-1] = RoundFigures{
				Plan:    round2(plan),
				Actual:  round2(actual),
				Percent: percentOf(actual, plan),
			}
			row.TotalPlan += plan
			row.TotalActual += actual
		}
		row.TotalPercent = percentOf(row.TotalActual, row.TotalPlan)
		row.TotalPlan = round2(row.TotalPlan)
		row.TotalActual = round2(row.TotalActual)
		row.TodayPlan = round2(r.planToday[code])
		row.TodayActual = round2(r.actualToday[code])
		row.TomorrowPlan = round2(r.planTomorrow[code])
		rows = append(rows, row)
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
