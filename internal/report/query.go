package report

import (
	"fmt"
	"strings"
	"time"
)

// condition accumulates WHERE fragments with positional args. Fragments use
// a %d verb for the arg ordinal so callers can keep appending after compile.
type condition struct {
	clauses []string
	args    []any
}

func (c *condition) add(expr string, value any) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf(expr, len(c.args)))
}

func (c *condition) addClause(expr string) {
	c.clauses = append(c.clauses, expr)
}

// where renders the accumulated clauses, empty when unconstrained.
func (c *condition) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(c.clauses, " AND ")
}

// compileScope translates criteria into the predicate shared by the plan and
// actual tables. The category override, when set, replaces the criteria's
// own category (the per-category report legs use it). An explicit plantation
// filter always wins over a district filter; the district only expands to
// its roster subset when no plantation is pinned.
func compileScope(c FilterCriteria, override *Category) condition {
	var cond condition

	category := c.Category
	if override != nil {
		category = override
	}
	if category != nil {
		cond.add("category = $%d", string(*category))
	}

	switch {
	case c.Plantation != nil:
		cond.add("plantation_code = $%d", *c.Plantation)
	case c.District != nil:
		cond.add("plantation_code = ANY($%d)", DistrictCodes(*c.District))
	}

	if c.Division != nil {
		cond.add("division = $%d", *c.Division)
	}
	if c.PlantingYear != nil {
		cond.add("planting_year = $%d", *c.PlantingYear)
	}
	if c.Block != nil {
		cond.add("block = $%d", *c.Block)
	}
	if c.FertilizerType != nil {
		cond.add("fertilizer_type = $%d", *c.FertilizerType)
	}
	if c.ApplicationRound != nil {
		cond.add("application_round = $%d", *c.ApplicationRound)
	}

	// The calendar-year shorthand is an additional date constraint, ANDed
	// with whatever date predicate the grouping itself adds.
	if c.Year != nil {
		from := time.Date(*c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		cond.add("application_date >= $%d", from)
		cond.add("application_date < $%d", from.AddDate(1, 0, 0))
	}

	return cond
}

// withPeriod bounds the predicate to the resolved window. Only actual
// groupings use it, and only when the caller supplied an explicit date
// filter; plan totals are always all-time.
func (c condition) withPeriod(p Period) condition {
	c.add("application_date >= $%d", p.Start)
	c.add("application_date <= $%d", p.End)
	return c
}

// withDay pins the predicate to a single civil day.
func (c condition) withDay(day time.Time) condition {
	c.add("application_date = $%d", day)
	return c
}

// withRoundRange keeps only rows carrying a campaign round 1..3; rows with
// a missing or zero round never enter the per-round groupings.
func (c condition) withRoundRange() condition {
	c.addClause("application_round BETWEEN 1 AND 3")
	return c
}
