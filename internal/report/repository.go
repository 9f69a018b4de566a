package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	planTable   = "fertilizer_plans"
	actualTable = "fertilizer_actuals"
)

// RoundKey addresses one (plantation, application round) cell of a rollup.
type RoundKey struct {
	Plantation string
	Round      int
}

// Datastore is the grouped-sum contract the engine needs from storage.
type Datastore interface {
	PlanByRound(ctx context.Context, c FilterCriteria, category *Category) (map[RoundKey]float64, error)
	ActualByRound(ctx context.Context, c FilterCriteria, category *Category, period *Period) (map[RoundKey]float64, error)
	PlanForDay(ctx context.Context, c FilterCriteria, category *Category, day time.Time) (map[string]float64, error)
	ActualForDay(ctx context.Context, c FilterCriteria, category *Category, day time.Time) (map[string]float64, error)
	PlanByType(ctx context.Context, c FilterCriteria) (map[string]float64, error)
	ActualByType(ctx context.Context, c FilterCriteria, period *Period) (map[string]float64, error)
	TotalPlan(ctx context.Context, c FilterCriteria, category *Category, codes []string) (float64, error)
	TotalActual(ctx context.Context, c FilterCriteria, category *Category, period *Period, codes []string) (float64, error)
	ActualDateRange(ctx context.Context) (min, max time.Time, ok bool, err error)
}

// Repository provides PostgreSQL backed rollups over the plan and actual tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// PlanByRound sums planned mass per (plantation, round), all-time.
func (r *Repository) PlanByRound(ctx context.Context, c FilterCriteria, category *Category) (map[RoundKey]float64, error) {
	cond := compileScope(c, category).withRoundRange()
	return r.sumByRound(ctx, planTable, cond)
}

// ActualByRound sums executed mass per (plantation, round), bounded by the
// period only when the caller filtered by date.
func (r *Repository) ActualByRound(ctx context.Context, c FilterCriteria, category *Category, period *Period) (map[RoundKey]float64, error) {
	cond := compileScope(c, category).withRoundRange()
	if period != nil {
		cond = cond.withPeriod(*period)
	}
	return r.sumByRound(ctx, actualTable, cond)
}

// PlanForDay sums planned mass per plantation for a single civil day.
func (r *Repository) PlanForDay(ctx context.Context, c FilterCriteria, category *Category, day time.Time) (map[string]float64, error) {
	cond := compileScope(c, category).withDay(day)
	return r.sumByPlantation(ctx, planTable, cond)
}

// ActualForDay sums executed mass per plantation for a single civil day.
// It is never bounded by the period: the day snapshot reflects reality even
// under a historical date filter.
func (r *Repository) ActualForDay(ctx context.Context, c FilterCriteria, category *Category, day time.Time) (map[string]float64, error) {
	cond := compileScope(c, category).withDay(day)
	return r.sumByPlantation(ctx, actualTable, cond)
}

// PlanByType sums planned mass per fertilizer type, all-time.
func (r *Repository) PlanByType(ctx context.Context, c FilterCriteria) (map[string]float64, error) {
	cond := compileScope(c, nil)
	return r.sumByType(ctx, planTable, cond)
}

// ActualByType sums executed mass per fertilizer type, period-bounded iff
// the caller filtered by date.
func (r *Repository) ActualByType(ctx context.Context, c FilterCriteria, period *Period) (map[string]float64, error) {
	cond := compileScope(c, nil)
	if period != nil {
		cond = cond.withPeriod(*period)
	}
	return r.sumByType(ctx, actualTable, cond)
}

// TotalPlan sums planned mass for the filtered scope, optionally narrowed to
// a set of plantation codes (the district legs of the totals split).
func (r *Repository) TotalPlan(ctx context.Context, c FilterCriteria, category *Category, codes []string) (float64, error) {
	cond := compileScope(c, category)
	if codes != nil {
		cond.add("plantation_code = ANY($%d)", codes)
	}
	return r.sumMass(ctx, planTable, cond)
}

// TotalActual sums executed mass for the filtered scope; period-bounded iff
// the caller filtered by date.
func (r *Repository) TotalActual(ctx context.Context, c FilterCriteria, category *Category, period *Period, codes []string) (float64, error) {
	cond := compileScope(c, category)
	if period != nil {
		cond = cond.withPeriod(*period)
	}
	if codes != nil {
		cond.add("plantation_code = ANY($%d)", codes)
	}
	return r.sumMass(ctx, actualTable, cond)
}

// ActualDateRange returns the historical span of executed records.
func (r *Repository) ActualDateRange(ctx context.Context) (time.Time, time.Time, bool, error) {
	var min, max *time.Time
	query := fmt.Sprintf(`SELECT MIN(application_date), MAX(application_date) FROM %s WHERE application_date IS NOT NULL`, actualTable)
	if err := r.pool.QueryRow(ctx, query).Scan(&min, &max); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if min == nil || max == nil {
		return time.Time{}, time.Time{}, false, nil
	}
	return *min, *max, true, nil
}

func (r *Repository) sumByRound(ctx context.Context, table string, cond condition) (map[RoundKey]float64, error) {
	query := fmt.Sprintf(`SELECT plantation_code, application_round, COALESCE(SUM(mass_kg), 0)
FROM %s %s GROUP BY plantation_code, application_round`, table, cond.where())
	rows, err := r.pool.Query(ctx, query, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[RoundKey]float64)
	for rows.Next() {
		var key RoundKey
		var mass float64
		if err := rows.Scan(&key.Plantation, &key.Round, &mass); err != nil {
			return nil, err
		}
		result[key] = mass
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) sumByPlantation(ctx context.Context, table string, cond condition) (map[string]float64, error) {
	query := fmt.Sprintf(`SELECT plantation_code, COALESCE(SUM(mass_kg), 0)
FROM %s %s GROUP BY plantation_code`, table, cond.where())
	rows, err := r.pool.Query(ctx, query, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[string]float64)
	for rows.Next() {
		var code string
		var mass float64
		if err := rows.Scan(&code, &mass); err != nil {
			return nil, err
		}
		result[code] = mass
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) sumByType(ctx context.Context, table string, cond condition) (map[string]float64, error) {
	query := fmt.Sprintf(`SELECT fertilizer_type, COALESCE(SUM(mass_kg), 0)
FROM %s %s GROUP BY fertilizer_type`, table, cond.where())
	rows, err := r.pool.Query(ctx, query, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[string]float64)
	for rows.Next() {
		var typ string
		var mass float64
		if err := rows.Scan(&typ, &mass); err != nil {
			return nil, err
		}
		result[typ] = mass
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) sumMass(ctx context.Context, table string, cond condition) (float64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(mass_kg), 0) FROM %s %s`, table, cond.where())
	var total float64
	if err := r.pool.QueryRow(ctx, query, cond.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
