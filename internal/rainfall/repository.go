package rainfall

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for rainfall readings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert inserts or replaces the reading for (plantation, date).
func (r *Repository) Upsert(ctx context.Context, obs Observation) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO rainfall_observations (plantation_code, observed_on, millimeters, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (plantation_code, observed_on)
DO UPDATE SET millimeters = EXCLUDED.millimeters, updated_at = NOW()`,
		obs.PlantationCode, obs.Date, obs.Millimeters)
	return err
}

// ListRange returns readings for one plantation inside [from, to].
func (r *Repository) ListRange(ctx context.Context, code string, from, to time.Time) ([]Observation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, plantation_code, observed_on, millimeters, created_at, updated_at
FROM rainfall_observations WHERE plantation_code = $1 AND observed_on BETWEEN $2 AND $3
ORDER BY observed_on`, code, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var observations []Observation
	for rows.Next() {
		var obs Observation
		if err := rows.Scan(&obs.ID, &obs.PlantationCode, &obs.Date, &obs.Millimeters, &obs.CreatedAt, &obs.UpdatedAt); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return observations, nil
}

// MonthlyTotals sums rainfall per plantation for one calendar month.
func (r *Repository) MonthlyTotals(ctx context.Context, year int, month time.Month) ([]MonthlyTotal, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	rows, err := r.pool.Query(ctx, `SELECT plantation_code, COALESCE(SUM(millimeters), 0), COUNT(*) FILTER (WHERE millimeters > 0)
FROM rainfall_observations WHERE observed_on >= $1 AND observed_on < $2
GROUP BY plantation_code ORDER BY plantation_code`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	label := from.Format("2006-01")
	var totals []MonthlyTotal
	for rows.Next() {
		var total MonthlyTotal
		if err := rows.Scan(&total.PlantationCode, &total.Millimeters, &total.RainDays); err != nil {
			return nil, err
		}
		total.Month = label
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}
