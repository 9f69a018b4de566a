package fertilization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agroplan-erp/agroplan/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for both record tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, category, plantation_code, plantation_name, application_date, division, planting_year, block, area_ha, inventory_count, fertilizer_type, application_round, dosage_per_unit, mass_kg, created_at, updated_at`

// ReplaceBatch deletes every row matching an identity tuple present in the
// batch, then inserts the batch, inside one transaction. Returns rows
// deleted and rows inserted.
func (r *Repository) ReplaceBatch(ctx context.Context, table Table, records []Record) (replaced, inserted int, err error) {
	name := table.tableName()
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		seen := make(map[identity]bool, len(records))
		for _, rec := range records {
			key := rec.identity()
			if seen[key] {
				continue
			}
			seen[key] = true
			tag, execErr := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s
WHERE category = $1 AND plantation_code = $2 AND division = $3 AND planting_year = $4
  AND block = $5 AND fertilizer_type = $6 AND application_round = $7
  AND application_date IS NOT DISTINCT FROM $8`, name),
				rec.Category, rec.PlantationCode, rec.Division, rec.PlantingYear,
				rec.Block, rec.FertilizerType, rec.ApplicationRound, rec.Date)
			if execErr != nil {
				return execErr
			}
			replaced += int(tag.RowsAffected())
		}

		for _, rec := range records {
			if _, execErr := tx.Exec(ctx, fmt.Sprintf(`INSERT INTO %s
(category, plantation_code, plantation_name, application_date, division, planting_year, block, area_ha, inventory_count, fertilizer_type, application_round, dosage_per_unit, mass_kg, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`, name),
				rec.Category, rec.PlantationCode, rec.PlantationName, rec.Date,
				rec.Division, rec.PlantingYear, rec.Block, rec.AreaHa, rec.InventoryCount,
				rec.FertilizerType, rec.ApplicationRound, rec.DosagePerUnit, rec.MassKg); execErr != nil {
				return mapWriteError(execErr)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return replaced, inserted, nil
}

// Update rewrites one record by id.
func (r *Repository) Update(ctx context.Context, table Table, id int64, rec Record) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`UPDATE %s SET
category = $1, plantation_code = $2, plantation_name = $3, application_date = $4,
division = $5, planting_year = $6, block = $7, area_ha = $8, inventory_count = $9,
fertilizer_type = $10, application_round = $11, dosage_per_unit = $12, mass_kg = $13,
updated_at = NOW() WHERE id = $14`, table.tableName()),
		rec.Category, rec.PlantationCode, rec.PlantationName, rec.Date,
		rec.Division, rec.PlantingYear, rec.Block, rec.AreaHa, rec.InventoryCount,
		rec.FertilizerType, rec.ApplicationRound, rec.DosagePerUnit, rec.MassKg, id)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one record by id.
func (r *Repository) Delete(ctx context.Context, table Table, id int64) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table.tableName()), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByPlantation removes every record of one plantation.
func (r *Repository) DeleteByPlantation(ctx context.Context, table Table, code string) (int64, error) {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE plantation_code = $1`, table.tableName()), code)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteAll truncates one table.
func (r *Repository) DeleteAll(ctx context.Context, table Table) (int64, error) {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, table.tableName()))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// List returns one page of records, newest date first.
func (r *Repository) List(ctx context.Context, table Table, req ListRequest) ([]Record, int, error) {
	var clauses []string
	var args []any
	if req.Plantation != "" {
		args = append(args, req.Plantation)
		clauses = append(clauses, fmt.Sprintf("plantation_code = $%d", len(args)))
	}
	if req.Category != "" {
		args = append(args, req.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	name := table.tableName()
	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, name, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.PerPage
	if limit <= 0 {
		limit = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY application_date DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d`,
		recordColumns, name, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.PlantationCode, &rec.PlantationName,
			&rec.Date, &rec.Division, &rec.PlantingYear, &rec.Block, &rec.AreaHa,
			&rec.InventoryCount, &rec.FertilizerType, &rec.ApplicationRound,
			&rec.DosagePerUnit, &rec.MassKg, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
