package fertilization

import (
	"errors"
	"time"

	"github.com/agroplan-erp/agroplan/internal/report"
)

// Table selects which of the two record collections an operation targets.
type Table string

const (
	// TablePlans holds intended applications.
	TablePlans Table = "plans"
	// TableActuals holds executed applications.
	TableActuals Table = "actuals"
)

// ParseTable maps a URL segment to a Table.
func ParseTable(raw string) (Table, bool) {
	switch Table(raw) {
	case TablePlans:
		return TablePlans, true
	case TableActuals:
		return TableActuals, true
	default:
		return "", false
	}
}

func (t Table) tableName() string {
	if t == TableActuals {
		return "fertilizer_actuals"
	}
	return "fertilizer_plans"
}

// CacheTag names the report cache tag invalidated by writes to this table.
func (t Table) CacheTag() string {
	if t == TableActuals {
		return report.TagActuals
	}
	return report.TagPlans
}

// Record is one fertilization line, shared by the plan and actual tables.
type Record struct {
	ID               int64           `json:"id"`
	Category         report.Category `json:"category"`
	PlantationCode   string          `json:"plantation_code"`
	PlantationName   string          `json:"plantation_name"`
	Date             *time.Time      `json:"date"`
	Division         string          `json:"division"`
	PlantingYear     string          `json:"planting_year"`
	Block            string          `json:"block"`
	AreaHa           float64         `json:"area_ha"`
	InventoryCount   int             `json:"inventory_count"`
	FertilizerType   string          `json:"fertilizer_type"`
	ApplicationRound int             `json:"application_round"`
	DosagePerUnit    float64         `json:"dosage_per_unit"`
	MassKg           float64         `json:"mass_kg"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// identity is the tuple bulk uploads replace on: rows carrying the same
// tuple are deleted before the new batch is inserted.
type identity struct {
	Category         report.Category
	PlantationCode   string
	Division         string
	PlantingYear     string
	Block            string
	FertilizerType   string
	ApplicationRound int
	Date             string
}

func (r Record) identity() identity {
	date := ""
	if r.Date != nil {
		date = r.Date.Format("2006-01-02")
	}
	return identity{
		Category:         r.Category,
		PlantationCode:   r.PlantationCode,
		Division:         r.Division,
		PlantingYear:     r.PlantingYear,
		Block:            r.Block,
		FertilizerType:   r.FertilizerType,
		ApplicationRound: r.ApplicationRound,
		Date:             date,
	}
}

var (
	// ErrNotFound occurs when a record id does not exist.
	ErrNotFound = errors.New("fertilization: record not found")
	// ErrDuplicate occurs when a write collides with an existing row.
	ErrDuplicate = errors.New("fertilization: duplicate record")
	// ErrEmptyBatch occurs when an upload carries no rows.
	ErrEmptyBatch = errors.New("fertilization: batch is empty")
)
