package fertilization

import (
	"time"

	"github.com/agroplan-erp/agroplan/internal/report"
)

// RecordInput is one uploaded or edited line before validation.
type RecordInput struct {
	Category         string  `json:"category" validate:"required,oneof=TM TBM BIBITAN"`
	PlantationCode   string  `json:"plantation_code" validate:"required,max=16"`
	PlantationName   string  `json:"plantation_name" validate:"max=128"`
	Date             string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Division         string  `json:"division" validate:"max=64"`
	PlantingYear     string  `json:"planting_year" validate:"max=16"`
	Block            string  `json:"block" validate:"max=64"`
	AreaHa           float64 `json:"area_ha" validate:"gte=0"`
	InventoryCount   int     `json:"inventory_count" validate:"gte=0"`
	FertilizerType   string  `json:"fertilizer_type" validate:"required,max=64"`
	ApplicationRound int     `json:"application_round" validate:"gte=0,lte=3"`
	DosagePerUnit    float64 `json:"dosage_per_unit" validate:"gte=0"`
	MassKg           float64 `json:"mass_kg" validate:"gte=0"`
}

func (in RecordInput) toRecord() Record {
	rec := Record{
		Category:         report.Category(in.Category),
		PlantationCode:   in.PlantationCode,
		PlantationName:   in.PlantationName,
		Division:         in.Division,
		PlantingYear:     in.PlantingYear,
		Block:            in.Block,
		AreaHa:           in.AreaHa,
		InventoryCount:   in.InventoryCount,
		FertilizerType:   in.FertilizerType,
		ApplicationRound: in.ApplicationRound,
		DosagePerUnit:    in.DosagePerUnit,
		MassKg:           in.MassKg,
	}
	if in.Date != "" {
		if t, err := time.Parse("2006-01-02", in.Date); err == nil {
			rec.Date = &t
		}
	}
	return rec
}

// BatchRequest is the bulk replace payload for one table.
type BatchRequest struct {
	Records []RecordInput `json:"records" validate:"required,min=1,dive"`
}

// BatchResult reports the outcome of a bulk replace.
type BatchResult struct {
	BatchID  string `json:"batch_id"`
	Inserted int    `json:"inserted"`
	Replaced int    `json:"replaced"`
}

// ListRequest scopes a paginated listing.
type ListRequest struct {
	Plantation string
	Category   string
	Page       int
	PerPage    int
}
