package rainfall

import "time"

// Observation is one day's rainfall reading for a plantation.
type Observation struct {
	ID             int64     `json:"id"`
	PlantationCode string    `json:"plantation_code"`
	Date           time.Time `json:"date"`
	Millimeters    float64   `json:"millimeters"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ObservationInput is an upsert payload. Dates arrive as YYYY-MM-DD only.
type ObservationInput struct {
	PlantationCode string  `json:"plantation_code" validate:"required,max=16"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Millimeters    float64 `json:"millimeters" validate:"gte=0"`
}

// MonthlyTotal sums one plantation's rainfall for a calendar month.
type MonthlyTotal struct {
	PlantationCode string  `json:"plantation_code"`
	Month          string  `json:"month"`
	Millimeters    float64 `json:"millimeters"`
	RainDays       int     `json:"rain_days"`
}
