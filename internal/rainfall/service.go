package rainfall

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
)

// repository is the persistence contract for rainfall readings.
type repository interface {
	Upsert(ctx context.Context, obs Observation) error
	ListRange(ctx context.Context, code string, from, to time.Time) ([]Observation, error)
	MonthlyTotals(ctx context.Context, year int, month time.Month) ([]MonthlyTotal, error)
}

// Service validates and records daily rainfall readings.
type Service struct {
	repo     repository
	validate *validator.Validate
}

// NewService builds the rainfall service.
func NewService(repo repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Record upserts one reading; a second upload for the same day replaces it.
func (s *Service) Record(ctx context.Context, in ObservationInput) error {
	if err := s.validate.Struct(in); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return err
	}
	return s.repo.Upsert(ctx, Observation{
		PlantationCode: in.PlantationCode,
		Date:           date,
		Millimeters:    in.Millimeters,
	})
}

// ListRange returns readings for one plantation inside [from, to].
func (s *Service) ListRange(ctx context.Context, code string, from, to time.Time) ([]Observation, error) {
	if from.After(to) {
		from, to = to, from
	}
	return s.repo.ListRange(ctx, code, from, to)
}

// MonthlyTotals sums rainfall per plantation for one calendar month.
func (s *Service) MonthlyTotals(ctx context.Context, year int, month time.Month) ([]MonthlyTotal, error) {
	return s.repo.MonthlyTotals(ctx, year, month)
}
