package fertilization

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/agroplan-erp/agroplan/internal/shared"
)

// repository is the persistence contract the ingestion service relies on.
type repository interface {
	ReplaceBatch(ctx context.Context, table Table, records []Record) (replaced, inserted int, err error)
	Update(ctx context.Context, table Table, id int64, rec Record) error
	Delete(ctx context.Context, table Table, id int64) error
	DeleteByPlantation(ctx context.Context, table Table, code string) (int64, error)
	DeleteAll(ctx context.Context, table Table) (int64, error)
	List(ctx context.Context, table Table, req ListRequest) ([]Record, int, error)
}

// Invalidator drops report cache entries tagged for one table.
type Invalidator interface {
	Invalidate(ctx context.Context, tag string) error
}

// WarmupEnqueuer schedules a report warmup after a successful write.
type WarmupEnqueuer interface {
	EnqueueReportWarmup(ctx context.Context, trigger string) error
}

// Service coordinates record ingestion and keeps the report cache coherent:
// every successful write invalidates the affected table's tag before the
// call returns.
type Service struct {
	repo     repository
	cache    Invalidator
	enqueuer WarmupEnqueuer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService builds the ingestion service. enqueuer may be nil when no
// worker is deployed.
func NewService(repo repository, cache Invalidator, enqueuer WarmupEnqueuer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		enqueuer: enqueuer,
		validate: validator.New(),
		logger:   logger,
	}
}

// ReplaceBatch validates and applies one bulk upload: rows sharing an
// identity tuple with the batch are replaced, everything else is untouched.
func (s *Service) ReplaceBatch(ctx context.Context, table Table, req BatchRequest) (BatchResult, error) {
	if len(req.Records) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	if err := s.validate.Struct(req); err != nil {
		return BatchResult{}, err
	}
	records := make([]Record, len(req.Records))
	for i, in := range req.Records {
		records[i] = in.toRecord()
	}
	replaced, inserted, err := s.repo.ReplaceBatch(ctx, table, records)
	if err != nil {
		return BatchResult{}, err
	}
	if err := s.afterWrite(ctx, table, "batch"); err != nil {
		return BatchResult{}, err
	}
	return BatchResult{BatchID: uuid.NewString(), Inserted: inserted, Replaced: replaced}, nil
}

// UpdateRecord edits a single record by id.
func (s *Service) UpdateRecord(ctx context.Context, table Table, id int64, in RecordInput) error {
	if err := s.validate.Struct(in); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, table, id, in.toRecord()); err != nil {
		return err
	}
	return s.afterWrite(ctx, table, "update")
}

// DeleteRecord removes a single record by id.
func (s *Service) DeleteRecord(ctx context.Context, table Table, id int64) error {
	if err := s.repo.Delete(ctx, table, id); err != nil {
		return err
	}
	return s.afterWrite(ctx, table, "delete")
}

// DeleteByPlantation removes every record of one plantation.
func (s *Service) DeleteByPlantation(ctx context.Context, table Table, code string) (int64, error) {
	count, err := s.repo.DeleteByPlantation(ctx, table, code)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		if err := s.afterWrite(ctx, table, "delete-plantation"); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// DeleteAll clears one table.
func (s *Service) DeleteAll(ctx context.Context, table Table) (int64, error) {
	count, err := s.repo.DeleteAll(ctx, table)
	if err != nil {
		return 0, err
	}
	if err := s.afterWrite(ctx, table, "delete-all"); err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one page of records with pagination metadata.
func (s *Service) List(ctx context.Context, table Table, req ListRequest) ([]Record, shared.Pagination, error) {
	records, total, err := s.repo.List(ctx, table, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return records, shared.NewPagination(req.Page, req.PerPage, total), nil
}

// afterWrite invalidates the table's cache tag, then schedules a warmup.
// Invalidation failure fails the write; warmup is best effort.
func (s *Service) afterWrite(ctx context.Context, table Table, trigger string) error {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, table.CacheTag()); err != nil {
			return err
		}
	}
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueReportWarmup(ctx, trigger); err != nil && s.logger != nil {
			s.logger.Warn("enqueue report warmup", slog.String("trigger", trigger), slog.Any("error", err))
		}
	}
	return nil
}
