package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Service coordinates filter normalization, the cached computation and the
// rollup fan-out behind the comparison report.
type Service struct {
	repo  Datastore
	cache *Cache
	clock Clock
}

// NewService wires a Datastore with the cache helper and the report clock.
func NewService(repo Datastore, cache *Cache, clock Clock) *Service {
	return &Service{repo: repo, cache: cache, clock: clock}
}

// BuildReport resolves the caller's raw filters and returns the full
// plan-vs-actual report, served from cache when a matching signature is
// still valid.
func (s *Service) BuildReport(ctx context.Context, raw RawFilters) (Report, error) {
	criteria := ParseFilters(raw, s.clock.location())

	period, hasUserDateFilter, err := s.resolvePeriod(ctx, criteria)
	if err != nil {
		return Report{}, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, criteria, period, hasUserDateFilter)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Report{}, err
		}
		return value.(Report), nil
	}

	key, err := s.cache.BuildKey(ctx, []string{TagPlans, TagActuals}, signature(criteria, period, hasUserDateFilter))
	if err != nil {
		return Report{}, err
	}
	var rep Report
	if err := s.cache.FetchJSON(ctx, key, &rep, loader); err != nil {
		return Report{}, err
	}
	return rep, nil
}

func (s *Service) resolvePeriod(ctx context.Context, criteria FilterCriteria) (Period, bool, error) {
	defaultRange := func() (time.Time, time.Time, bool, error) {
		return s.repo.ActualDateRange(ctx)
	}
	return ResolvePeriod(criteria, defaultRange, s.clock)
}

func (s *Service) compute(ctx context.Context, criteria FilterCriteria, period Period, hasUserDateFilter bool) (Report, error) {
	// Actual legs are period-bounded only under an explicit date filter;
	// the nil period reads all-time.
	var bound *Period
	if hasUserDateFilter {
		bound = &period
	}

	var (
		tmRows   []ComparisonRow
		tbmRows  []ComparisonRow
		typeRows []FertilizerTypeRow
		totals   Totals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rollups, err := loadRollups(gctx, s.repo, criteria, CategoryTM, bound, s.clock)
		if err != nil {
			return err
		}
		tmRows = BuildRows(rollups)
		return nil
	})
	g.Go(func() error {
		rollups, err := loadRollups(gctx, s.repo, criteria, CategoryTBM, bound, s.clock)
		if err != nil {
			return err
		}
		tbmRows = BuildRows(rollups)
		return nil
	})
	g.Go(func() error {
		var err error
		typeRows, err = loadTypeBreakdown(gctx, s.repo, criteria, bound)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = BuildTotals(gctx, s.repo, criteria, bound)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rows := make([]ComparisonRow, 0, 2*len(Roster))
	rows = append(rows, NormalizeRows(CategoryTM, tmRows)...)
	rows = append(rows, NormalizeRows(CategoryTBM, tbmRows)...)

	return Report{
		Rows:              rows,
		Totals:            totals,
		ByFertilizerType:  typeRows,
		ResolvedPeriod:    period,
		HasUserDateFilter: hasUserDateFilter,
	}, nil
}
