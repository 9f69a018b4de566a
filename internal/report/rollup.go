package report

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// loadRollups issues the five grouped sums for one category concurrently.
// The sub-queries are mutually independent; the first failure cancels the
// rest and fails the whole request, since the row builder assumes every
// grouping is present.
func loadRollups(ctx context.Context, ds Datastore, c FilterCriteria, category Category, period *Period, clock Clock) (categoryRollups, error) {
	var rollups categoryRollups
	today := clock.Today()
	tomorrow := clock.Tomorrow()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rollups.planByRound, err = ds.PlanByRound(ctx, c, &category)
		return err
	})
	g.Go(func() error {
		var err error
		rollups.actualByRound, err = ds.ActualByRound(ctx, c, &category, period)
		return err
	})
	g.Go(func() error {
		var err error
		rollups.planToday, err = ds.PlanForDay(ctx, c, &category, today)
		return err
	})
	g.Go(func() error {
		var err error
		rollups.planTomorrow, err = ds.PlanForDay(ctx, c, &category, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		rollups.actualToday, err = ds.ActualForDay(ctx, c, &category, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return categoryRollups{}, err
	}
	return rollups, nil
}

// loadTypeBreakdown merges the plan and actual per-type sums into sorted
// breakdown rows.
func loadTypeBreakdown(ctx context.Context, ds Datastore, c FilterCriteria, period *Period) ([]FertilizerTypeRow, error) {
	var plans, actuals map[string]float64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = ds.PlanByType(ctx, c)
		return err
	})
	g.Go(func() error {
		var err error
		actuals, err = ds.ActualByType(ctx, c, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(plans)+len(actuals))
	seen := make(map[string]bool, len(plans)+len(actuals))
	for name := range plans {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range actuals {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := make([]FertilizerTypeRow, 0, len(names))
	for _, name := range names {
		plan := plans[name]
		actual := actuals[name]
		rows = append(rows, FertilizerTypeRow{
			FertilizerType: name,
			Plan:           round2(plan),
			Actual:         round2(actual),
			Percent:        percentOf(actual, plan),
		})
	}
	return rows, nil
}
