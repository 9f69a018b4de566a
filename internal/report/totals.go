package report

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BuildTotals computes the scope-level plan/actual sums for the filtered
// report: overall, per crop category and per district. Plan legs are always
// all-time; actual legs receive the period only when the caller filtered by
// date (the same nil-period convention the rollups use).
//
// District exclusivity: a pinned plantation puts the whole total in its own
// district, a pinned district zeroes the other one, and with neither pinned
// each district is summed independently over its roster subset so the two
// legs add up to the overall total.
func BuildTotals(ctx context.Context, ds Datastore, c FilterCriteria, period *Period) (Totals, error) {
	totals := Totals{
		ByCategory: make(map[Category]ScopeTotals, 3),
		ByDistrict: make(map[District]ScopeTotals, 2),
	}

	g, ctx := errgroup.WithContext(ctx)

	var overall ScopeTotals
	g.Go(func() error {
		return sumScope(ctx, ds, c, nil, period, nil, &overall)
	})

	categories := []Category{CategoryTM, CategoryTBM, CategoryBibitan}
	byCategory := make([]ScopeTotals, len(categories))
	for i, category := range categories {
		g.Go(func() error {
			return sumScope(ctx, ds, c, &category, period, nil, &byCategory[i])
		})
	}

	districts := []District{DistrictBarat, DistrictTimur}
	byDistrict := make([]ScopeTotals, len(districts))
	splitDistricts := c.Plantation == nil && c.District == nil
	if splitDistricts {
		for i, district := range districts {
			codes := DistrictCodes(district)
			g.Go(func() error {
				return sumScope(ctx, ds, c, nil, period, codes, &byDistrict[i])
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	totals.Overall = overall
	for i, category := range categories {
		totals.ByCategory[category] = byCategory[i]
	}

	switch {
	case splitDistricts:
		for i, district := range districts {
			totals.ByDistrict[district] = byDistrict[i]
		}
	case c.Plantation != nil:
		for _, district := range districts {
			totals.ByDistrict[district] = ScopeTotals{}
		}
		if district, ok := DistrictOf(*c.Plantation); ok {
			totals.ByDistrict[district] = overall
		}
	default: // district filter active
		for _, district := range districts {
			totals.ByDistrict[district] = ScopeTotals{}
		}
		totals.ByDistrict[*c.District] = overall
	}

	return totals, nil
}

func sumScope(ctx context.Context, ds Datastore, c FilterCriteria, category *Category, period *Period, codes []string, out *ScopeTotals) error {
	plan, err := ds.TotalPlan(ctx, c, category, codes)
	if err != nil {
		return err
	}
	actual, err := ds.TotalActual(ctx, c, category, period, codes)
	if err != nil {
		return err
	}
	out.Plan = round2(plan)
	out.Actual = round2(actual)
	return nil
}
