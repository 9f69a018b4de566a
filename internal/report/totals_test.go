package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalsFixture() *memStore {
	store := newMemStore()
	store.plans = []storeRow{
		{category: CategoryTM, plantation: "SGH", fertType: "Urea", round: 1, mass: 100},
		{category: CategoryTBM, plantation: "MJU", fertType: "NPK", round: 1, mass: 40},
		{category: CategoryBibitan, plantation: "KRS", fertType: "Dolomite", round: 1, mass: 10},
	}
	store.actuals = []storeRow{
		{category: CategoryTM, plantation: "SGH", fertType: "Urea", round: 1, mass: 70, date: date(2026, 4, 2), hasDate: true},
		{category: CategoryTBM, plantation: "MJU", fertType: "NPK", round: 1, mass: 15, date: date(2026, 4, 3), hasDate: true},
	}
	return store
}

func TestBuildTotalsSplitsDistricts(t *testing.T) {
	store := totalsFixture()
	totals, err := BuildTotals(context.Background(), store, FilterCriteria{}, nil)
	require.NoError(t, err)

	assert.Equal(t, ScopeTotals{Plan: 150, Actual: 85}, totals.Overall)
	assert.Equal(t, ScopeTotals{Plan: 100, Actual: 70}, totals.ByCategory[CategoryTM])
	assert.Equal(t, ScopeTotals{Plan: 40, Actual: 15}, totals.ByCategory[CategoryTBM])
	assert.Equal(t, ScopeTotals{Plan: 10, Actual: 0}, totals.ByCategory[CategoryBibitan])

	barat := totals.ByDistrict[DistrictBarat]
	timur := totals.ByDistrict[DistrictTimur]
	assert.Equal(t, ScopeTotals{Plan: 100, Actual: 70}, barat)
	assert.Equal(t, ScopeTotals{Plan: 50, Actual: 15}, timur)
	// The two district legs reassemble the overall total.
	assert.Equal(t, totals.Overall.Plan, barat.Plan+timur.Plan)
	assert.Equal(t, totals.Overall.Actual, barat.Actual+timur.Actual)
}

func TestBuildTotalsPlantationPinned(t *testing.T) {
	store := totalsFixture()
	plantation := "MJU"
	totals, err := BuildTotals(context.Background(), store, FilterCriteria{Plantation: &plantation}, nil)
	require.NoError(t, err)

	assert.Equal(t, ScopeTotals{Plan: 40, Actual: 15}, totals.Overall)
	// A pinned estate attributes everything to its own district.
	assert.Equal(t, totals.Overall, totals.ByDistrict[DistrictTimur])
	assert.Equal(t, ScopeTotals{}, totals.ByDistrict[DistrictBarat])
}

func TestBuildTotalsUnknownPlantation(t *testing.T) {
	store := totalsFixture()
	plantation := "ZZZ"
	totals, err := BuildTotals(context.Background(), store, FilterCriteria{Plantation: &plantation}, nil)
	require.NoError(t, err)

	// An off-roster code attributes to neither district.
	assert.Equal(t, ScopeTotals{}, totals.ByDistrict[DistrictBarat])
	assert.Equal(t, ScopeTotals{}, totals.ByDistrict[DistrictTimur])
}

func TestBuildTotalsDistrictPinned(t *testing.T) {
	store := totalsFixture()
	district := DistrictTimur
	totals, err := BuildTotals(context.Background(), store, FilterCriteria{District: &district}, nil)
	require.NoError(t, err)

	assert.Equal(t, ScopeTotals{Plan: 50, Actual: 15}, totals.Overall)
	assert.Equal(t, totals.Overall, totals.ByDistrict[DistrictTimur])
	assert.Equal(t, ScopeTotals{}, totals.ByDistrict[DistrictBarat])
}

func TestBuildTotalsPeriodBoundsActualsOnly(t *testing.T) {
	store := totalsFixture()
	period := &Period{Start: date(2026, 4, 3), End: date(2026, 4, 30)}
	totals, err := BuildTotals(context.Background(), store, FilterCriteria{}, period)
	require.NoError(t, err)

	// Only the April 3 execution falls in the window; plans are untouched.
	assert.Equal(t, ScopeTotals{Plan: 150, Actual: 15}, totals.Overall)
	assert.Equal(t, ScopeTotals{Plan: 100, Actual: 0}, totals.ByCategory[CategoryTM])
}
