package report

import (
	"testing"
	"time"
)

func TestCompileScopeEmpty(t *testing.T) {
	cond := compileScope(FilterCriteria{}, nil)
	if got := cond.where(); got != "" {
		t.Fatalf("unfiltered scope rendered %q", got)
	}
}

func TestCompileScopePlantationBeatsDistrict(t *testing.T) {
	plantation := "SGH"
	district := DistrictTimur
	cond := compileScope(FilterCriteria{Plantation: &plantation, District: &district}, nil)
	where := cond.where()
	if where != "WHERE plantation_code = $1" {
		t.Fatalf("where = %q", where)
	}
	if len(cond.args) != 1 || cond.args[0] != "SGH" {
		t.Fatalf("args = %v", cond.args)
	}
}

func TestCompileScopeDistrictExpandsToRoster(t *testing.T) {
	district := DistrictBarat
	cond := compileScope(FilterCriteria{District: &district}, nil)
	if cond.where() != "WHERE plantation_code = ANY($1)" {
		t.Fatalf("where = %q", cond.where())
	}
	codes, ok := cond.args[0].([]string)
	if !ok || len(codes) != 10 {
		t.Fatalf("args = %v", cond.args)
	}
}

func TestCompileScopeCategoryOverride(t *testing.T) {
	filtered := CategoryBibitan
	override := CategoryTM
	cond := compileScope(FilterCriteria{Category: &filtered}, &override)
	if len(cond.args) != 1 || cond.args[0] != "TM" {
		t.Fatalf("override should win: args = %v", cond.args)
	}
}

func TestCompileScopeYearRange(t *testing.T) {
	year := 2025
	cond := compileScope(FilterCriteria{Year: &year}, nil)
	want := "WHERE application_date >= $1 AND application_date < $2"
	if cond.where() != want {
		t.Fatalf("where = %q", cond.where())
	}
	from := cond.args[0].(time.Time)
	to := cond.args[1].(time.Time)
	if from.Year() != 2025 || to.Year() != 2026 {
		t.Fatalf("year bounds = %v .. %v", from, to)
	}
}

func TestConditionOrdinalsKeepCounting(t *testing.T) {
	plantation := "SGH"
	cond := compileScope(FilterCriteria{Plantation: &plantation}, nil).
		withPeriod(Period{Start: time.Now(), End: time.Now()}).
		withRoundRange()
	want := "WHERE plantation_code = $1 AND application_date >= $2 AND application_date <= $3 AND application_round BETWEEN 1 AND 3"
	if cond.where() != want {
		t.Fatalf("where = %q", cond.where())
	}
	if len(cond.args) != 3 {
		t.Fatalf("args = %v", cond.args)
	}
}
