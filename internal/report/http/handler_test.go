package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroplan-erp/agroplan/internal/report"
)

type stubService struct {
	lastRaw report.RawFilters
	report  report.Report
	err     error
}

func (s *stubService) BuildReport(ctx context.Context, raw report.RawFilters) (report.Report, error) {
	s.lastRaw = raw
	return s.report, s.err
}

func newTestRouter(svc ReportService) chi.Router {
	h := NewHandler(slog.New(slog.DiscardHandler), svc)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestHandleReportPassesFilters(t *testing.T) {
	svc := &stubService{report: report.Report{HasUserDateFilter: true}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/fertilization?district=BARAT&category=TM&date_from=2026-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "BARAT", svc.lastRaw.District)
	assert.Equal(t, "TM", svc.lastRaw.Category)
	assert.Equal(t, "2026-01-01", svc.lastRaw.DateFrom)

	var body report.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.HasUserDateFilter)
}

func TestHandleReportServiceFailure(t *testing.T) {
	svc := &stubService{err: errors.New("pool exhausted")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/fertilization", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleTypeBreakdownSubset(t *testing.T) {
	svc := &stubService{report: report.Report{
		Rows: []report.ComparisonRow{{PlantationCode: "SGH"}},
		ByFertilizerType: []report.FertilizerTypeRow{
			{FertilizerType: "Urea", Plan: 100, Actual: 60, Percent: 60},
		},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/fertilization/types", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body, "by_fertilizer_type")
	assert.NotContains(t, body, "rows")
}
