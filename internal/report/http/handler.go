package reporthttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/agroplan-erp/agroplan/internal/report"
)

const requestTimeout = 10 * time.Second

// ReportService defines the comparison-report contract used by the handler.
type ReportService interface {
	BuildReport(ctx context.Context, raw report.RawFilters) (report.Report, error)
}

// Handler serves the plan-vs-actual dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service ReportService
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rep, err := h.service.BuildReport(ctx, parseRawFilters(r))
	if err != nil {
		h.logger.Error("build fertilization report", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rep)
}

func (h *Handler) handleTypeBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rep, err := h.service.BuildReport(ctx, parseRawFilters(r))
	if err != nil {
		h.logger.Error("build fertilizer type breakdown", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		ByFertilizerType  []report.FertilizerTypeRow `json:"by_fertilizer_type"`
		ResolvedPeriod    report.Period              `json:"resolved_period"`
		HasUserDateFilter bool                       `json:"has_user_date_filter"`
	}{rep.ByFertilizerType, rep.ResolvedPeriod, rep.HasUserDateFilter})
}

func parseRawFilters(r *http.Request) report.RawFilters {
	q := r.URL.Query()
	return report.RawFilters{
		District:         q.Get("district"),
		Plantation:       q.Get("plantation"),
		Category:         q.Get("category"),
		Division:         q.Get("division"),
		PlantingYear:     q.Get("planting_year"),
		Block:            q.Get("block"),
		FertilizerType:   q.Get("fertilizer_type"),
		ApplicationRound: q.Get("application_round"),
		Year:             q.Get("year"),
		DateFrom:         q.Get("date_from"),
		DateTo:           q.Get("date_to"),
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
