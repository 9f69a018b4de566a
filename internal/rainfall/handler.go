package rainfall

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agroplan-erp/agroplan/internal/platform/httpx"
)

// Handler serves the rainfall tracking endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the rainfall HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers rainfall endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Post("/rainfall/observations", h.handleRecord)
	r.Get("/rainfall/plantations/{code}", h.handleListRange)
	r.Get("/rainfall/monthly", h.handleMonthly)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var in ObservationInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json payload")
		return
	}
	if err := h.service.Record(r.Context(), in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", verrs.Error())
			return
		}
		h.logger.Error("record rainfall", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListRange(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	q := r.URL.Query()
	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "to must be YYYY-MM-DD")
		return
	}
	observations, err := h.service.ListRange(r.Context(), code, from, to)
	if err != nil {
		h.logger.Error("list rainfall", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"observations": observations})
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "year must be numeric")
		return
	}
	monthNum, err := strconv.Atoi(q.Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "month must be 1-12")
		return
	}
	totals, err := h.service.MonthlyTotals(r.Context(), year, time.Month(monthNum))
	if err != nil {
		h.logger.Error("monthly rainfall", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"totals": totals})
}
