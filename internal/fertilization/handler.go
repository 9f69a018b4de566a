package fertilization

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agroplan-erp/agroplan/internal/platform/httpx"
	"github.com/agroplan-erp/agroplan/internal/shared"
)

// Handler serves the record ingestion endpoints for both tables.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the ingestion HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	var req BatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json payload")
		return
	}
	result, err := h.service.ReplaceBatch(r.Context(), table, req)
	if err != nil {
		h.writeError(w, "replace batch", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record id")
		return
	}
	var in RecordInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json payload")
		return
	}
	if err := h.service.UpdateRecord(r.Context(), table, id, in); err != nil {
		h.writeError(w, "update record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record id")
		return
	}
	if err := h.service.DeleteRecord(r.Context(), table, id); err != nil {
		h.writeError(w, "delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteByPlantation(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	code := chi.URLParam(r, "code")
	count, err := h.service.DeleteByPlantation(r.Context(), table, code)
	if err != nil {
		h.writeError(w, "delete by plantation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	count, err := h.service.DeleteAll(r.Context(), table)
	if err != nil {
		h.writeError(w, "delete all", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	table, ok := tableFromRequest(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	req := ListRequest{
		Plantation: q.Get("plantation"),
		Category:   q.Get("category"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		req.PerPage = perPage
	}
	records, pagination, err := h.service.List(r.Context(), table, req)
	if err != nil {
		h.writeError(w, "list records", err)
		return
	}
	httpx.JSON(w, http.StatusOK, struct {
		Records    []Record          `json:"records"`
		Pagination shared.Pagination `json:"pagination"`
	}{records, pagination})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "record not found")
	case errors.Is(err, ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Conflict", "record already exists")
	case errors.Is(err, ErrEmptyBatch):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "batch is empty")
	case errors.As(err, &verrs):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", verrs.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func tableFromRequest(w http.ResponseWriter, r *http.Request) (Table, bool) {
	table, ok := ParseTable(chi.URLParam(r, "table"))
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown table")
		return "", false
	}
	return table, true
}
