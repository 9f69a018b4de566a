package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agroplan-erp/agroplan/internal/fertilization"
	"github.com/agroplan-erp/agroplan/internal/rainfall"
	reporthttp "github.com/agroplan-erp/agroplan/internal/report/http"
	"github.com/agroplan-erp/agroplan/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	ReportHandler        *reporthttp.Handler
	FertilizationHandler *fertilization.Handler
	RainfallHandler      *rainfall.Handler
	JobHandler           *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		if params.ReportHandler != nil {
			params.ReportHandler.MountRoutes(api)
		}
		if params.FertilizationHandler != nil {
			params.FertilizationHandler.MountRoutes(api)
		}
		if params.RainfallHandler != nil {
			params.RainfallHandler.MountRoutes(api)
		}
		if params.JobHandler != nil {
			api.Route("/jobs", func(jr chi.Router) {
				params.JobHandler.MountRoutes(jr)
			})
		}
	})

	return r
}
