package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	openapi "github.com/RosterIO/rosterd/api/openapi"
	"github.com/RosterIO/rosterd/internal/artifacts"
	"github.com/RosterIO/rosterd/internal/runs"
	"github.com/RosterIO/rosterd/internal/security/auth"
	"github.com/RosterIO/rosterd/internal/solver"
	"github.com/RosterIO/rosterd/internal/store"
)

// Deps wires the v1 handlers to the rest of the service.
type Deps struct {
	Store        *store.Store
	Runs         *runs.Manager
	Artifacts    *artifacts.Service
	Orchestrator *solver.Orchestrator
	Local        *solver.Solver
	Credentials  *auth.Credentials
	JWTSecret    []byte
	TokenTTL     time.Duration
	// RequestTimeout bounds each request at the root router. Zero
	// falls back to 60 seconds.
	RequestTimeout time.Duration
	SolverHealth   func() error // nil when no external solver is configured
	Log            *zap.Logger
}

type api struct {
	Deps
}

// Router returns the chi.Router for REST API v1.
func Router(d Deps) chi.Router {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	a := &api{Deps: d}

	r := chi.NewRouter()

	// Docs (Swagger UI) and spec under the versioned prefix
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/v1/openapi.yaml"),
	))
	r.Get("/openapi.yaml", serveOpenAPIStaticAsset)

	r.Get("/healthz", a.health)
	r.Post("/auth/login", a.login)

	// Everything below needs a session token (unless auth is disabled).
	r.Group(func(r chi.Router) {
		r.Use(a.requireAuth)

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", a.listShifts)
			r.Post("/", a.createShift)
			r.Get("/{shiftID}", a.getShift)
			r.Put("/{shiftID}", a.updateShift)
			r.Delete("/{shiftID}", a.deleteShift)
		})
		r.Route("/providers", func(r chi.Router) {
			r.Get("/", a.listProviders)
			r.Post("/", a.createProvider)
			r.Get("/{providerID}", a.getProvider)
			r.Put("/{providerID}", a.updateProvider)
			r.Delete("/{providerID}", a.deleteProvider)
		})
		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", a.listCalendars)
			r.Post("/", a.createCalendar)
			r.Get("/{calendarID}", a.getCalendar)
			r.Put("/{calendarID}", a.updateCalendar)
			r.Delete("/{calendarID}", a.deleteCalendar)
		})

		r.Post("/solve", a.solve)
		r.Post("/solve/local", a.solveLocal)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", a.listRuns)
			r.Get("/{runID}", a.getRun)
			r.Get("/{runID}/ws", a.runProgressWS)
			r.Get("/{runID}/artifacts", a.listRunArtifacts)
			r.Get("/{runID}/artifacts/{name}", a.downloadRunArtifact)
		})
	})

	return r
}

func serveOpenAPIStaticAsset(w http.ResponseWriter, r *http.Request) {
	data, err := openapi.FS.ReadFile("v1/rosterd.yaml")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read spec: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(data)
}
