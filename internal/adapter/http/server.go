// Package http exposes the simulation, allocation and comparison services as a JSON API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/simaogato/wealthsim/internal/adapter/chart"
	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/allocation"
	"github.com/simaogato/wealthsim/internal/usecase/comparison"
	"github.com/simaogato/wealthsim/internal/usecase/dashboard"
	"github.com/simaogato/wealthsim/internal/usecase/simulation"
)

// healthTimeout bounds the store ping done by GET /health
const healthTimeout = 2 * time.Second

// Options configures the HTTP server
type Options struct {
	// ExposeInternalErrors returns the underlying message on 500 responses
	ExposeInternalErrors bool
	CORSOrigins          []string
	Logger               *slog.Logger
}

// Server handles the JSON API
type Server struct {
	SimulationService *simulation.SimulationService
	AllocationService *allocation.AllocationService
	ComparisonService *comparison.ComparisonService
	SummaryService    *dashboard.SummaryService
	Charts            *chart.Renderer
	Pinger            domain.Pinger

	opts    Options
	logger  *slog.Logger
	started time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(
	simulationService *simulation.SimulationService,
	allocationService *allocation.AllocationService,
	comparisonService *comparison.ComparisonService,
	summaryService *dashboard.SummaryService,
	charts *chart.Renderer,
	pinger domain.Pinger,
	opts Options,
) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		SimulationService: simulationService,
		AllocationService: allocationService,
		ComparisonService: comparisonService,
		SummaryService:    summaryService,
		Charts:            charts,
		Pinger:            pinger,
		opts:              opts,
		logger:            logger,
		started:           time.Now(),
	}
}

// Handler returns the routed API wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /simulations", s.handleCreateSimulation)
	mux.HandleFunc("GET /simulations", s.handleListSimulations)
	mux.HandleFunc("GET /simulations/{id}", s.handleGetSimulation)
	mux.HandleFunc("DELETE /simulations/{id}", s.handleDeleteSimulation)
	mux.HandleFunc("GET /simulations/{id}/projection", s.handleProjection)
	mux.HandleFunc("GET /simulations/{id}/projection/chart", s.handleProjectionChart)
	mux.HandleFunc("GET /simulations/{id}/summary", s.handleSummary)

	mux.HandleFunc("POST /simulations/{simulationId}/allocations/financial", s.handleCreateAllocation)
	mux.HandleFunc("GET /simulations/{simulationId}/allocations/financial", s.handleListAllocations)
	mux.HandleFunc("POST /simulations/{simulationId}/allocations/financial/{allocationId}/history", s.handleAddValueEntry)

	mux.HandleFunc("POST /simulations/compare", s.handleCompare)
	mux.HandleFunc("POST /simulations/compare/chart", s.handleCompareChart)

	return Chain(mux,
		RequestID(),
		AccessLog(s.logger),
		RecoverPanic(s.logger),
		CORS(s.opts.CORSOrigins),
	)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, s.logger, s.opts.ExposeInternalErrors, err)
}
