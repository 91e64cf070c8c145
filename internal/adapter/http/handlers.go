package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/simaogato/wealthsim/internal/adapter/chart"
	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/comparison"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
		Uptime:    time.Since(s.started).Seconds(),
	}

	if err := s.Pinger.PingContext(ctx); err != nil {
		s.logger.Warn("health check failed", "error", err)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Health check failed"
		resp.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	input, err := parseCreateSimulation(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sim, err := s.SimulationService.Create(r.Context(), input)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSimulationResponse(sim))
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	sims, err := s.SimulationService.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]simulationResponse, 0, len(sims))
	for _, sim := range sims {
		out = append(out, toSimulationResponse(sim))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sim, err := s.SimulationService.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSimulationResponse(sim))
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.SimulationService.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	points, err := s.SimulationService.Projection(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionResponse(points))
}

func (s *Server) handleProjectionChart(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sim, err := s.SimulationService.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	points, err := s.SimulationService.Projection(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	key := strings.Join([]string{sim.ID.String(), sim.RealRate.String(), sim.StartDate.Format(time.DateOnly)}, "|")
	img, err := s.Charts.Projection(key, sim.Name, points)
	if err != nil {
		s.fail(w, r, chartError("id", err))
		return
	}

	writePNG(w, img)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("id", r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	summary, err := s.SummaryService.GetSummary(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) handleCreateAllocation(w http.ResponseWriter, r *http.Request) {
	input, err := parseCreateAllocation(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.AllocationService.CreateFinancial(r.Context(), input)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAllocationResponse(created))
}

func (s *Server) handleListAllocations(w http.ResponseWriter, r *http.Request) {
	simulationID, err := parseID("simulationId", r.PathValue("simulationId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	allocations, err := s.AllocationService.ListFinancial(r.Context(), simulationID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]allocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, toAllocationResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddValueEntry(w http.ResponseWriter, r *http.Request) {
	input, err := parseAddValueEntry(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entry, err := s.AllocationService.AddValueEntry(r.Context(), input)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toValueEntryResponse(entry))
}

// handleCompare returns {id: projection} for the simulations that exist.
// With ?detailed=true the ids that did not resolve are listed under "missing".
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	ids, err := parseCompare(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	outcomes, err := s.ComparisonService.Compare(r.Context(), ids)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	results := make(map[string][]yearProjectionResponse)
	for id, points := range comparison.Results(outcomes) {
		results[id] = toProjectionResponse(points)
	}

	if detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed")); detailed {
		missing := make([]string, 0)
		for _, id := range comparison.Missing(outcomes) {
			missing = append(missing, id.String())
		}
		writeJSON(w, http.StatusOK, compareDetailedResponse{Results: results, Missing: missing})
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleCompareChart(w http.ResponseWriter, r *http.Request) {
	ids, err := parseCompare(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	outcomes, err := s.ComparisonService.Compare(r.Context(), ids)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	series := make([]chart.Series, 0, len(outcomes))
	keys := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if !outcome.Found {
			continue
		}
		series = append(series, chart.Series{Name: outcome.Name, Projection: outcome.Projection})
		keys = append(keys, outcome.SimulationID.String())
	}

	img, err := s.Charts.Comparison(strings.Join(keys, ","), series)
	if err != nil {
		s.fail(w, r, chartError("simulationIds", err))
		return
	}

	writePNG(w, img)
}

// chartError turns "nothing to plot" into a client error
func chartError(field string, err error) error {
	if errors.Is(err, chart.ErrEmptySeries) {
		return domain.NewValidationError(field, err.Error())
	}
	return err
}

func writePNG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
