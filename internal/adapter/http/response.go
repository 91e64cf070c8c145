package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/dashboard"
)

type simulationResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartDate time.Time   `json:"startDate"`
	RealRate  json.Number `json:"realRate"`
	CreatedAt time.Time   `json:"createdAt"`
}

type valueEntryResponse struct {
	ID           string      `json:"id"`
	AllocationID string      `json:"allocationId"`
	Value        json.Number `json:"value"`
	Date         time.Time   `json:"date"`
}

type allocationResponse struct {
	ID           string               `json:"id"`
	SimulationID string               `json:"simulationId"`
	Name         string               `json:"name"`
	CreatedAt    time.Time            `json:"createdAt"`
	History      []valueEntryResponse `json:"history"`
}

type yearProjectionResponse struct {
	Year       int         `json:"year"`
	TotalValue json.Number `json:"totalValue"`
}

type compareDetailedResponse struct {
	Results map[string][]yearProjectionResponse `json:"results"`
	Missing []string                            `json:"missing"`
}

type allocationValueResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	LatestValue json.Number `json:"latestValue"`
	LatestDate  *time.Time  `json:"latestDate"`
}

type summaryResponse struct {
	SimulationID    string                    `json:"simulationId"`
	AllocationCount int                       `json:"allocationCount"`
	TotalValue      json.Number               `json:"totalValue"`
	Allocations     []allocationValueResponse `json:"allocations"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Uptime    float64   `json:"uptime"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string           `json:"error,omitempty"`
	Message string           `json:"message"`
	Details []fieldErrorBody `json:"details,omitempty"`
}

func toSimulationResponse(sim *domain.Simulation) simulationResponse {
	return simulationResponse{
		ID:        sim.ID.String(),
		Name:      sim.Name,
		StartDate: sim.StartDate,
		RealRate:  json.Number(sim.RealRate.String()),
		CreatedAt: sim.CreatedAt,
	}
}

func toAllocationResponse(a *domain.FinancialAllocation) allocationResponse {
	history := make([]valueEntryResponse, 0, len(a.History))
	for _, entry := range a.History {
		history = append(history, toValueEntryResponse(&entry))
	}
	return allocationResponse{
		ID:           a.ID.String(),
		SimulationID: a.SimulationID.String(),
		Name:         a.Name,
		CreatedAt:    a.CreatedAt,
		History:      history,
	}
}

func toValueEntryResponse(entry *domain.AllocationValueEntry) valueEntryResponse {
	return valueEntryResponse{
		ID:           entry.ID.String(),
		AllocationID: entry.AllocationID.String(),
		Value:        json.Number(entry.Value.String()),
		Date:         entry.Date,
	}
}

// toProjectionResponse renders totals with exactly two decimals
func toProjectionResponse(points []domain.YearProjection) []yearProjectionResponse {
	out := make([]yearProjectionResponse, 0, len(points))
	for _, p := range points {
		out = append(out, yearProjectionResponse{
			Year:       p.Year,
			TotalValue: json.Number(p.TotalValue.StringFixed(2)),
		})
	}
	return out
}

func toSummaryResponse(summary *dashboard.SummaryResult) summaryResponse {
	allocations := make([]allocationValueResponse, 0, len(summary.Allocations))
	for _, a := range summary.Allocations {
		item := allocationValueResponse{
			ID:          a.AllocationID.String(),
			Name:        a.Name,
			LatestValue: json.Number(a.LatestValue.StringFixed(2)),
		}
		if !a.LatestDate.IsZero() {
			date := a.LatestDate
			item.LatestDate = &date
		}
		allocations = append(allocations, item)
	}
	return summaryResponse{
		SimulationID:    summary.SimulationID.String(),
		AllocationCount: len(allocations),
		TotalValue:      json.Number(summary.TotalValue.StringFixed(2)),
		Allocations:     allocations,
	}
}

// writeJSON writes a JSON response with the provided status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto status codes.
// Internal details are only exposed when exposeInternal is set.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, exposeInternal bool, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		details := make([]fieldErrorBody, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, fieldErrorBody{Field: f.Field, Message: f.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "Validation Error",
			Message: verr.Error(),
			Details: details,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: err.Error()})
		return
	}

	logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get(requestIDHeader),
		"error", err,
	)

	message := "Something went wrong"
	if exposeInternal {
		message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "Internal Server Error",
		Message: message,
	})
}
