package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/usecase/allocation"
	"github.com/simaogato/wealthsim/internal/usecase/simulation"
)

const maxBodyBytes = 1 << 20

// jsonNumber is a decimal that only accepts a bare JSON number, never a quoted one
type jsonNumber struct {
	decimal.Decimal
}

func (n *jsonNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeFor[float64]()}
	}
	return n.Decimal.UnmarshalJSON(data)
}

type createSimulationRequest struct {
	Name      *string     `json:"name"`
	StartDate *string     `json:"startDate"`
	RealRate  *jsonNumber `json:"realRate"`
}

type valueRequest struct {
	Name  *string     `json:"name"`
	Value *jsonNumber `json:"value"`
	Date  *string     `json:"date"`
}

type compareRequest struct {
	SimulationIDs []string `json:"simulationIds"`
}

// decodeJSON reads a single JSON object from the request body
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return domain.NewValidationError("body", "request body is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return domain.NewValidationError(typeErr.Field, fmt.Sprintf("expected %s", jsonTypeName(typeErr.Type)))
		case errors.As(err, &maxErr):
			return domain.NewValidationError("body", "request body too large")
		default:
			return domain.NewValidationError("body", "invalid JSON body")
		}
	}
	if dec.More() {
		return domain.NewValidationError("body", "request body must contain a single JSON object")
	}
	return nil
}

// jsonTypeName names a Go type the way a JSON client would see it
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// parseID parses a path or body identifier; a malformed one is a validation error, not a miss
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "invalid id")
	}
	return id, nil
}

func parseCreateSimulation(w http.ResponseWriter, r *http.Request) (simulation.CreateSimulationInput, error) {
	var req createSimulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return simulation.CreateSimulationInput{}, err
	}

	verr := &domain.ValidationError{}
	var input simulation.CreateSimulationInput

	if req.Name == nil || *req.Name == "" {
		verr.Add("name", "name is required")
	} else {
		input.Name = *req.Name
	}

	if req.StartDate == nil {
		verr.Add("startDate", "startDate is required")
	} else if date, ok := domain.ParseDate(*req.StartDate); !ok {
		verr.Add("startDate", "invalid date")
	} else {
		input.StartDate = date
	}

	switch {
	case req.RealRate == nil:
		verr.Add("realRate", "realRate is required")
	case req.RealRate.IsNegative():
		verr.Add("realRate", "rate must be greater than or equal to 0")
	default:
		input.RealRate = req.RealRate.Decimal
	}

	if err := verr.OrNil(); err != nil {
		return simulation.CreateSimulationInput{}, err
	}
	return input, nil
}

// parseValue validates the value/date pair shared by allocation creation and history appends
func parseValue(req valueRequest, verr *domain.ValidationError) domain.AllocationValueEntry {
	var entry domain.AllocationValueEntry

	switch {
	case req.Value == nil:
		verr.Add("value", "value is required")
	case !req.Value.IsPositive():
		verr.Add("value", "value must be positive")
	default:
		entry.Value = req.Value.Decimal
	}

	if req.Date == nil {
		verr.Add("date", "date is required")
	} else if date, ok := domain.ParseDate(*req.Date); !ok {
		verr.Add("date", "invalid date")
	} else {
		entry.Date = date
	}

	return entry
}

func parseCreateAllocation(w http.ResponseWriter, r *http.Request) (allocation.CreateAllocationInput, error) {
	simulationID, err := parseID("simulationId", r.PathValue("simulationId"))
	if err != nil {
		return allocation.CreateAllocationInput{}, err
	}

	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return allocation.CreateAllocationInput{}, err
	}

	verr := &domain.ValidationError{}
	input := allocation.CreateAllocationInput{SimulationID: simulationID}

	if req.Name == nil || *req.Name == "" {
		verr.Add("name", "allocation name is required")
	} else {
		input.Name = *req.Name
	}

	entry := parseValue(req, verr)
	input.InitialValue = entry.Value
	input.Date = entry.Date

	if err := verr.OrNil(); err != nil {
		return allocation.CreateAllocationInput{}, err
	}
	return input, nil
}

func parseAddValueEntry(w http.ResponseWriter, r *http.Request) (allocation.AddValueEntryInput, error) {
	verr := &domain.ValidationError{}

	simulationID, err := parseID("simulationId", r.PathValue("simulationId"))
	if err != nil {
		verr.Merge(err)
	}
	allocationID, err := parseID("allocationId", r.PathValue("allocationId"))
	if err != nil {
		verr.Merge(err)
	}
	if err := verr.OrNil(); err != nil {
		return allocation.AddValueEntryInput{}, err
	}

	var req valueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return allocation.AddValueEntryInput{}, err
	}

	entry := parseValue(req, verr)
	if err := verr.OrNil(); err != nil {
		return allocation.AddValueEntryInput{}, err
	}

	return allocation.AddValueEntryInput{
		SimulationID: simulationID,
		AllocationID: allocationID,
		Value:        entry.Value,
		Date:         entry.Date,
	}, nil
}

func parseCompare(w http.ResponseWriter, r *http.Request) ([]uuid.UUID, error) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}

	if len(req.SimulationIDs) == 0 {
		return nil, domain.NewValidationError("simulationIds", "at least one simulation ID is required")
	}

	verr := &domain.ValidationError{}
	ids := make([]uuid.UUID, 0, len(req.SimulationIDs))
	for i, raw := range req.SimulationIDs {
		id, err := parseID(fmt.Sprintf("simulationIds.%d", i), raw)
		if err != nil {
			verr.Merge(err)
			continue
		}
		ids = append(ids, id)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return ids, nil
}
