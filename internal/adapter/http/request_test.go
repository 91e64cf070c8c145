package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthsim/internal/domain"
)

func newJSONRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := parseID("id", " "+id.String()+" ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseID("id", "cjld2cjxh0000qzrmn831i7rn")
	assert.Equal(t, []string{"id"}, validationFields(t, err))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestParseCreateSimulation(t *testing.T) {
	input, err := parseCreateSimulation(httptest.NewRecorder(), newJSONRequest(`{"name":"Plan","startDate":"2025-02-03T10:00:00Z","realRate":0.035}`))

	require.NoError(t, err)
	assert.Equal(t, "Plan", input.Name)
	assert.Equal(t, time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC), input.StartDate)
	assert.Equal(t, "0.035", input.RealRate.String())
}

func TestParseCreateSimulation_ZeroRateAllowed(t *testing.T) {
	input, err := parseCreateSimulation(httptest.NewRecorder(), newJSONRequest(`{"name":"Flat","startDate":"2025-01-01","realRate":0}`))

	require.NoError(t, err)
	assert.True(t, input.RealRate.IsZero())
}

func TestParseCreateSimulation_QuotedRateRejected(t *testing.T) {
	_, err := parseCreateSimulation(httptest.NewRecorder(), newJSONRequest(`{"name":"Plan","startDate":"2025-01-01","realRate":"0.035"}`))

	assert.Equal(t, []string{"realRate"}, validationFields(t, err))
	assert.Contains(t, err.Error(), "expected number")
}

func TestParseCompare(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseCompare(httptest.NewRecorder(), newJSONRequest(`{"simulationIds":["`+a.String()+`","`+b.String()+`"]}`))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = parseCompare(httptest.NewRecorder(), newJSONRequest(`{}`))
	assert.Equal(t, []string{"simulationIds"}, validationFields(t, err))

	_, err = parseCompare(httptest.NewRecorder(), newJSONRequest(`{"simulationIds":["x","`+a.String()+`","y"]}`))
	assert.Equal(t, []string{"simulationIds.0", "simulationIds.2"}, validationFields(t, err))
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	var dst compareRequest
	err := decodeJSON(httptest.NewRecorder(), newJSONRequest(`{"simulationIds":[]} {"simulationIds":[]}`), &dst)
	assert.Equal(t, []string{"body"}, validationFields(t, err))
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/simulations", nil)

	rec := httptest.NewRecorder()
	writeError(rec, req, discardLogger(), false, errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	writeError(rec, req, discardLogger(), true, errors.New("pq: password authentication failed"))
	assert.Contains(t, rec.Body.String(), "password authentication failed")
}
