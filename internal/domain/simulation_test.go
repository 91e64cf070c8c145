package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulation_Validate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		simulation Simulation
		wantErr    bool
		wantFields []string
	}{
		{
			name: "Valid simulation should pass",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Retirement",
				StartDate: start,
				RealRate:  decimal.RequireFromString("0.05"),
			},
			wantErr: false,
		},
		{
			name: "Zero rate should pass",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Cash only",
				StartDate: start,
				RealRate:  decimal.Zero,
			},
			wantErr: false,
		},
		{
			name: "Empty name should fail",
			simulation: Simulation{
				ID:        uuid.New(),
				StartDate: start,
				RealRate:  decimal.RequireFromString("0.04"),
			},
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name: "Trailing zeros beyond six places should pass",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Padded",
				StartDate: start,
				RealRate:  decimal.RequireFromString("0.0512340000"),
			},
			wantErr: false,
		},
		{
			name: "Seven decimal places should fail",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Too precise",
				StartDate: start,
				RealRate:  decimal.RequireFromString("0.0512345"),
			},
			wantErr:    true,
			wantFields: []string{"realRate"},
		},
		{
			name: "Long fractional rate should fail",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Endless",
				StartDate: start,
				RealRate:  decimal.RequireFromString("0.0" + strings.Repeat("7", 200)),
			},
			wantErr:    true,
			wantFields: []string{"realRate"},
		},
		{
			name: "Rate at the upper limit should fail",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Hyperinflation",
				StartDate: start,
				RealRate:  decimal.NewFromInt(1000000),
			},
			wantErr:    true,
			wantFields: []string{"realRate"},
		},
		{
			name: "Negative rate should fail",
			simulation: Simulation{
				ID:        uuid.New(),
				Name:      "Bear market",
				StartDate: start,
				RealRate:  decimal.RequireFromString("-0.01"),
			},
			wantErr:    true,
			wantFields: []string{"realRate"},
		},
		{
			name:       "Every invalid field is reported",
			simulation: Simulation{RealRate: decimal.NewFromInt(-1)},
			wantErr:    true,
			wantFields: []string{"name", "startDate", "realRate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.simulation.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)

			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-03-15T10:30:00-03:00", time.Date(2024, 3, 15, 13, 30, 0, 0, time.UTC), true},
		{"  2030-12-31 ", time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not-a-date", time.Time{}, false},
		{"2024-13-01", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}
