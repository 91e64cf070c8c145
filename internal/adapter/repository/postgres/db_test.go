package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"foreign key", &pq.Error{Code: "23503"}, true},
		{"wrapped foreign key", fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isForeignKeyViolation(tt.err))
		})
	}
}

func TestSchema_DeclaresCascade(t *testing.T) {
	assert.Contains(t, schema, "REFERENCES simulations (id) ON DELETE CASCADE")
	assert.Contains(t, schema, "REFERENCES financial_allocations (id) ON DELETE CASCADE")
}
