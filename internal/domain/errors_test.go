package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Is(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("failed to get simulation: %w", NewNotFoundError("simulation", id))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "failed to get simulation: simulation "+id.String()+" not found", err.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "simulation", nf.Resource)
	assert.False(t, IsValidation(err))
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.Nil(t, verr.OrNil())

	verr.Add("name", "name is required")
	verr.Merge(NewValidationError("value", "value must be positive"))
	verr.Merge(errors.New("boom"))
	verr.Merge(nil)

	err := verr.OrNil()
	assert.Error(t, err)
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, "invalid input: name: name is required; value: value must be positive; : boom", err.Error())
}
