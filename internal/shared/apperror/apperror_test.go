package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	err := NotFound("author %s not found", "to-hoai")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "author to-hoai not found", err.Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Conflict("slug already exists")
	wrapped := fmt.Errorf("create author: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrConflict))
}

func TestEachConstructorCarriesItsKind(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{NotFound("x"), ErrNotFound},
		{Conflict("x"), ErrConflict},
		{InvalidInput("x"), ErrInvalidInput},
		{Forbidden("x"), ErrForbidden},
	}

	for _, tt := range tests {
		assert.True(t, errors.Is(tt.err, tt.kind))
	}
}
