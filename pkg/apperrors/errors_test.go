package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("role id is required")

	assert.Equal(t, "role id is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewValidationError("bad input"))

	require.ErrorIs(t, wrapped, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "bad input", ve.Message)
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrValidation))
	assert.False(t, errors.Is(ErrValidation, ErrNotFound))
}
