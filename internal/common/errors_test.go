package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("email", "must not be empty")

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorNotFound))
}

func TestValidationError_MatchesWhenWrapped(t *testing.T) {
	err := fmt.Errorf("creating user: %w", NewValidationError("email", "must not be empty"))

	assert.True(t, errors.Is(err, ErrorValidation))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)
}
