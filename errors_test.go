package irt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsIsCheck(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrParameterCount)
	assert.True(t, errors.Is(wrapped, ErrParameterCount))
	assert.False(t, errors.Is(wrapped, ErrInvalidFamily))
}

func TestSentinelErrorPrefix(t *testing.T) {
	sentinels := []error{
		ErrInvalidFamily,
		ErrParameterCount,
		ErrInvalidParameters,
		ErrInvalidResponse,
		ErrEstimatesMismatch,
		ErrInvalidQuadrature,
	}
	for _, err := range sentinels {
		assert.True(t, strings.HasPrefix(err.Error(), "irt: "), "%q", err)
	}
}
