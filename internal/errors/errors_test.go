package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/pokerdash/internal/errors"
)

func TestAppError_Messages(t *testing.T) {
	err := apperrors.NewValidationError("start", "expected YYYY-MM-DD")
	assert.Equal(t, "VALIDATION_ERROR: validation failed for start: expected YYYY-MM-DD", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Status)

	up := apperrors.NewUpstreamError("list users", assert.AnError)
	assert.Equal(t, http.StatusBadGateway, up.Status)
	assert.ErrorIs(t, up, assert.AnError)
	assert.Contains(t, up.Error(), assert.AnError.Error())
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	base := apperrors.NewNotFoundError("user", 42)
	wrapped := fmt.Errorf("open chart: %w", base)

	got, ok := apperrors.As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)

	_, ok = apperrors.As(assert.AnError)
	assert.False(t, ok)
}
