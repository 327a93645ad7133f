package serr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceError(t *testing.T) {
	cause := errors.New("no rows")
	err := serr.NewServiceError(cause, http.StatusNotFound, "%s not found", "User").
		With("user_id", 42)

	assert.Equal(t, "User not found", err.Msg)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "42", err.Env["user_id"])
	assert.Equal(t, "User not found: no rows", err.Error())
	assert.NotEmpty(t, err.StackTrace)
	assert.ErrorIs(t, err, cause)
}

func TestServiceError_As(t *testing.T) {
	var wrapped error = serr.NewServiceError(nil, http.StatusBadRequest, "bad input")
	wrapped = errors.Join(errors.New("outer"), wrapped)

	var se *serr.ServiceError
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, "bad input", se.Error())
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
}
