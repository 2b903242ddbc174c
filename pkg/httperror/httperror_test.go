package httperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("a", "b", nil).Status)
	assert.Equal(t, http.StatusInternalServerError, InternalServerError("a", "b", nil).Status)
	assert.Equal(t, http.StatusServiceUnavailable, ServiceUnavailable("a", "b", nil).Status)
}

func TestWithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := InternalServerError("item.index.failed", "Failed to read items", nil).WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "item.index.failed: Failed to read items: connection reset", err.Error())

	var httpErr *Error
	assert.True(t, errors.As(error(err), &httpErr))
	assert.Equal(t, "Failed to read items", httpErr.Message)
}

func TestErrorWithoutCause(t *testing.T) {
	err := BadRequest("item.update.invalid_id", "Invalid ObjectId", nil)

	assert.Equal(t, "item.update.invalid_id: Invalid ObjectId", err.Error())
	assert.Nil(t, err.Unwrap())
}
