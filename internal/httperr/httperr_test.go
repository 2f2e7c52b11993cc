package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("invalid_email", "bad"), http.StatusBadRequest},
		{"legacy business", ErrBusiness("invalid_state"), http.StatusBadRequest},
		{"not found", NotFoundErr("employee_not_found", "x"), http.StatusNotFound},
		{"conflict", Conflict("slot_not_available", "x"), http.StatusConflict},
		{"dependency", Dependency("notification_failed", "x", errors.New("smtp down")), http.StatusBadGateway},
		{"wrapped", fmt.Errorf("outer: %w", Conflict("c", "x")), http.StatusConflict},
		{"unauthorized", Unauthenticated("invalid_credentials", "x"), http.StatusUnauthorized},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestIsBusinessAndUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Dependency("storage_failed", "x", cause)

	assert.True(t, IsBusiness(err, "storage_failed"))
	assert.False(t, IsBusiness(err, "other"))
	assert.ErrorIs(t, err, cause)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindDependency, kind)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("business error keeps code and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, NotFoundErr("employee_not_found", "Employee not found."))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "employee_not_found", body.Code)
		assert.Equal(t, "Employee not found.", body.Message)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, errors.New("db exploded"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "internal_error", body.Code)
	})
}
