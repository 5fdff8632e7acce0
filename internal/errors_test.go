package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fnhttp/internal"
	"github.com/dmitrymomot/fnhttp/pkg/params"
	"github.com/dmitrymomot/fnhttp/pkg/validator"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	validationErr := validator.ValidateParams(&validator.Schema{
		Rules: validator.Rules{{Key: "id", Required: true}},
	}, params.NewObject())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"http error", internal.ErrNotFound(""), http.StatusNotFound},
		{"wrapped http error", fmt.Errorf("load: %w", internal.ErrForbidden("no")), http.StatusForbidden},
		{"validation error", validationErr, http.StatusInternalServerError},
		{"unreadable body", errors.Join(params.ErrReadBody, errors.New("eof")), http.StatusBadRequest},
		{"body too large", params.ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, internal.StatusOf(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := internal.ErrServiceUnavailable("", internal.WithError(cause))

	assert.Equal(t, "Service Unavailable", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode())
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, internal.AsHTTPError(fmt.Errorf("wrap: %w", err)))
	assert.Nil(t, internal.AsHTTPError(cause))
}
