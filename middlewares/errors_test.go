package middlewares_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fnhttp/middlewares"
)

func TestErrorTypes(t *testing.T) {
	t.Parallel()

	pe := &middlewares.PanicError{Value: "boom"}
	te := &middlewares.TimeoutError{Duration: 2 * time.Second}

	assert.Equal(t, "panic: boom", pe.Error())
	assert.Equal(t, "request timeout after 2s", te.Error())

	wrapped := fmt.Errorf("handler: %w", pe)
	assert.True(t, middlewares.IsPanicError(wrapped))
	assert.False(t, middlewares.IsTimeoutError(wrapped))

	got, ok := middlewares.AsTimeoutError(errors.Join(errors.New("x"), te))
	assert.True(t, ok)
	assert.Same(t, te, got)

	_, ok = middlewares.AsPanicError(errors.New("plain"))
	assert.False(t, ok)
}
