package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fnhttp/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("hooks run once before the header", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		calls := 0
		w.OnBeforeWrite(func() {
			calls++
			w.Header().Set("Set-Cookie", "a=1;path=/;")
		})

		assert.False(t, w.Written())
		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))

		assert.Equal(t, 1, calls)
		assert.True(t, w.Written())
		assert.Equal(t, http.StatusAccepted, w.Status())
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "a=1;path=/;", rec.Header().Get("Set-Cookie"))
		assert.Equal(t, int64(4), w.Size())
	})

	t.Run("write implies 200", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		_, _ = w.Write([]byte("x"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, http.StatusOK, w.Status())
	})

	t.Run("flush starts the response", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		ran := false
		w.OnBeforeWrite(func() { ran = true })
		w.Flush()

		assert.True(t, ran)
		assert.True(t, rec.Flushed)
	})

	t.Run("unwrap returns the original writer", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)
		assert.Same(t, rec, w.Unwrap())
	})
}
