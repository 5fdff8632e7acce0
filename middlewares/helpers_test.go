package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/fnhttp/internal"
)

func serve(t *testing.T, fn internal.HandlerFunc, req *http.Request, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithFunc(req.Method, req.URL.Path, fn))
	rec := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(rec, req)
	return rec
}
