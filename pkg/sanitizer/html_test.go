package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fnhttp/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"tags", "<b>bold</b> text", "bold text"},
		{"script", `<script>alert(1)</script>ok`, "ok"},
		{"entities kept readable", "a & b", "a & b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripHTML(tt.in))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p><strong>hi</strong></p>", sanitizer.SanitizeHTML("<p><strong>hi</strong></p>"))
	assert.Equal(t, "<p>hi</p>", sanitizer.SanitizeHTML(`<p onclick="x()">hi</p>`))
	assert.NotContains(t, sanitizer.SanitizeHTML(`<a href="javascript:alert(1)">x</a>`), "javascript")
	assert.Contains(t, sanitizer.SanitizeHTML(`<a href="https://example.com">x</a>`), `rel="nofollow"`)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>x</b>", sanitizer.Func(nil)("<b>x</b>"))
	assert.Equal(t, "x", sanitizer.Func(bluemonday.StrictPolicy())("<b>x</b>"))
}
