package params_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/pkg/params"
)

func TestObject(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()

		o := params.NewObject()
		o.Set("b", 1.0)
		o.Set("a", 2.0)
		o.Set("c", 3.0)
		o.Set("b", 4.0)

		assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
		v, ok := o.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 4.0, v)
	})

	t.Run("delete removes key and order entry", func(t *testing.T) {
		t.Parallel()

		o := params.ObjectOf("a", 1, "b", 2, "c", 3)
		o.Delete("b")
		o.Delete("missing")

		assert.Equal(t, []string{"a", "c"}, o.Keys())
		assert.False(t, o.Has("b"))
		assert.Equal(t, 2, o.Len())
	})

	t.Run("nil object reads as empty", func(t *testing.T) {
		t.Parallel()

		var o *params.Object
		_, ok := o.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, o.Len())
		assert.Nil(t, o.Keys())
		o.Set("a", 1.0)
		assert.False(t, o.Has("a"))
	})

	t.Run("clone is deep", func(t *testing.T) {
		t.Parallel()

		o := params.ObjectOf("nested", map[string]any{"x": 1}, "list", []any{"a"})
		c := o.Clone()

		nested, _ := c.Get("nested")
		nested.(*params.Object).Set("x", 2.0)
		list, _ := c.Get("list")
		list.([]any)[0] = "b"

		orig, _ := o.Get("nested")
		x, _ := orig.(*params.Object).Get("x")
		assert.Equal(t, 1.0, x)
		origList, _ := o.Get("list")
		assert.Equal(t, "a", origList.([]any)[0])
	})

	t.Run("map converts nested objects", func(t *testing.T) {
		t.Parallel()

		o := params.ObjectOf("a", map[string]any{"b": true})
		assert.Equal(t, map[string]any{"a": map[string]any{"b": true}}, o.Map())
	})
}

func TestObjectJSON(t *testing.T) {
	t.Parallel()

	t.Run("marshal keeps order", func(t *testing.T) {
		t.Parallel()

		o := params.NewObject()
		o.Set("z", "last")
		o.Set("a", []any{1.0, true, nil})

		b, err := json.Marshal(o)
		require.NoError(t, err)
		assert.JSONEq(t, `{"z":"last","a":[1,true,null]}`, string(b))
		assert.True(t, strings.HasPrefix(string(b), `{"z"`))
	})

	t.Run("unmarshal keeps order", func(t *testing.T) {
		t.Parallel()

		var o params.Object
		require.NoError(t, json.Unmarshal([]byte(`{"c":1,"a":{"y":1,"x":2},"b":"s"}`), &o))
		assert.Equal(t, []string{"c", "a", "b"}, o.Keys())

		nested, _ := o.Get("a")
		assert.Equal(t, []string{"y", "x"}, nested.(*params.Object).Keys())
	})

	t.Run("unmarshal rejects non-objects", func(t *testing.T) {
		t.Parallel()

		var o params.Object
		err := json.Unmarshal([]byte(`[1,2]`), &o)
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "number", input: `1`, want: 1.0},
		{name: "string", input: `"s"`, want: "s"},
		{name: "bool", input: `true`, want: true},
		{name: "null", input: `null`, want: nil},
		{name: "array", input: `[1,"a",[]]`, want: []any{1.0, "a", []any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := params.Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := params.Decode([]byte(`raw`))
		require.ErrorIs(t, err, params.ErrInvalidJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		_, err := params.Decode([]byte(`{} {}`))
		require.ErrorIs(t, err, params.ErrInvalidJSON)
	})

	t.Run("out of range numbers", func(t *testing.T) {
		t.Parallel()

		got, err := params.Decode([]byte(`{"big":1e400,"small":-1e400,"tiny":1e-400,"list":[1e400],"n":1}`))
		require.NoError(t, err)
		o := got.(*params.Object)

		big, _ := o.Get("big")
		assert.True(t, math.IsInf(big.(float64), 1))
		small, _ := o.Get("small")
		assert.True(t, math.IsInf(small.(float64), -1))
		tiny, _ := o.Get("tiny")
		assert.Zero(t, tiny)

		b, err := o.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"big":null,"small":null,"tiny":0,"list":[null],"n":1}`, string(b))
	})
}

func TestValues(t *testing.T) {
	t.Parallel()

	assert.True(t, params.Equal(1, 1.0))
	assert.True(t, params.Equal("a", "a"))
	assert.False(t, params.Equal(1, "1"))
	assert.False(t, params.Equal(true, 1))
	assert.True(t, params.Equal(nil, nil))
	assert.False(t, params.Equal([]any{}, []any{}))

	assert.Equal(t, params.KindNumber, params.TypeOf(3))
	assert.Equal(t, params.KindString, params.TypeOf("3"))
	assert.Equal(t, params.KindBoolean, params.TypeOf(false))
	assert.Equal(t, params.KindNull, params.TypeOf(nil))
	assert.Equal(t, params.KindArray, params.TypeOf([]string{"a"}))
	assert.Equal(t, params.KindObject, params.TypeOf(map[string]any{}))

	assert.Equal(t, "1", params.Format(1.0))
	assert.Equal(t, "1.5", params.Format(1.5))
	assert.Equal(t, "a", params.Format("a"))
	assert.Equal(t, "false", params.Format(false))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("blank", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		bag, err := params.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, 0, bag.(*params.Object).Len())
	})

	t.Run("json body with huge number", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","n":1e400}`))
		bag, err := params.FromRequest(r)
		require.NoError(t, err)
		o, ok := bag.(*params.Object)
		require.True(t, ok)
		assert.Equal(t, []string{"name", "n"}, o.Keys())
	})

	t.Run("raw body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("raw"))
		bag, err := params.FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "raw", bag)
	})

	t.Run("query string", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/?b=2&a=a&b=3&c=hello%20world", nil)
		bag, err := params.FromRequest(r)
		require.NoError(t, err)

		obj := bag.(*params.Object)
		assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
		v, _ := obj.Get("b")
		assert.Equal(t, "2", v)
		v, _ = obj.Get("c")
		assert.Equal(t, "hello world", v)
	})

	t.Run("json body wins over query", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/?a=1", strings.NewReader(`{"key":true}`))
		r.Header.Set("Content-Type", "application/json")
		bag, err := params.FromRequest(r)
		require.NoError(t, err)

		obj := bag.(*params.Object)
		assert.Equal(t, []string{"key"}, obj.Keys())
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"key":"0123456789"}`))
		_, err := params.FromRequest(r, params.WithMaxBodySize(5))
		require.ErrorIs(t, err, params.ErrBodyTooLarge)
	})

	t.Run("sanitizer applies to nested strings", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"x","b":{"c":["y"]}}`))
		bag, err := params.FromRequest(r, params.WithSanitizer(strings.ToUpper))
		require.NoError(t, err)

		b, err := json.Marshal(bag)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":"X","b":{"c":["Y"]}}`, string(b))
	})
}
