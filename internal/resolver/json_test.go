package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetingsJSON = `{
  "Hello": "Hi!",
  "Bye": {
    "Hello": "Byebye!",
    "Bye": {
      "Hello": "Ja ne!"
    }
  },
  "List": ["Byebye!", "Ja ne!"],
  "Count": 42,
  "Ratio": 0.5,
  "Enabled": true,
  "Nothing": null,
  "Pair": [1, 2],
  "Big": 12345678901234567890,
  "Huge": 1e21,
  "Tiny": 1e-7,
  "Items": [
    {"lang": "en", "bye": "Byebye!"},
    {"lang": "jp", "bye": "Ja ne!"}
  ]
}
`

func TestJSONResolver(t *testing.T) {
	t.Parallel()
	path := writeResource(t, "test.json", greetingsJSON)

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "top level", query: "$.Hello", expected: "Hi!"},
		{name: "deeply nested", query: "$.Bye.Bye.Hello", expected: "Ja ne!"},
		{name: "array index", query: "$.List[1]", expected: "Ja ne!"},
		{name: "bracket notation", query: "$['Hello']", expected: "Hi!"},
		{name: "filter", query: "$.Items[?(@.lang == 'jp')].bye", expected: "Ja ne!"},
		{name: "integer", query: "$.Count", expected: "42"},
		{name: "float", query: "$.Ratio", expected: "0.5"},
		{name: "boolean", query: "$.Enabled", expected: "true"},
		{name: "null", query: "$.Nothing", expected: "null"},
		{name: "array value", query: "$.Pair", expected: "[1,2]"},
		{name: "integer beyond int64", query: "$.Big", expected: "12345678901234567890"},
		{name: "large float", query: "$.Huge", expected: "1e+21"},
		{name: "small float", query: "$.Tiny", expected: "1e-7"},
		{name: "first of many", query: "$.List[*]", expected: "Byebye!"},
		{name: "first of filter", query: "$.Items[?(@.bye)].bye", expected: "Byebye!"},
	}

	r := NewJSONResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.Resolve(path, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestJSONResolverErrors(t *testing.T) {
	t.Parallel()
	r := NewJSONResolver()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "missing.json")
		_, err := r.Resolve(missing, "$.a")

		var readErr *ResourceReadError
		require.ErrorAs(t, err, &readErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()
		path := writeResource(t, "bad.json", `{"a": `)
		_, err := r.Resolve(path, "$.a")

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "json", parseErr.Format)
	})

	t.Run("invalid expression", func(t *testing.T) {
		t.Parallel()
		path := writeResource(t, "ok.json", greetingsJSON)
		_, err := r.Resolve(path, "$.List[")

		var queryErr *QueryError
		require.ErrorAs(t, err, &queryErr)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		path := writeResource(t, "ok.json", greetingsJSON)
		_, err := r.Resolve(path, "$.Missing")

		var noMatch *NoMatchError
		require.ErrorAs(t, err, &noMatch)
		assert.Equal(t, "$.Missing", noMatch.Query)
		assert.Equal(t, path, noMatch.Path)
	})
}

func TestJSONNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0", jsonNumber(0))
	assert.Equal(t, "0.000001", jsonNumber(1e-6))
	assert.Equal(t, "-2.5e-8", jsonNumber(-2.5e-8))
	assert.Equal(t, "123456789012345680000", jsonNumber(1.2345678901234568e20))
	assert.Equal(t, "1.5e+300", jsonNumber(1.5e300))
}

func TestFirstResult(t *testing.T) {
	t.Parallel()

	_, ok := firstResult(nil)
	assert.False(t, ok)

	v, ok := firstResult([]any{"first", "second"})
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}
