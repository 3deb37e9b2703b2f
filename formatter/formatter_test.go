package formatter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tmplfill/expand"
	"github.com/gnolang/tmplfill/internal"
	"github.com/gnolang/tmplfill/internal/resolver"
	tt "github.com/gnolang/tmplfill/internal/types"
)

func tokenFailure(err error) error {
	return &expand.TemplateError{
		Path: "greeting.template",
		Err: &internal.TokenError{
			Resolver: "xml",
			Token:    tt.Token{Text: "{missing.xml#/a}", ResourcePath: "missing.xml", Query: "/a", Start: 7, End: 23},
			Err:      err,
		},
	}
}

func TestKind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err      error
		expected string
	}{
		{tokenFailure(&resolver.ResourceReadError{Path: "missing.xml", Err: os.ErrNotExist}), "resource-read"},
		{tokenFailure(&resolver.ParseError{Path: "bad.xml", Format: "xml", Err: errors.New("syntax")}), "parse"},
		{tokenFailure(&resolver.QueryError{Query: "/[", Format: "xml", Err: errors.New("bad")}), "query"},
		{tokenFailure(&resolver.NoMatchError{Path: "s.json", Query: "$.x"}), "no-match"},
		{&expand.DirectoryReadError{Dir: "d", Err: os.ErrNotExist}, "directory-read"},
		{&expand.TemplateReadError{Path: "t.template", Err: os.ErrPermission}, "template-read"},
		{fmt.Errorf("wrapped: %w", &expand.FileWriteError{Path: "t", Err: os.ErrPermission}), "file-write"},
		{errors.New("other"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Kind(tt.err))
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	err := tokenFailure(&resolver.ResourceReadError{Path: "missing.xml", Err: os.ErrNotExist})
	out := FormatError(err)

	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "resource-read")
	assert.Contains(t, out, "greeting.template")
	assert.Contains(t, out, "{missing.xml#/a}")
	assert.Contains(t, out, "xml, offset 7")
	assert.Contains(t, out, "reading resource missing.xml: file does not exist")
	assert.NotContains(t, out, "expanding greeting.template")
}

func TestFormatJoinedErrors(t *testing.T) {
	t.Parallel()

	err := errors.Join(
		tokenFailure(&resolver.NoMatchError{Path: "s.json", Query: "$.x"}),
		&expand.FileWriteError{Path: "out", Err: os.ErrPermission},
	)
	out := FormatError(err)

	assert.Equal(t, 2, strings.Count(out, "error: "))
	assert.Contains(t, out, "no-match")
	assert.Contains(t, out, "file-write")
	assert.Empty(t, FormatError(nil))
}

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	diff, err := UnifiedDiff("app.yaml", "port: 1\nhost: a\n", "port: 8080\nhost: a\n")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- app.yaml")
	assert.Contains(t, diff, "+++ app.yaml (expanded)")
	assert.Contains(t, diff, "-port: 1")
	assert.Contains(t, diff, "+port: 8080")
	assert.Contains(t, diff, " host: a")

	diff, err = UnifiedDiff("same", "x\n", "x\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}
