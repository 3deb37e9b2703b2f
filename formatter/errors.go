package formatter

import (
	"errors"
	"strings"

	"github.com/fatih/color"

	"github.com/gnolang/tmplfill/expand"
	"github.com/gnolang/tmplfill/internal"
	"github.com/gnolang/tmplfill/internal/resolver"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	tokenStyle   = color.New(color.FgGreen, color.Bold)
)

// Kind returns a short name for the category of err, as found by walking its
// chain from the outermost error.
func Kind(err error) string {
	var (
		readErr     *resolver.ResourceReadError
		parseErr    *resolver.ParseError
		queryErr    *resolver.QueryError
		noMatchErr  *resolver.NoMatchError
		dirErr      *expand.DirectoryReadError
		templateErr *expand.TemplateReadError
		writeErr    *expand.FileWriteError
	)
	switch {
	case errors.As(err, &readErr):
		return "resource-read"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &queryErr):
		return "query"
	case errors.As(err, &noMatchErr):
		return "no-match"
	case errors.As(err, &dirErr):
		return "directory-read"
	case errors.As(err, &templateErr):
		return "template-read"
	case errors.As(err, &writeErr):
		return "file-write"
	default:
		return "failure"
	}
}

// FormatError renders err as a human-readable diagnostic. Joined errors are
// rendered one after another.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var builder strings.Builder
		for _, e := range joined.Unwrap() {
			builder.WriteString(FormatError(e))
		}
		return builder.String()
	}

	var builder strings.Builder
	builder.WriteString(errorStyle.Sprint("error: ") + kindStyle.Sprint(Kind(err)) + "\n")

	var templateErr *expand.TemplateError
	if errors.As(err, &templateErr) {
		builder.WriteString(lineStyle.Sprint(" --> ") + fileStyle.Sprint(templateErr.Path) + "\n")
	}

	var tokenErr *internal.TokenError
	if errors.As(err, &tokenErr) {
		builder.WriteString(lineStyle.Sprint("  | "))
		builder.WriteString(tokenStyle.Sprint(tokenErr.Token.Text))
		builder.WriteString(lineStyle.Sprintf(" (%s, offset %d)\n", tokenErr.Resolver, tokenErr.Token.Start))
	}

	builder.WriteString(lineStyle.Sprint("  = ") + messageStyle.Sprint(rootCause(err).Error()) + "\n\n")
	return builder.String()
}

// rootCause strips the wrappers whose information is already printed.
func rootCause(err error) error {
	for {
		switch e := err.(type) {
		case *expand.TemplateError:
			err = e.Err
		case *internal.TokenError:
			err = e.Err
		default:
			return err
		}
	}
}
