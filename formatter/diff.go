package formatter

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addedStyle   = color.New(color.FgGreen)
	removedStyle = color.New(color.FgRed)
	hunkStyle    = color.New(color.FgCyan)
)

// UnifiedDiff returns a coloured unified diff turning before into after.
// It returns the empty string when the two are equal.
func UnifiedDiff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (expanded)",
		Context:  3,
	})
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			builder.WriteString(fileStyle.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(hunkStyle.Sprint(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(addedStyle.Sprint(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(removedStyle.Sprint(line))
		default:
			builder.WriteString(line)
		}
	}
	return builder.String(), nil
}
