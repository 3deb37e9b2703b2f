package resolver

import (
	"iter"
	"regexp"

	tt "github.com/gnolang/tmplfill/internal/types"
)

// Character classes shared by the token grammars. None of them admit '{',
// '}' or '#', so a token can never span another token's delimiters.
const (
	resourcePathClass = `[\w/\\.:~-]+`
	markupQueryClass  = `[ =\w/\[\]"'.:@]+`
	dataQueryClass    = `[$@*.\[\]():?<>!=~\w'" ]+`
)

var (
	// MarkupGrammar recognizes tokens carrying an XPath expression.
	MarkupGrammar = NewGrammar(`\{(` + resourcePathClass + `)#(` + markupQueryClass + `)\}`)

	// DataGrammar recognizes tokens carrying a JSONPath expression.
	DataGrammar = NewGrammar(`\{(` + resourcePathClass + `)#(` + dataQueryClass + `)\}`)
)

// Grammar extracts (resource path, query) pairs from raw text.
// The pattern must have exactly two capture groups: the resource path
// followed by the query expression.
type Grammar struct {
	re *regexp.Regexp
}

// NewGrammar compiles pattern and panics if it is invalid or does not have
// two capture groups.
func NewGrammar(pattern string) *Grammar {
	re := regexp.MustCompile(pattern)
	if re.NumSubexp() != 2 {
		panic("resolver: grammar " + pattern + " must have exactly two capture groups")
	}
	return &Grammar{re: re}
}

func (g *Grammar) String() string {
	return g.re.String()
}

// Match reports whether text contains at least one token of this grammar.
func (g *Grammar) Match(text string) bool {
	return g.re.MatchString(text)
}

// Scan lazily yields the non-overlapping tokens of text, left to right.
func (g *Grammar) Scan(text string) iter.Seq[tt.Token] {
	return func(yield func(tt.Token) bool) {
		pos := 0
		for pos < len(text) {
			loc := g.re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			tok := tt.Token{
				Text:         text[pos+loc[0] : pos+loc[1]],
				ResourcePath: text[pos+loc[2] : pos+loc[3]],
				Query:        text[pos+loc[4] : pos+loc[5]],
				Start:        pos + loc[0],
				End:          pos + loc[1],
			}
			if !yield(tok) {
				return
			}
			pos = tok.End
		}
	}
}
