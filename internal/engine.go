package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gnolang/tmplfill/internal/resolver"
	tt "github.com/gnolang/tmplfill/internal/types"
)

// Engine manages the substitution process.
type Engine struct {
	baseDir   string
	resolvers []resolver.Resolver
}

// NewEngine creates a new substitution engine. Relative resource paths are
// resolved against baseDir; an empty baseDir leaves them relative to the
// working directory. Resolvers run in the order given, and with none given
// the default order is used.
func NewEngine(baseDir string, resolvers ...resolver.Resolver) *Engine {
	if len(resolvers) == 0 {
		resolvers = resolver.Default()
	}
	return &Engine{
		baseDir:   baseDir,
		resolvers: resolvers,
	}
}

// Resolvers returns the names of the configured resolvers in order.
func (e *Engine) Resolvers() []string {
	names := make([]string, len(e.resolvers))
	for i, r := range e.resolvers {
		names[i] = r.Name()
	}
	return names
}

// Replace returns text with every token replaced by its resolved value.
func (e *Engine) Replace(text string) (string, error) {
	out, _, err := e.Expand(text)
	return out, err
}

// Expand runs each resolver over text in order and reports the
// substitutions it made.
//
// Each resolver makes a single pass: values are spliced in literally and are
// never rescanned by the resolver that produced them. Tokens consumed by an
// earlier resolver are gone before later resolvers scan.
func (e *Engine) Expand(text string) (string, []tt.Substitution, error) {
	var subs []tt.Substitution
	for _, r := range e.resolvers {
		var (
			sb      strings.Builder
			last    int
			matched bool
		)
		for tok := range r.Grammar().Scan(text) {
			value, err := r.Resolve(e.resourcePath(tok.ResourcePath), tok.Query)
			if err != nil {
				return "", subs, &TokenError{Resolver: r.Name(), Token: tok, Err: err}
			}
			sb.WriteString(text[last:tok.Start])
			sb.WriteString(value)
			last = tok.End
			matched = true
			subs = append(subs, tt.Substitution{Resolver: r.Name(), Token: tok, Value: value})
		}
		if !matched {
			continue
		}
		sb.WriteString(text[last:])
		text = sb.String()
	}
	return text, subs, nil
}

// Tokens lists the tokens each resolver would claim in text, without
// resolving them. Offsets refer to the original text.
//
// The listing is static. A token that only forms once an earlier resolver
// has spliced in its value, such as the outer token of
// {a.json#{x.xml#/p}}, is not reported, although Expand would resolve it.
func (e *Engine) Tokens(text string) []tt.Substitution {
	var claimed []tt.Substitution
	masked := []byte(text)
	for _, r := range e.resolvers {
		current := string(masked)
		for tok := range r.Grammar().Scan(current) {
			tok.Text = text[tok.Start:tok.End]
			claimed = append(claimed, tt.Substitution{Resolver: r.Name(), Token: tok})
			for i := tok.Start; i < tok.End; i++ {
				// NUL is outside every grammar, so masked spans cannot match again.
				masked[i] = 0
			}
		}
	}
	return claimed
}

func (e *Engine) resourcePath(path string) string {
	if e.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.baseDir, path)
}

// TokenError reports the token whose resolution failed. The token's offsets
// refer to the text as the failing resolver saw it.
type TokenError struct {
	Resolver string
	Token    tt.Token
	Err      error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s token %s at offset %d: %v", e.Resolver, e.Token.Text, e.Token.Start, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }
