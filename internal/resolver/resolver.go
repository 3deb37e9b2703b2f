// Package resolver binds token grammars to the query engines that evaluate
// them against resource files.
//
// A resolver reads and parses its resource file on every call. Nothing is
// cached between tokens, so a resource edited mid-run is seen by the next
// token that references it.
package resolver

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Resolver pairs a token grammar with a query engine for one resource format.
type Resolver interface {
	// Name identifies the resolver in configuration and diagnostics.
	Name() string
	// Grammar returns the pattern used to find tokens this resolver claims.
	Grammar() *Grammar
	// Resolve evaluates query against the resource file at path and returns
	// the first value it selects.
	Resolve(path, query string) (string, error)
}

type constructor func() Resolver

var constructors = map[string]constructor{
	"xml":  func() Resolver { return NewXMLResolver() },
	"json": func() Resolver { return NewJSONResolver() },
}

// defaultOrder lists markup before data, so a token valid under both
// grammars is resolved as XPath.
var defaultOrder = []string{"xml", "json"}

// Names returns the registered resolver names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultNames returns the names of the default resolver order.
func DefaultNames() []string {
	return append([]string(nil), defaultOrder...)
}

// Default returns the resolvers in their default order.
func Default() []Resolver {
	resolvers, _ := FromNames(defaultOrder)
	return resolvers
}

// Lookup returns a new resolver registered under name.
func Lookup(name string) (Resolver, error) {
	c, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown resolver %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return c(), nil
}

// FromNames returns resolvers for names, preserving order.
func FromNames(names []string) ([]Resolver, error) {
	resolvers := make([]Resolver, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		r, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[r.Name()] {
			return nil, fmt.Errorf("resolver %q listed more than once", r.Name())
		}
		seen[r.Name()] = true
		resolvers = append(resolvers, r)
	}
	return resolvers, nil
}

func readResource(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceReadError{Path: path, Err: err}
	}
	return content, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
