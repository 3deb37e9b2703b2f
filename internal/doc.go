// Package internal provides the substitution engine behind tmplfill.
//
// Templates contain tokens of the form {resource-file#query}. The engine
// finds them, asks a resolver to evaluate the query against the resource
// file, and splices the value into the text.
//
// Key components:
//
// Engine: runs an ordered list of resolvers over a template's text. Each
// resolver scans the text once with its own grammar and replaces every token
// it finds. Values are not rescanned by the resolver that produced them, and
// a token consumed by an earlier resolver is invisible to later ones. When a
// token is legal under two grammars, the earlier resolver wins.
//
// resolver.Resolver: pairs a token grammar with a query engine. The XML
// resolver evaluates XPath, the JSON resolver evaluates JSONPath.
//
// Watcher: re-runs an expansion when a template or resource file changes.
//
// Usage:
//
//	engine := internal.NewEngine("path/to/templates")
//
//	out, err := engine.Replace("let label = '{strings.xml#/Resources/Strings/Bye}'")
//	if err != nil {
//	    // handle error
//	}
//
// Any resolution failure aborts the expansion and is returned as a
// *TokenError wrapping the resolver's error.
//
// This package is intended for internal use within tmplfill and should not be
// imported by external packages.
package internal
