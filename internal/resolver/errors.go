package resolver

import "fmt"

// ResourceReadError is returned when the file named by a token cannot be read.
type ResourceReadError struct {
	Path string
	Err  error
}

func (e *ResourceReadError) Error() string {
	return fmt.Sprintf("reading resource %s: %v", e.Path, e.Err)
}

func (e *ResourceReadError) Unwrap() error { return e.Err }

// ParseError is returned when a resource file is not a well-formed document
// of the format its resolver expects.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s resource %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// QueryError is returned when the query engine rejects an expression.
type QueryError struct {
	Query  string
	Format string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s query %q: %v", e.Format, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// NoMatchError is returned when a query that must produce a value selects nothing.
type NoMatchError struct {
	Path  string
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("query %q matched nothing in %s", e.Query, e.Path)
}
