package resolver

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// JSONResolver resolves JSONPath expressions against JSON resource files.
type JSONResolver struct {
	grammar *Grammar
}

func NewJSONResolver() *JSONResolver {
	return &JSONResolver{grammar: DataGrammar}
}

func (r *JSONResolver) Name() string      { return "json" }
func (r *JSONResolver) Grammar() *Grammar { return r.grammar }

// Resolve evaluates query against the document at path and returns the first
// result. Later results are discarded. A query selecting nothing is a
// NoMatchError.
func (r *JSONResolver) Resolve(path, query string) (string, error) {
	content, err := readResource(path)
	if err != nil {
		return "", err
	}

	doc, err := oj.Parse(content)
	if err != nil {
		return "", &ParseError{Path: path, Format: r.Name(), Err: err}
	}

	expr, err := jp.ParseString(query)
	if err != nil {
		return "", &QueryError{Query: query, Format: r.Name(), Err: err}
	}

	value, ok := firstResult(expr.Get(doc))
	if !ok {
		return "", &NoMatchError{Path: path, Query: query}
	}
	return jsonString(value), nil
}

func firstResult(results []any) (any, bool) {
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// jsonString renders strings verbatim, scalars in their JSON spelling and
// containers as compact JSON.
func jsonString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return jsonNumber(v)
	case json.Number:
		return v.String()
	case *big.Int:
		return v.String()
	case *big.Float:
		return v.Text('g', -1)
	default:
		return oj.JSON(v)
	}
}

// jsonNumber spells f the way JSON encoders do: plain decimals between 1e-6
// and 1e21, exponent form outside.
func jsonNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7
		if i := strings.Index(s, "e-0"); i >= 0 {
			s = s[:i+2] + s[i+3:]
		}
		return s
	}
	return formatFloat(f)
}
