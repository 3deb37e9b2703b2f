package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// XMLResolver resolves XPath expressions against XML resource files.
type XMLResolver struct {
	grammar *Grammar
}

func NewXMLResolver() *XMLResolver {
	return &XMLResolver{grammar: MarkupGrammar}
}

func (r *XMLResolver) Name() string      { return "xml" }
func (r *XMLResolver) Grammar() *Grammar { return r.grammar }

// Resolve returns the XPath string value of query evaluated against the
// document at path. A node-set yields the string value of its first node in
// document order; an empty node-set yields the empty string.
func (r *XMLResolver) Resolve(path, query string) (string, error) {
	content, err := readResource(path)
	if err != nil {
		return "", err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return "", &ParseError{Path: path, Format: r.Name(), Err: err}
	}
	if err := checkRoot(doc); err != nil {
		return "", &ParseError{Path: path, Format: r.Name(), Err: err}
	}

	expr, err := xpath.Compile(query)
	if err != nil {
		return "", &QueryError{Query: query, Format: r.Name(), Err: err}
	}

	return xpathString(expr.Evaluate(xmlquery.CreateXPathNavigator(doc))), nil
}

// checkRoot requires exactly one root element, which xmlquery.Parse does
// not enforce.
func checkRoot(doc *xmlquery.Node) error {
	roots := 0
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			roots++
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return errors.New("text outside the root element")
			}
		}
	}
	switch roots {
	case 0:
		return errors.New("no root element")
	case 1:
		return nil
	default:
		return fmt.Errorf("%d root elements", roots)
	}
}

func xpathString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return xpathNumber(v)
	case *xpath.NodeIterator:
		if v.MoveNext() {
			return v.Current().Value()
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func xpathNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return formatFloat(f)
}
