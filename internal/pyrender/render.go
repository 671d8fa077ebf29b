// Package pyrender stringifies literal values for the generated artifacts:
// Python literal syntax for program text and flat words for the launcher's
// parameter string.
package pyrender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Literal renders a literal value as Python source text.
func Literal(v cty.Value) (string, error) {
	if v.IsNull() {
		return "None", nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return quote(v.AsString()), nil
	case ty == cty.Number:
		return Number(v), nil
	case ty == cty.Bool:
		if v.True() {
			return "True", nil
		}
		return "False", nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var elems []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			text, err := Literal(ev)
			if err != nil {
				return "", err
			}
			elems = append(elems, text)
		}
		return "[" + strings.Join(elems, ", ") + "]", nil
	case ty.IsObjectType() || ty.IsMapType():
		pairs := v.AsValueMap()
		keys := make([]string, 0, len(pairs))
		for k := range pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var items []string
		for _, k := range keys {
			text, err := Literal(pairs[k])
			if err != nil {
				return "", err
			}
			items = append(items, quote(k)+": "+text)
		}
		return "{" + strings.Join(items, ", ") + "}", nil
	default:
		return "", fmt.Errorf("cannot render %s as a Python literal", ty.FriendlyName())
	}
}

// Word renders a scalar value the way it appears in the launcher's parameter
// string: strings verbatim, numbers unquoted, booleans in Python spelling.
func Word(v cty.Value) (string, error) {
	if v.IsNull() {
		return "None", nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return Number(v), nil
	case cty.Bool:
		if v.True() {
			return "True", nil
		}
		return "False", nil
	default:
		return "", fmt.Errorf("launcher parameters must be scalar, got %s", v.Type().FriendlyName())
	}
}

// Number renders a cty number without a trailing decimal part when it is
// integral.
func Number(v cty.Value) string {
	bf := v.AsBigFloat()
	if bf.IsInt() {
		return bf.Text('f', 0)
	}
	return bf.Text('f', -1)
}

// quote renders a Python single-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
