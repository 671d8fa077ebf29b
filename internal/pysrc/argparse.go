package pysrc

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

const addArgumentMarker = ".add_argument"

// ScanArgparse finds argparse argument declarations in Python source text:
// add_argument calls on variables assigned from argparse.ArgumentParser.
// Flag names keep their rendered source form (quotes included); keyword
// values are parsed into literal values so the assembler can distinguish
// textual keywords from droppable ones.
func ScanArgparse(source string) ([]ArgSpec, error) {
	parsers := parserVariables(source)
	if len(parsers) == 0 {
		return nil, nil
	}

	var specs []ArgSpec
	for from := 0; ; {
		idx := strings.Index(source[from:], addArgumentMarker)
		if idx < 0 {
			break
		}
		idx += from
		from = idx + len(addArgumentMarker)

		receiver := identifierBefore(source, idx)
		if !parsers[receiver] {
			continue
		}
		open := skipSpaces(source, from)
		if open >= len(source) || source[open] != '(' {
			continue
		}
		closing, err := matchParen(source, open)
		if err != nil {
			return nil, fmt.Errorf("add_argument call on %q: %w", receiver, err)
		}
		spec, err := parseArgList(source[open+1 : closing])
		if err != nil {
			return nil, fmt.Errorf("add_argument call on %q: %w", receiver, err)
		}
		if len(spec.Names) > 0 {
			specs = append(specs, spec)
		}
		from = closing + 1
	}
	return specs, nil
}

// parserVariables collects names of variables assigned from an
// argparse.ArgumentParser(...) call.
func parserVariables(source string) map[string]bool {
	parsers := make(map[string]bool)
	for _, line := range strings.Split(source, "\n") {
		callIdx := strings.Index(line, "ArgumentParser")
		if callIdx < 0 {
			continue
		}
		eqIdx := strings.Index(line, "=")
		if eqIdx < 0 || eqIdx > callIdx {
			continue
		}
		name := strings.TrimSpace(line[:eqIdx])
		if isIdentifier(name) {
			parsers[name] = true
		}
	}
	return parsers
}

// parseArgList splits the argument text of one add_argument call and
// classifies positional flag names versus keyword arguments.
func parseArgList(argText string) (ArgSpec, error) {
	var spec ArgSpec
	for _, arg := range splitTopLevel(argText) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if key, value, ok := splitKeyword(arg); ok {
			spec.Kwargs = append(spec.Kwargs, Kwarg{Name: key, Value: literalValue(value)})
			continue
		}
		// Positional arguments contribute flag names only when they are
		// string literals, kept in their rendered source form.
		if len(arg) > 0 && (arg[0] == '\'' || arg[0] == '"') {
			spec.Names = append(spec.Names, arg)
		}
	}
	return spec, nil
}

// literalValue parses keyword-value source text into a literal. Quoted
// strings, identifiers, and expressions stay textual (emitted verbatim);
// numbers, booleans, and None become non-textual values the assembler drops.
func literalValue(text string) cty.Value {
	switch text {
	case "True":
		return cty.True
	case "False":
		return cty.False
	case "None":
		return cty.NullVal(cty.String)
	}
	if num, err := cty.ParseNumberVal(text); err == nil {
		return num
	}
	return cty.StringVal(text)
}

// splitKeyword splits "key=value" at a top-level '=' whose left side is an
// identifier, rejecting comparison operators.
func splitKeyword(arg string) (key, value string, ok bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth > 0 {
				continue
			}
			if i+1 < len(arg) && arg[i+1] == '=' {
				return "", "", false
			}
			if i > 0 && strings.ContainsAny(string(arg[i-1]), "!<>=") {
				return "", "", false
			}
			key = strings.TrimSpace(arg[:i])
			if !isIdentifier(key) {
				return "", "", false
			}
			return key, strings.TrimSpace(arg[i+1:]), true
		}
	}
	return "", "", false
}

// splitTopLevel splits on commas that are not nested in brackets or quotes.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// matchParen returns the index of the parenthesis closing the one at open,
// scanning across lines and skipping string literals.
func matchParen(s string, open int) (int, error) {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated argument list")
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func identifierBefore(s string, end int) string {
	start := end
	for start > 0 && isIdentChar(s[start-1]) {
		start--
	}
	return s[start:end]
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
		if i == 0 && s[i] >= '0' && s[i] <= '9' {
			return false
		}
	}
	return true
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
