// Package pysrc extracts the pieces of a Python source file the compiler
// splices into the generated program: top-level import statements, top-level
// function definitions, and declared argparse arguments.
//
// The scanner works on lines and indentation rather than a full Python
// grammar. Fragments are treated as opaque trusted text: whatever the file
// defines at the top level is carried over verbatim.
package pysrc

import (
	"fmt"
	"os"
	"strings"
)

// Extract reads a Python source file and returns its fragment bundle.
func Extract(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	source := strings.ReplaceAll(string(data), "\r\n", "\n")

	imports, functions, err := scanTopLevel(source)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	args, err := ScanArgparse(source)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}

	return &Bundle{
		Path:      path,
		Imports:   imports,
		Functions: functions,
		Args:      args,
	}, nil
}

// scanTopLevel walks the file line by line collecting top-level import
// statements and function definition blocks. All other top-level code is
// ignored.
func scanTopLevel(source string) (imports []string, functions []string, err error) {
	lines := strings.Split(source, "\n")

	var pendingDecorators []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		// Only column-zero statements are interesting; indented and blank
		// lines belong to whatever block is being skipped.
		if trimmed == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from "):
			stmt, next, serr := captureStatement(lines, i)
			if serr != nil {
				return nil, nil, serr
			}
			imports = append(imports, stmt)
			pendingDecorators = nil
			i = next

		case strings.HasPrefix(trimmed, "@"):
			pendingDecorators = append(pendingDecorators, line)

		case strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "async def "):
			block, next := captureBlock(lines, i)
			if len(pendingDecorators) > 0 {
				block = strings.Join(pendingDecorators, "\n") + "\n" + block
				pendingDecorators = nil
			}
			functions = append(functions, block)
			i = next

		default:
			pendingDecorators = nil
		}
	}
	return imports, functions, nil
}

// captureStatement collects one top-level statement starting at index start,
// following open brackets and backslash continuations across lines. It
// returns the statement text and the index of its last line.
func captureStatement(lines []string, start int) (string, int, error) {
	var parts []string
	depth := 0
	for i := start; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		parts = append(parts, line)
		depth += bracketDelta(line)
		if depth < 0 {
			return "", start, fmt.Errorf("unbalanced brackets in statement at line %d", start+1)
		}
		if depth == 0 && !strings.HasSuffix(line, "\\") {
			return strings.Join(parts, "\n"), i, nil
		}
	}
	return "", start, fmt.Errorf("unterminated statement at line %d", start+1)
}

// captureBlock collects a def block starting at index start: the def line and
// every following line that is blank or indented. Trailing blank lines are
// trimmed. It returns the block text and the index of its last consumed line.
func captureBlock(lines []string, start int) (string, int) {
	end := start
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if lines[i][0] != ' ' && lines[i][0] != '\t' {
			break
		}
		end = i
	}
	block := strings.Join(lines[start:end+1], "\n")
	return strings.TrimRight(block, " \t\n"), end
}

// bracketDelta counts net bracket nesting on one line, ignoring brackets
// inside string literals and comments.
func bracketDelta(line string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			return depth
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth
}
