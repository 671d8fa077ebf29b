package compile

import (
	"context"
	"strings"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/pysrc"
	"github.com/zclconf/go-cty/cty"
)

// mergeImports unions import statement lists preserving first-seen order.
func mergeImports(importLists [][]string) []string {
	var merged []string
	seen := make(map[string]bool)
	for _, imports := range importLists {
		for _, imp := range imports {
			if seen[imp] {
				continue
			}
			seen[imp] = true
			merged = append(merged, imp)
		}
	}
	return merged
}

// dedupeArgSpecs keeps the first declaration for each flag name. Later
// duplicates would redeclare the flag and crash argparse at runtime, so they
// are dropped with a diagnostic.
func dedupeArgSpecs(ctx context.Context, specs []pysrc.ArgSpec) []pysrc.ArgSpec {
	var kept []pysrc.ArgSpec
	seen := make(map[string]bool)
	for _, spec := range specs {
		name, ok := spec.FirstName()
		if !ok {
			continue
		}
		if seen[name] {
			ctxlog.FromContext(ctx).Warn("Duplicate command-line argument declaration dropped.", "flag", name)
			continue
		}
		seen[name] = true
		kept = append(kept, spec)
	}
	return kept
}

// assemble merges imports, function fragments, the generated call sequence,
// and the argument preamble into one program text.
func assemble(ctx context.Context, imports []string, functions []string, statements []Statement, specs []pysrc.ArgSpec) string {
	var b strings.Builder

	b.WriteString(strings.Join(imports, "\n"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(functions, "\n\n"))
	b.WriteString("\n\n")

	b.WriteString("def main():\n")
	if len(statements) == 0 {
		b.WriteString("    pass\n")
	}
	for _, stmt := range statements {
		b.WriteString("    ")
		b.WriteString(stmt.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("if __name__ == '__main__':\n")
	b.WriteString("    import argparse\n")
	b.WriteString("    parser = argparse.ArgumentParser()\n")
	for _, spec := range dedupeArgSpecs(ctx, specs) {
		name, _ := spec.FirstName()
		b.WriteString("    parser.add_argument(")
		b.WriteString(name)
		for _, kw := range spec.Kwargs {
			if kw.Value.IsNull() || kw.Value.Type() != cty.String {
				// Only textual keyword values survive into the merged
				// declaration; everything else is dropped, visibly.
				ctxlog.FromContext(ctx).Warn("Dropping non-textual argparse keyword.", "flag", name, "keyword", kw.Name)
				continue
			}
			b.WriteString(", ")
			b.WriteString(kw.Name)
			b.WriteString("=")
			b.WriteString(kw.Value.AsString())
		}
		b.WriteString(")\n")
	}
	b.WriteString("    global args\n")
	b.WriteString("    args = parser.parse_args()\n")
	b.WriteString("    main()\n")

	return b.String()
}
