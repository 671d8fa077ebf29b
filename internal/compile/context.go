package compile

import (
	"context"
	"fmt"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/graphdesc"
	"github.com/roundlabs/unirun/internal/pysrc"
)

// Context carries the mutable state of one compilation: the per-file fragment
// cache, the output variable counter, the run-wide argument collection, and
// the output binding table. Each run gets its own Context, so compiling
// several graphs in parallel within one process is safe by construction.
type Context struct {
	// Extractor produces the fragment bundle for a source file. Tests swap
	// it out; the default reads and scans the file from disk.
	Extractor func(path string) (*pysrc.Bundle, error)

	cache      map[string]*pysrc.Bundle
	varCounter int
	argSpecs   []pysrc.ArgSpec
	bindings   map[bindingKey]string
}

// bindingKey addresses one output slot of one node.
type bindingKey struct {
	NodeID graphdesc.ID
	Output string
}

// NewContext returns a fresh compilation context.
func NewContext() *Context {
	return &Context{
		Extractor: pysrc.Extract,
		cache:     make(map[string]*pysrc.Bundle),
		bindings:  make(map[bindingKey]string),
	}
}

// Bundle returns the fragment bundle for a source file, extracting it on
// first request and serving the cached bundle afterwards. The first
// extraction appends the file's declared arguments to the run-wide
// collection; a failed extraction leaves no cache entry behind.
func (c *Context) Bundle(ctx context.Context, path string) (*pysrc.Bundle, error) {
	if bundle, ok := c.cache[path]; ok {
		ctxlog.FromContext(ctx).Debug("Fragment bundle served from cache.", "path", path)
		return bundle, nil
	}

	bundle, err := c.Extractor(path)
	if err != nil {
		return nil, err
	}
	c.cache[path] = bundle
	c.argSpecs = append(c.argSpecs, bundle.Args...)
	ctxlog.FromContext(ctx).Debug("Fragment bundle extracted.",
		"path", path,
		"imports", len(bundle.Imports),
		"functions", len(bundle.Functions),
		"declared_args", len(bundle.Args))
	return bundle, nil
}

// nextVar allocates the next globally unique output variable name.
func (c *Context) nextVar() string {
	c.varCounter++
	return fmt.Sprintf("var_%d", c.varCounter)
}

// bind records the variable holding one output slot's value. Bindings are
// recorded before any consumer of the node is resolved; the topological
// order guarantees that.
func (c *Context) bind(nodeID graphdesc.ID, output, variable string) {
	c.bindings[bindingKey{NodeID: nodeID, Output: output}] = variable
}

// binding resolves one output slot to its variable name.
func (c *Context) binding(nodeID graphdesc.ID, output string) (string, bool) {
	variable, ok := c.bindings[bindingKey{NodeID: nodeID, Output: output}]
	return variable, ok
}
