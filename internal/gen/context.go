package gen

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/stubgen/stubgen/internal/naming"
)

// Context carries the configuration and output buffers for a single
// generation run. It is created once per run and never shared between
// runs, so independent schemas can be generated in parallel without
// any process-wide state.
type Context struct {
	prefix   naming.Prefix
	basename string
	group    string

	header bytes.Buffer
	body   bytes.Buffer
}

// NewContext creates a generation context. prefix is the raw
// identifier prefix (its three canonical forms are composed here,
// once). basename names the output artifacts; only its final path
// element appears in the generated #include. group, when non-empty,
// requests the signal-registration dispatcher for the whole schema.
func NewContext(prefix, basename, group string) *Context {
	return &Context{
		prefix:   naming.NewPrefix(prefix),
		basename: basename,
		group:    group,
	}
}

// Prefix returns the composed prefix forms for this run.
func (c *Context) Prefix() naming.Prefix { return c.prefix }

// Basename returns the configured output basename.
func (c *Context) Basename() string { return c.basename }

// Header returns the accumulated declarations artifact.
func (c *Context) Header() []byte { return c.header.Bytes() }

// Body returns the accumulated definitions artifact.
func (c *Context) Body() []byte { return c.body.Bytes() }

// includeName is the header reference emitted into the definitions
// artifact.
func (c *Context) includeName() string {
	return filepath.Base(c.basename) + ".h"
}

// h appends one line to the declarations buffer.
func (c *Context) h(format string, args ...any) {
	fmt.Fprintf(&c.header, format+"\n", args...)
}

// b appends one line to the definitions buffer.
func (c *Context) b(format string, args ...any) {
	fmt.Fprintf(&c.body, format+"\n", args...)
}
