package gen

import (
	"fmt"
	"strings"

	"github.com/stubgen/stubgen/internal/ir"
	"github.com/stubgen/stubgen/internal/naming"
	"github.com/stubgen/stubgen/internal/typemap"
)

// sentinel terminates every positional argument list in the call
// payload and in signal registrations.
const sentinel = "G_TYPE_INVALID"

// UnsupportedFeatureError reports a generation mode this version
// deliberately does not implement. Callers get an explicit failure
// instead of silently incomplete output.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s generation is not supported in this generator version", e.Feature)
}

// EmitAsyncStubs would emit non-blocking call stubs. The source
// schema supports the async calling convention, but this generator
// only emits the synchronous form.
func (c *Context) EmitAsyncStubs() error {
	return &UnsupportedFeatureError{Feature: "async call stub"}
}

// EmitSignalBindings would emit full signal-subscription helpers
// (typed callback registration, not just dbus_g_proxy_add_signal).
func (c *Context) EmitSignalBindings() error {
	return &UnsupportedFeatureError{Feature: "signal subscription binding"}
}

// Generate emits declarations and definitions for every interface
// into the context's buffers. Interfaces are expected in their final
// (sorted) order; within each interface, argument order is preserved
// exactly as declared because the call payload is positional.
func (c *Context) Generate(ifaces []ir.Interface) error {
	c.h("G_BEGIN_DECLS")
	c.h("")

	c.b("#include \"%s\"", c.includeName())
	c.b("")

	for _, iface := range ifaces {
		if err := c.emitInterface(iface); err != nil {
			return err
		}
	}

	if c.group != "" {
		c.emitGroupDispatcher(ifaces)
	}

	c.h("G_END_DECLS")
	return nil
}

func (c *Context) emitInterface(iface ir.Interface) error {
	if err := c.emitSignalRegistration(iface); err != nil {
		return err
	}

	for _, method := range iface.Methods {
		if err := c.emitMethodStub(iface, method); err != nil {
			return err
		}
	}

	return nil
}

// emitSignalRegistration emits the per-interface helper that tells
// dbus-glib the marshalling tags of every signal the interface can
// emit. It is a static inline definition, so the declarations
// artifact carries the whole body and the definitions artifact picks
// it up through its #include.
func (c *Context) emitSignalRegistration(iface ir.Interface) error {
	ifaceLower := strings.ToLower(iface.Name)

	c.h("static inline void")
	c.h("%s_add_signals_for_%s (DBusGProxy *proxy)", c.prefix.Lower, ifaceLower)
	c.h("{")

	for _, signal := range iface.Signals {
		c.h("  dbus_g_proxy_add_signal (proxy, \"%s\",", signal.Name)
		for _, arg := range signal.Args {
			mapping, err := c.resolve(iface.Name, signal.Name, arg)
			if err != nil {
				return err
			}
			c.h("      %s,", mapping.GType)
		}
		c.h("      %s);", sentinel)
	}

	c.h("}")
	c.h("")

	return nil
}

// param is one formatted stub parameter plus what the call payload
// needs for it.
type param struct {
	decl  string // "const gchar *in_name"
	name  string
	gtype string
}

// emitMethodStub emits the prototype (header) and definition (body)
// of the synchronous blocking call stub for one method.
func (c *Context) emitMethodStub(iface ir.Interface, method ir.Method) error {
	ifaceLower := strings.ToLower(iface.Name)
	stubName := fmt.Sprintf("%s_%s_block_on_%s",
		c.prefix.Lower, ifaceLower, naming.CamelToLower(method.Name))

	var inParams, outParams []param

	for _, arg := range method.InArgs {
		mapping, err := c.resolve(iface.Name, method.Name, arg)
		if err != nil {
			return err
		}
		decl := mapping.CType + arg.ResolvedName
		if mapping.Pointer {
			decl = "const " + decl
		}
		inParams = append(inParams, param{
			decl:  decl,
			name:  arg.ResolvedName,
			gtype: mapping.GType,
		})
	}

	for _, arg := range method.OutArgs {
		mapping, err := c.resolve(iface.Name, method.Name, arg)
		if err != nil {
			return err
		}
		// Outputs are written back through a pointer, whatever the
		// storage type.
		outParams = append(outParams, param{
			decl:  mapping.CType + "*" + arg.ResolvedName,
			name:  arg.ResolvedName,
			gtype: mapping.GType,
		})
	}

	decls := make([]string, 0, len(inParams)+len(outParams)+1)
	for _, p := range inParams {
		decls = append(decls, p.decl)
	}
	for _, p := range outParams {
		decls = append(decls, p.decl)
	}
	decls = append(decls, "GError **error")

	// Prototype.
	c.writeSignature(c.h, "gboolean "+stubName, decls, ";")
	c.h("")

	// Definition.
	c.b("gboolean")
	c.writeSignature(c.b, stubName, decls, "")
	c.b("{")
	c.b("  DBusGProxy *iface = %s_borrow_interface_proxy (", c.prefix.Lower)
	c.b("      %s_IFACE_QUARK_%s,", c.prefix.Upper, strings.ToUpper(ifaceLower))
	c.b("      error);")
	c.b("")
	c.b("  if (iface == NULL)")
	c.b("    return FALSE;")
	c.b("")
	c.b("  return dbus_g_proxy_call (iface, \"%s\", error,", method.Name)
	c.b("      /* in arguments */")
	for _, p := range inParams {
		c.b("      %s, %s,", p.gtype, p.name)
	}
	c.b("      %s,", sentinel)
	c.b("      /* out arguments */")
	for _, p := range outParams {
		c.b("      %s, %s,", p.gtype, p.name)
	}
	c.b("      %s);", sentinel)
	c.b("}")
	c.b("")

	return nil
}

// writeSignature emits "lead (first,\n    second,\n    last)term"
// through the given line writer.
func (c *Context) writeSignature(line func(string, ...any), lead string, params []string, term string) {
	if len(params) == 1 {
		line("%s (%s)%s", lead, params[0], term)
		return
	}
	line("%s (%s,", lead, params[0])
	for _, p := range params[1 : len(params)-1] {
		line("    %s,", p)
	}
	line("    %s)%s", params[len(params)-1], term)
}

// emitGroupDispatcher emits one function that registers the signals
// of whichever supported interface matches the given quark. It is
// meant to be connected to the proxy's interface-added notification.
func (c *Context) emitGroupDispatcher(ifaces []ir.Interface) {
	c.b("static void")
	c.b("%s_%s_add_signals (TpProxy *self,", c.prefix.Lower, c.group)
	c.b("    guint quark,")
	c.b("    DBusGProxy *proxy,")
	c.b("    gpointer unused)")
	c.b("{")

	for _, iface := range ifaces {
		ifaceLower := strings.ToLower(iface.Name)
		c.b("  if (quark == %s_IFACE_QUARK_%s)", c.prefix.Upper, strings.ToUpper(ifaceLower))
		c.b("    %s_add_signals_for_%s (proxy);", c.prefix.Lower, ifaceLower)
	}

	c.b("}")
	c.b("")
}

// resolve looks up an argument's type mapping, attributing failures
// to the offending interface, member, and argument.
func (c *Context) resolve(iface, member string, arg ir.Arg) (typemap.Mapping, error) {
	mapping, err := typemap.Resolve(arg.WireType)
	if err != nil {
		return typemap.Mapping{}, fmt.Errorf("interface %s: member %s: argument %s: %w",
			iface, member, arg.ResolvedName, err)
	}
	return mapping, nil
}
