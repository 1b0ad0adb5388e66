package schema

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/stubgen/stubgen/internal/ir"
)

// NSSemanticType is the namespace of the optional semantic-type
// annotation attribute on arguments. The annotation is recorded on
// the descriptor as generator metadata and does not affect emitted
// code.
const NSSemanticType = "http://telepathy.freedesktop.org/wiki/DbusSpec#extensions-v0"

// Mode controls how parse errors are handled.
type Mode int

const (
	// FailFast stops on the first error encountered.
	FailFast Mode = iota
	// CollectAll records every error before returning.
	CollectAll
)

type xmlDocument struct {
	XMLName    xml.Name
	Name       string         `xml:"name,attr"`
	Interfaces []xmlInterface `xml:"interface"`
	Nodes      []xmlNode      `xml:"node"`
}

type xmlNode struct {
	Name       string         `xml:"name,attr"`
	Interfaces []xmlInterface `xml:"interface"`
}

type xmlInterface struct {
	Name    string      `xml:"name,attr"`
	Methods []xmlMember `xml:"method"`
	Signals []xmlMember `xml:"signal"`
}

type xmlMember struct {
	Name string   `xml:"name,attr"`
	Args []xmlArg `xml:"arg"`
}

type xmlArg struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (a xmlArg) attr(space, local string) string {
	for _, at := range a.Attrs {
		if at.Name.Space == space && at.Name.Local == local {
			return at.Value
		}
	}
	return ""
}

// Parse reads introspection XML and returns the interface descriptors
// sorted case-sensitively by name. The first structural error aborts
// parsing.
func Parse(data []byte) ([]ir.Interface, error) {
	ifaces, errs := parse(data, FailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ifaces, nil
}

// Collect reads introspection XML like Parse but records every
// structural error instead of stopping at the first. The returned
// descriptors cover only the interfaces that parsed cleanly.
func Collect(data []byte) ([]ir.Interface, []error) {
	return parse(data, CollectAll)
}

func parse(data []byte, mode Mode) ([]ir.Interface, []error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, []error{fmt.Errorf("parsing schema XML: %w", err)}
	}

	nodes := doc.Nodes
	if len(nodes) == 0 && doc.XMLName.Local == "node" {
		// The whole document is a single interface-bearing node.
		nodes = []xmlNode{{Name: doc.Name, Interfaces: doc.Interfaces}}
	}

	var errs []error
	ifaces := make([]ir.Interface, 0, len(nodes))

	for _, node := range nodes {
		iface, err := parseNode(node)
		if err != nil {
			errs = append(errs, err)
			if mode == FailFast {
				return nil, errs
			}
			continue
		}
		ifaces = append(ifaces, iface)
	}

	// Case-sensitive lexicographic order; the comparator must stay
	// byte-based so generated artifacts reproduce exactly.
	sort.SliceStable(ifaces, func(i, j int) bool {
		return ifaces[i].Name < ifaces[j].Name
	})

	return ifaces, errs
}

func parseNode(node xmlNode) (ir.Interface, error) {
	name := strings.ReplaceAll(node.Name, "/", "")
	if name == "" {
		return ir.Interface{}, &MalformedError{
			Field:   "name",
			Message: "node is missing a name attribute",
		}
	}

	if len(node.Interfaces) != 1 {
		return ir.Interface{}, &MalformedError{
			Interface: name,
			Field:     "interface",
			Message: fmt.Sprintf("expected exactly one interface element, found %d",
				len(node.Interfaces)),
		}
	}
	xi := node.Interfaces[0]

	iface := ir.Interface{Name: name}

	for _, m := range xi.Methods {
		method, err := parseMethod(name, m)
		if err != nil {
			return ir.Interface{}, err
		}
		iface.Methods = append(iface.Methods, method)
	}

	for _, s := range xi.Signals {
		signal, err := parseSignal(name, s)
		if err != nil {
			return ir.Interface{}, err
		}
		iface.Signals = append(iface.Signals, signal)
	}

	return iface, nil
}

func parseMethod(iface string, m xmlMember) (ir.Method, error) {
	if m.Name == "" {
		return ir.Method{}, &MalformedError{
			Interface: iface,
			Field:     "name",
			Message:   "method is missing a name attribute",
		}
	}

	method := ir.Method{Name: m.Name}
	inCount := 0
	outCount := 0

	for i, a := range m.Args {
		rawName := a.attr("", "name")
		wireType := a.attr("", "type")
		direction := a.attr("", "direction")

		argRef := rawName
		if argRef == "" {
			argRef = strconv.Itoa(i)
		}

		if wireType == "" {
			return ir.Method{}, &MalformedError{
				Interface: iface,
				Member:    m.Name,
				Arg:       argRef,
				Field:     "type",
				Message:   "argument is missing a type attribute",
			}
		}

		// Direction is required on method arguments. The lenient
		// treat-anything-but-out-as-in reading hides malformed
		// schemas, so it is rejected here.
		var dir ir.Direction
		switch direction {
		case "in":
			dir = ir.In
		case "out":
			dir = ir.Out
		case "":
			return ir.Method{}, &MalformedError{
				Interface: iface,
				Member:    m.Name,
				Arg:       argRef,
				Field:     "direction",
				Message:   "argument is missing a direction attribute",
			}
		default:
			return ir.Method{}, &MalformedError{
				Interface: iface,
				Member:    m.Name,
				Arg:       argRef,
				Field:     "direction",
				Message:   fmt.Sprintf("invalid direction %q (want \"in\" or \"out\")", direction),
			}
		}

		arg := ir.Arg{
			RawName:      rawName,
			Direction:    dir,
			WireType:     wireType,
			SemanticType: a.attr(NSSemanticType, "type"),
		}

		if dir == ir.In {
			if rawName == "" {
				arg.ResolvedName = fmt.Sprintf("in%d", inCount)
				inCount++
			} else {
				arg.ResolvedName = "in_" + rawName
			}
			method.InArgs = append(method.InArgs, arg)
		} else {
			if rawName == "" {
				arg.ResolvedName = fmt.Sprintf("out%d", outCount)
				outCount++
			} else {
				arg.ResolvedName = "out_" + rawName
			}
			method.OutArgs = append(method.OutArgs, arg)
		}
	}

	return method, nil
}

func parseSignal(iface string, s xmlMember) (ir.Signal, error) {
	if s.Name == "" {
		return ir.Signal{}, &MalformedError{
			Interface: iface,
			Field:     "name",
			Message:   "signal is missing a name attribute",
		}
	}

	signal := ir.Signal{Name: s.Name}
	unnamed := 0

	for i, a := range s.Args {
		rawName := a.attr("", "name")
		wireType := a.attr("", "type")

		if wireType == "" {
			argRef := rawName
			if argRef == "" {
				argRef = strconv.Itoa(i)
			}
			return ir.Signal{}, &MalformedError{
				Interface: iface,
				Member:    s.Name,
				Arg:       argRef,
				Field:     "type",
				Message:   "argument is missing a type attribute",
			}
		}

		// Signal arguments carry no direction; they are emitted by
		// the remote object, so they resolve as outputs.
		arg := ir.Arg{
			RawName:      rawName,
			Direction:    ir.Out,
			WireType:     wireType,
			SemanticType: a.attr(NSSemanticType, "type"),
		}
		if rawName == "" {
			arg.ResolvedName = fmt.Sprintf("out%d", unnamed)
			unnamed++
		} else {
			arg.ResolvedName = "out_" + rawName
		}
		signal.Args = append(signal.Args, arg)
	}

	return signal, nil
}
