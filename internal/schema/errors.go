package schema

import (
	"fmt"
	"strings"
)

// MalformedError reports a structural schema violation: wrong
// cardinality of the interface element, or a missing or invalid
// required attribute. It carries enough context to point at the
// offending interface, member, and argument.
type MalformedError struct {
	Interface string // interface (node) name, if known
	Member    string // method or signal name, if applicable
	Arg       string // argument name or ordinal, if applicable
	Field     string // offending attribute or element
	Message   string
}

func (e *MalformedError) Error() string {
	var parts []string
	if e.Interface != "" {
		parts = append(parts, fmt.Sprintf("interface %s", e.Interface))
	}
	if e.Member != "" {
		parts = append(parts, fmt.Sprintf("member %s", e.Member))
	}
	if e.Arg != "" {
		parts = append(parts, fmt.Sprintf("argument %s", e.Arg))
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}
