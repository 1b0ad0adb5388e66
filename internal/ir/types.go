package ir

// Direction classifies a method argument as an input or an output.
type Direction string

const (
	// In arguments are passed to the remote method.
	In Direction = "in"
	// Out arguments are returned by the remote method.
	Out Direction = "out"
)

// Interface represents one remote-object contract: a named group of
// methods and signals. The name comes from the schema node with any
// '/' characters removed, and is used verbatim both in generated
// identifiers and as the proxy lookup key.
type Interface struct {
	Name    string   `json:"name"`
	Methods []Method `json:"methods"`
	Signals []Signal `json:"signals"`
}

// Method represents a callable remote method. Name is the
// schema-original member name and is used unmodified as the wire
// selector. InArgs and OutArgs preserve schema declaration order;
// the wire call is positional, so reordering either slice is a
// correctness bug, not a style choice.
type Method struct {
	Name    string `json:"name"`
	InArgs  []Arg  `json:"in_args"`
	OutArgs []Arg  `json:"out_args"`
}

// Signal represents an emitted signal. Signal arguments carry no
// direction in the schema; they are all conceptually outputs.
type Signal struct {
	Name string `json:"name"`
	Args []Arg  `json:"args"`
}

// Arg represents one typed argument of a method or signal.
//
// RawName may be empty (common for unnamed out-arguments).
// ResolvedName is the generated parameter name: "in_"/"out_" plus the
// raw name, or a synthesized "in0"/"out0"-style ordinal when the raw
// name is absent. Ordinals are 0-based and scoped to the enclosing
// member, counting unnamed arguments of each direction separately.
type Arg struct {
	RawName      string    `json:"name,omitempty"`
	ResolvedName string    `json:"resolved_name"`
	Direction    Direction `json:"direction"`
	WireType     string    `json:"type"`
	SemanticType string    `json:"semantic_type,omitempty"`
}
