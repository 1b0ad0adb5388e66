// Package typemap maps D-Bus wire-type signatures to the C storage
// type, GType marshalling tag, and pointer policy used by the
// generated stubs.
//
// Supported signatures form a closed enumeration. Resolving a
// signature outside the enumeration fails with UnknownTypeError;
// generation must abort rather than guess, because a guessed type
// compiles into a silent ABI mismatch.
package typemap

import "fmt"

// Kind enumerates the supported wire types. Adding a case here forces
// a decision in mappingFor, which is an exhaustive switch.
type Kind int

const (
	KindByte Kind = iota
	KindBoolean
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindDouble
	KindString
	KindObjectPath
	KindVariant
	KindStringArray
	KindByteArray
	KindInt32Array
	KindUint32Array
	KindInt64Array
	KindUint64Array
	KindDoubleArray
	KindBooleanArray
	KindStringDict
)

// Mapping describes how one wire type appears in generated code.
type Mapping struct {
	// CType is the native storage type, including its trailing
	// space or pointer stars ("gint ", "gchar *"), so parameter
	// emission is plain concatenation.
	CType string
	// GType is the marshalling tag passed in call payloads and
	// signal registrations ("G_TYPE_STRING").
	GType string
	// Pointer reports whether the storage type is pass-by-pointer.
	// Pointer inputs take a const qualifier; outputs always gain
	// one more level of indirection regardless.
	Pointer bool
}

// UnknownTypeError reports a wire-type signature with no entry in the
// mapping table.
type UnknownTypeError struct {
	Signature string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown wire type %q", e.Signature)
}

// Resolve maps a wire-type signature to its Mapping. It is total over
// the supported enumeration and fails with *UnknownTypeError for
// anything else.
func Resolve(signature string) (Mapping, error) {
	kind, err := ParseSignature(signature)
	if err != nil {
		return Mapping{}, err
	}
	return mappingFor(kind), nil
}

// ParseSignature classifies a wire-type signature string into a Kind.
func ParseSignature(signature string) (Kind, error) {
	switch signature {
	case "y":
		return KindByte, nil
	case "b":
		return KindBoolean, nil
	case "n":
		return KindInt16, nil
	case "q":
		return KindUint16, nil
	case "i":
		return KindInt32, nil
	case "u":
		return KindUint32, nil
	case "x":
		return KindInt64, nil
	case "t":
		return KindUint64, nil
	case "d":
		return KindDouble, nil
	case "s":
		return KindString, nil
	case "o":
		return KindObjectPath, nil
	case "v":
		return KindVariant, nil
	case "as":
		return KindStringArray, nil
	case "ay":
		return KindByteArray, nil
	case "ai":
		return KindInt32Array, nil
	case "au":
		return KindUint32Array, nil
	case "ax":
		return KindInt64Array, nil
	case "at":
		return KindUint64Array, nil
	case "ad":
		return KindDoubleArray, nil
	case "ab":
		return KindBooleanArray, nil
	}

	// Dictionaries keyed by string cover a{ss}, a{sv} and friends.
	if len(signature) > 3 && signature[:3] == "a{s" {
		return KindStringDict, nil
	}

	return 0, &UnknownTypeError{Signature: signature}
}

// mappingFor returns the mapping for a supported kind. The switch is
// exhaustive over Kind; there is deliberately no default arm.
func mappingFor(kind Kind) Mapping {
	switch kind {
	case KindByte:
		return Mapping{CType: "guchar ", GType: "G_TYPE_UCHAR"}
	case KindBoolean:
		return Mapping{CType: "gboolean ", GType: "G_TYPE_BOOLEAN"}
	case KindInt16:
		return Mapping{CType: "gint ", GType: "G_TYPE_INT"}
	case KindUint16:
		return Mapping{CType: "guint ", GType: "G_TYPE_UINT"}
	case KindInt32:
		return Mapping{CType: "gint ", GType: "G_TYPE_INT"}
	case KindUint32:
		return Mapping{CType: "guint ", GType: "G_TYPE_UINT"}
	case KindInt64:
		return Mapping{CType: "gint64 ", GType: "G_TYPE_INT64"}
	case KindUint64:
		return Mapping{CType: "guint64 ", GType: "G_TYPE_UINT64"}
	case KindDouble:
		return Mapping{CType: "gdouble ", GType: "G_TYPE_DOUBLE"}
	case KindString:
		return Mapping{CType: "gchar *", GType: "G_TYPE_STRING", Pointer: true}
	case KindObjectPath:
		return Mapping{CType: "gchar *", GType: "DBUS_TYPE_G_OBJECT_PATH", Pointer: true}
	case KindVariant:
		return Mapping{CType: "GValue *", GType: "G_TYPE_VALUE", Pointer: true}
	case KindStringArray:
		return Mapping{CType: "gchar **", GType: "G_TYPE_STRV", Pointer: true}
	case KindByteArray:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_BYTE_ARRAY", Pointer: true}
	case KindInt32Array:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_INT_ARRAY", Pointer: true}
	case KindUint32Array:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_UINT_ARRAY", Pointer: true}
	case KindInt64Array:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_INT64_ARRAY", Pointer: true}
	case KindUint64Array:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_UINT64_ARRAY", Pointer: true}
	case KindDoubleArray:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_DOUBLE_ARRAY", Pointer: true}
	case KindBooleanArray:
		return Mapping{CType: "GArray *", GType: "DBUS_TYPE_G_BOOLEAN_ARRAY", Pointer: true}
	case KindStringDict:
		return Mapping{CType: "GHashTable *", GType: "DBUS_TYPE_G_STRING_HASHTABLE", Pointer: true}
	}
	panic(fmt.Sprintf("typemap: no mapping for kind %d", kind))
}
