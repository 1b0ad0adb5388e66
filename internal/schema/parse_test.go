package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubgen/stubgen/internal/ir"
)

const exampleSchema = `<?xml version="1.0" encoding="UTF-8"?>
<spec xmlns:tp="http://telepathy.freedesktop.org/wiki/DbusSpec#extensions-v0">
  <tp:copyright>Test fixture</tp:copyright>
  <node name="/Example">
    <interface name="org.example.Example">
      <method name="DoThing">
        <arg name="value" direction="in" type="i"/>
        <arg direction="out" type="s"/>
      </method>
      <signal name="ThingDone">
        <arg name="result" type="u" tp:type="Result_Code"/>
      </signal>
    </interface>
  </node>
</spec>`

func TestParseExample(t *testing.T) {
	ifaces, err := Parse([]byte(exampleSchema))
	require.NoError(t, err)
	require.Len(t, ifaces, 1)

	iface := ifaces[0]
	assert.Equal(t, "Example", iface.Name)
	require.Len(t, iface.Methods, 1)
	require.Len(t, iface.Signals, 1)

	method := iface.Methods[0]
	assert.Equal(t, "DoThing", method.Name)
	require.Len(t, method.InArgs, 1)
	require.Len(t, method.OutArgs, 1)

	in := method.InArgs[0]
	assert.Equal(t, "value", in.RawName)
	assert.Equal(t, "in_value", in.ResolvedName)
	assert.Equal(t, ir.In, in.Direction)
	assert.Equal(t, "i", in.WireType)

	out := method.OutArgs[0]
	assert.Equal(t, "", out.RawName)
	assert.Equal(t, "out0", out.ResolvedName)
	assert.Equal(t, ir.Out, out.Direction)
	assert.Equal(t, "s", out.WireType)

	signal := iface.Signals[0]
	assert.Equal(t, "ThingDone", signal.Name)
	require.Len(t, signal.Args, 1)
	assert.Equal(t, "out_result", signal.Args[0].ResolvedName)
	assert.Equal(t, "Result_Code", signal.Args[0].SemanticType)
}

func TestParseSortsInterfacesByName(t *testing.T) {
	doc := `<spec>
  <node name="/Zeta"><interface name="z"/></node>
  <node name="/Alpha"><interface name="a"/></node>
  <node name="/Mu"><interface name="m"/></node>
</spec>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ifaces, 3)
	assert.Equal(t, "Alpha", ifaces[0].Name)
	assert.Equal(t, "Mu", ifaces[1].Name)
	assert.Equal(t, "Zeta", ifaces[2].Name)
}

func TestParseSortIsCaseSensitive(t *testing.T) {
	doc := `<spec>
  <node name="/alpha"><interface name="a"/></node>
  <node name="/Zeta"><interface name="z"/></node>
</spec>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ifaces, 2)
	// Byte order: capitals sort before lowercase.
	assert.Equal(t, "Zeta", ifaces[0].Name)
	assert.Equal(t, "alpha", ifaces[1].Name)
}

func TestParseSingleNodeDocument(t *testing.T) {
	doc := `<node name="/Solo">
  <interface name="org.example.Solo">
    <method name="Ping"/>
  </interface>
</node>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "Solo", ifaces[0].Name)
	require.Len(t, ifaces[0].Methods, 1)
}

func TestParseStripsSlashesFromNodeName(t *testing.T) {
	doc := `<spec><node name="/Stream/Handler"><interface name="i"/></node></spec>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "StreamHandler", ifaces[0].Name)
}

func TestParseRejectsWrongInterfaceCardinality(t *testing.T) {
	none := `<spec><node name="/Empty"></node></spec>`
	_, err := Parse([]byte(none))
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "interface", malformed.Field)
	assert.Equal(t, "Empty", malformed.Interface)

	two := `<spec><node name="/Twice">
  <interface name="a"/>
  <interface name="b"/>
</node></spec>`
	_, err = Parse([]byte(two))
	require.Error(t, err)
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Error(), "found 2")
}

func TestParseRequiresNodeName(t *testing.T) {
	doc := `<spec><node><interface name="a"/></node></spec>`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "name", malformed.Field)
}

func TestParseRequiresDirectionOnMethodArgs(t *testing.T) {
	doc := `<spec><node name="/Example">
  <interface name="i">
    <method name="DoThing">
      <arg name="value" type="i"/>
    </method>
  </interface>
</node></spec>`

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "direction", malformed.Field)
	assert.Equal(t, "Example", malformed.Interface)
	assert.Equal(t, "DoThing", malformed.Member)
	assert.Equal(t, "value", malformed.Arg)
}

func TestParseRejectsInvalidDirection(t *testing.T) {
	doc := `<spec><node name="/Example">
  <interface name="i">
    <method name="DoThing">
      <arg name="value" direction="inout" type="i"/>
    </method>
  </interface>
</node></spec>`

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "direction", malformed.Field)
	assert.Contains(t, malformed.Error(), "inout")
}

func TestParseRequiresArgType(t *testing.T) {
	doc := `<spec><node name="/Example">
  <interface name="i">
    <signal name="Fired">
      <arg name="value"/>
    </signal>
  </interface>
</node></spec>`

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "type", malformed.Field)
	assert.Equal(t, "Fired", malformed.Member)
}

func TestParseNumbersUnnamedArgsPerMethod(t *testing.T) {
	doc := `<spec><node name="/Example">
  <interface name="i">
    <method name="First">
      <arg direction="in" type="i"/>
      <arg direction="out" type="u"/>
      <arg direction="out" type="s"/>
    </method>
    <method name="Second">
      <arg direction="out" type="u"/>
    </method>
  </interface>
</node></spec>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)

	first := ifaces[0].Methods[0]
	assert.Equal(t, "in0", first.InArgs[0].ResolvedName)
	assert.Equal(t, "out0", first.OutArgs[0].ResolvedName)
	assert.Equal(t, "out1", first.OutArgs[1].ResolvedName)

	// Ordinals restart for each method.
	second := ifaces[0].Methods[1]
	assert.Equal(t, "out0", second.OutArgs[0].ResolvedName)
}

func TestParsePreservesArgumentOrder(t *testing.T) {
	doc := `<spec><node name="/Example">
  <interface name="i">
    <method name="Swap">
      <arg name="b" direction="in" type="s"/>
      <arg name="a" direction="in" type="i"/>
    </method>
  </interface>
</node></spec>`

	ifaces, err := Parse([]byte(doc))
	require.NoError(t, err)

	in := ifaces[0].Methods[0].InArgs
	require.Len(t, in, 2)
	// Document order, not alphabetical: the wire call is positional.
	assert.Equal(t, "in_b", in[0].ResolvedName)
	assert.Equal(t, "in_a", in[1].ResolvedName)
}

func TestCollectGathersAllErrors(t *testing.T) {
	doc := `<spec>
  <node name="/One"><interface name="a"/><interface name="b"/></node>
  <node><interface name="c"/></node>
  <node name="/Ok"><interface name="d"/></node>
</spec>`

	ifaces, errs := Collect([]byte(doc))
	assert.Len(t, errs, 2)
	// The clean interface still parses.
	require.Len(t, ifaces, 1)
	assert.Equal(t, "Ok", ifaces[0].Name)
}

func TestParseRejectsMalformedXML(t *testing.T) {
	_, err := Parse([]byte(`<spec><node name="/X">`))
	require.Error(t, err)
}
