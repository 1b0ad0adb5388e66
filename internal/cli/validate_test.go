package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidateCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestValidateValidSchema(t *testing.T) {
	schemaPath := writeSchema(t, exampleSchema)

	buf, err := runValidateCommand(t, "text", schemaPath)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Schema is valid: 1 interface(s)")
}

func TestValidateValidSchemaJSON(t *testing.T) {
	schemaPath := writeSchema(t, exampleSchema)

	buf, err := runValidateCommand(t, "json", schemaPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Nil(t, data["errors"])
}

func TestValidateCollectsAllErrors(t *testing.T) {
	schemaPath := writeSchema(t, `<spec>
  <node name="/Alpha">
    <interface name="a">
      <method name="First">
        <arg name="a" type="i"/>
      </method>
    </interface>
  </node>
  <node name="/Beta">
    <interface name="b">
      <method name="Second">
        <arg name="b" direction="in" type="zz"/>
      </method>
    </interface>
  </node>
  <node name="/Gamma">
    <interface name="c">
      <method name="Third">
        <arg name="c" direction="sideways" type="i"/>
      </method>
    </interface>
  </node>
</spec>`)

	buf, err := runValidateCommand(t, "text", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ Schema has 3 error(s)")
	assert.Contains(t, output, ErrCodeMissingAttr)
	assert.Contains(t, output, ErrCodeUnknownType)
	assert.Contains(t, output, "member First: argument a: argument is missing a direction attribute")
	assert.Contains(t, output, "member Second: argument in_b")
	assert.Contains(t, output, `invalid direction "sideways"`)
}

func TestValidateReportsSignalTypes(t *testing.T) {
	schemaPath := writeSchema(t, `<spec>
  <node name="/Example">
    <interface name="i">
      <signal name="Changed">
        <arg name="state" type="(ii)"/>
      </signal>
    </interface>
  </node>
</spec>`)

	buf, err := runValidateCommand(t, "text", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "member Changed: argument out_state")
}

func TestValidateInvalidSchemaJSON(t *testing.T) {
	schemaPath := writeSchema(t, `<spec>
  <node name="/Example">
    <interface name="i">
      <method name="DoThing">
        <arg name="value" direction="in" type="zz"/>
      </method>
    </interface>
  </node>
</spec>`)

	buf, err := runValidateCommand(t, "json", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	errs := data["errors"].([]interface{})
	require.Len(t, errs, 1)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, ErrCodeUnknownType, first["code"])
}

func TestValidateMalformedXML(t *testing.T) {
	schemaPath := writeSchema(t, `<spec><node name="/Example">`)

	buf, err := runValidateCommand(t, "text", schemaPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeParseFailed)
}

func TestValidateNonExistentFile(t *testing.T) {
	buf, err := runValidateCommand(t, "text", "/nonexistent/schema.xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeNotFound)
}
