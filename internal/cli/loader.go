package cli

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"

	"github.com/stubgen/stubgen/internal/gen"
	"github.com/stubgen/stubgen/internal/ir"
	"github.com/stubgen/stubgen/internal/schema"
	"github.com/stubgen/stubgen/internal/typemap"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Schema file not found
	ErrCodeReadFailed  = "E003" // Schema file read error
	ErrCodeParseFailed = "E004" // XML syntax error
	ErrCodeWriteFailed = "E005" // Artifact write error

	// Schema and type-resolution errors
	ErrCodeMalformedSchema = "E101" // Structural violation (interface cardinality)
	ErrCodeMissingAttr     = "E102" // Missing/invalid required attribute
	ErrCodeUnknownType     = "E103" // Wire type not in the mapping table
	ErrCodeUnsupported     = "E104" // Feature not supported in this version
)

// LoadError represents an error that occurred while reading the
// schema file, before any schema structure was seen.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchema reads and parses an introspection XML file. The
// descriptors come back in their final sorted order. With
// schema.CollectAll, every structural error is reported; with
// schema.FailFast, the first one aborts.
func LoadSchema(path string, mode schema.Mode) ([]ir.Interface, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema file not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error accessing schema file: %v", err)}}
	}
	if info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("not a file: %s", path)}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading schema file: %v", err)}}
	}

	if mode == schema.FailFast {
		ifaces, err := schema.Parse(data)
		if err != nil {
			return nil, []error{err}
		}
		return ifaces, nil
	}

	return schema.Collect(data)
}

// MapErrorToCode classifies an error from any generation stage into
// its diagnostic code.
func MapErrorToCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}

	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return ErrCodeParseFailed
	}

	var malformed *schema.MalformedError
	if errors.As(err, &malformed) {
		switch malformed.Field {
		case "name", "type", "direction":
			return ErrCodeMissingAttr
		default:
			return ErrCodeMalformedSchema
		}
	}

	var unknownType *typemap.UnknownTypeError
	if errors.As(err, &unknownType) {
		return ErrCodeUnknownType
	}

	var unsupported *gen.UnsupportedFeatureError
	if errors.As(err, &unsupported) {
		return ErrCodeUnsupported
	}

	return ErrCodeGeneric
}

// toCLIError converts an error into the structured CLI error form.
func toCLIError(err error) CLIError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return CLIError{Code: loadErr.Code, Message: loadErr.Message}
	}
	return CLIError{Code: MapErrorToCode(err), Message: err.Error()}
}
