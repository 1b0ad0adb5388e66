package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/internal/ir"
	"github.com/stubgen/stubgen/internal/schema"
	"github.com/stubgen/stubgen/internal/typemap"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool       `json:"valid"`
	Errors []CLIError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema.xml>",
		Short: "Validate a schema without generating artifacts",
		Long: `Validate an introspection XML schema without writing artifacts.

Checks document structure (interface cardinality, required
attributes) and resolves every argument's wire type against the
mapping table. All problems are collected in one pass rather than
stopping at the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := NewFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	ifaces, loadErrors := LoadSchema(schemaPath, schema.CollectAll)

	// File-level problems mean there is nothing to validate.
	if ifaces == nil && len(loadErrors) > 0 {
		cliErr := toCLIError(loadErrors[0])
		_ = formatter.Error(cliErr.Code, cliErr.Message, nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", cliErr.Code, cliErr.Message), nil)
	}

	formatter.VerboseLog("Parsed %d interface(s) from %s", len(ifaces), schemaPath)

	var found []CLIError
	for _, err := range loadErrors {
		found = append(found, toCLIError(err))
	}
	found = append(found, resolveAllTypes(ifaces)...)

	result := ValidationResult{Valid: len(found) == 0, Errors: found}

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ Schema is valid: %d interface(s)\n", len(ifaces))
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Schema has %d error(s)\n\n", len(found))
		for _, e := range found {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", e.Code, e.Message)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(found)))
	}
	return nil
}

// resolveAllTypes checks every argument of every method and signal
// against the type mapping table, collecting each failure.
func resolveAllTypes(ifaces []ir.Interface) []CLIError {
	var errs []CLIError

	check := func(iface, member string, args []ir.Arg) {
		for _, arg := range args {
			if _, err := typemap.Resolve(arg.WireType); err != nil {
				errs = append(errs, CLIError{
					Code: ErrCodeUnknownType,
					Message: fmt.Sprintf("interface %s: member %s: argument %s: %v",
						iface, member, arg.ResolvedName, err),
				})
			}
		}
	}

	for _, iface := range ifaces {
		for _, method := range iface.Methods {
			check(iface.Name, method.Name, method.InArgs)
			check(iface.Name, method.Name, method.OutArgs)
		}
		for _, signal := range iface.Signals {
			check(iface.Name, signal.Name, signal.Args)
		}
	}

	return errs
}
