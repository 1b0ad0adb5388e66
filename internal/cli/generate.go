package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stubgen/stubgen/internal/config"
	"github.com/stubgen/stubgen/internal/gen"
	"github.com/stubgen/stubgen/internal/ir"
	"github.com/stubgen/stubgen/internal/schema"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	OutputDir      string
	Group          string
	ConfigPath     string
	AsyncStubs     bool
	SignalBindings bool
}

// GenerationSummary holds the success payload of a generate run.
type GenerationSummary struct {
	Interfaces []string `json:"interfaces"`
	Methods    int      `json:"methods"`
	Signals    int      `json:"signals"`
	Header     string   `json:"header"`
	Body       string   `json:"body"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <schema.xml> <prefix> <basename>",
		Short: "Generate client stubs from an introspection XML schema",
		Long: `Generate dbus-glib client stubs from an introspection XML schema.

The generator writes two artifacts derived from <basename>: a
declarations header ({basename}.h) with one prototype per method and
an inline signal-registration helper per interface, and a definitions
source file ({basename}.c) with one synchronous blocking call stub
per method. A run either produces both artifacts or fails with a
non-zero exit; there is no partial-success mode.

<prefix> and <basename> may be omitted when --config supplies them.`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "directory for the generated artifacts")
	cmd.Flags().StringVar(&opts.Group, "group", "", "also emit a signal-registration dispatcher for this group name")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML file with defaults for prefix/basename/output-dir/group")
	cmd.Flags().BoolVar(&opts.AsyncStubs, "async-stubs", false, "emit asynchronous call stubs (not supported)")
	cmd.Flags().BoolVar(&opts.SignalBindings, "signal-bindings", false, "emit full signal-subscription helpers (not supported)")

	return cmd
}

func runGenerate(opts *GenerateOptions, args []string, cmd *cobra.Command) error {
	formatter := NewFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	schemaPath := args[0]
	prefix := ""
	basename := ""
	if len(args) > 1 {
		prefix = args[1]
	}
	if len(args) > 2 {
		basename = args[2]
	}

	if opts.ConfigPath != "" {
		defaults, err := config.Load(opts.ConfigPath)
		if err != nil {
			return outputGenerateError(formatter, ErrCodeReadFailed, err.Error())
		}
		if prefix == "" {
			prefix = defaults.Prefix
		}
		if basename == "" {
			basename = defaults.Basename
		}
		if opts.OutputDir == "" {
			opts.OutputDir = defaults.OutputDir
		}
		if opts.Group == "" {
			opts.Group = defaults.Group
		}
	}

	if prefix == "" || basename == "" {
		return outputGenerateError(formatter, ErrCodeGeneric,
			"prefix and basename are required (positional arguments or --config)")
	}

	ctx := gen.NewContext(prefix, basename, opts.Group)

	// Modes this generator version deliberately does not implement
	// fail up front rather than emitting partial code.
	if opts.AsyncStubs {
		if err := ctx.EmitAsyncStubs(); err != nil {
			return outputGenerateError(formatter, MapErrorToCode(err), err.Error())
		}
	}
	if opts.SignalBindings {
		if err := ctx.EmitSignalBindings(); err != nil {
			return outputGenerateError(formatter, MapErrorToCode(err), err.Error())
		}
	}

	ifaces, loadErrors := LoadSchema(schemaPath, schema.FailFast)
	if len(loadErrors) > 0 {
		cliErr := toCLIError(loadErrors[0])
		return outputGenerateError(formatter, cliErr.Code, cliErr.Message)
	}

	formatter.VerboseLog("Parsed %d interface(s) from %s", len(ifaces), schemaPath)
	for _, iface := range ifaces {
		formatter.VerboseLog("Generating interface: %s (%d method(s), %d signal(s))",
			iface.Name, len(iface.Methods), len(iface.Signals))
	}

	if err := ctx.Generate(ifaces); err != nil {
		return outputGenerateError(formatter, MapErrorToCode(err), err.Error())
	}

	if err := gen.WriteArtifacts(opts.OutputDir, ctx); err != nil {
		return outputGenerateError(formatter, ErrCodeWriteFailed, err.Error())
	}

	summary := summarize(ifaces, opts.OutputDir, basename)
	return outputGenerateSuccess(formatter, summary)
}

func summarize(ifaces []ir.Interface, dir, basename string) GenerationSummary {
	summary := GenerationSummary{
		Interfaces: make([]string, 0, len(ifaces)),
		Header:     filepath.Join(dir, basename+".h"),
		Body:       filepath.Join(dir, basename+".c"),
	}
	for _, iface := range ifaces {
		summary.Interfaces = append(summary.Interfaces, iface.Name)
		summary.Methods += len(iface.Methods)
		summary.Signals += len(iface.Signals)
	}
	return summary
}

// outputGenerateSuccess outputs a successful generation result.
func outputGenerateSuccess(formatter *OutputFormatter, summary GenerationSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Generated %d interface(s): %d method stub(s), %d signal registration(s)\n\n",
		len(summary.Interfaces), summary.Methods, summary.Signals)

	for _, name := range summary.Interfaces {
		fmt.Fprintf(formatter.Writer, "  %s\n", name)
	}
	if len(summary.Interfaces) > 0 {
		fmt.Fprintln(formatter.Writer)
	}

	fmt.Fprintf(formatter.Writer, "Wrote %s\n", summary.Header)
	fmt.Fprintf(formatter.Writer, "Wrote %s\n", summary.Body)

	return nil
}

// outputGenerateError outputs a single generation error. Generation
// errors are command-level errors (exit code 2).
func outputGenerateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
