package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

// Version is the CLI version, overridable at link time.
var Version = ir.EngineVersion

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Entry    string // entry workflow, empty for the document's own
	MaxSteps int    // propagation step quota

	// RunIDs stamps JSON responses. Nil means UUIDv7.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sortflow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "sortflow",
		Short:   "sortflow - range-splitting workflow rule engine",
		Long:    "Route parts through workflow rules, and count every rating combination a workflow graph accepts.",
		Version: Version,
		// main prints the returned error; ExitErrors carry the exit code
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.MaxSteps <= 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid --max-steps %d: must be positive", opts.MaxSteps))
			}
			setupLogging(opts, cmd.ErrOrStderr())
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Entry, "entry", "", "entry workflow (default: the document's, usually \"in\")")
	cmd.PersistentFlags().IntVar(&opts.MaxSteps, "max-steps", engine.DefaultMaxSteps, "maximum work items per propagation")

	// Add subcommands
	cmd.AddCommand(NewRateCommand(opts))
	cmd.AddCommand(NewCombosCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setupLogging installs the default slog logger on w.
// Engine step logs are Debug, so they only show with --verbose.
func setupLogging(opts *RootOptions, w io.Writer) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the output formatter for one command run.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		f.TraceID = opts.runIDs().Generate()
	}
	return f
}

// engineOptions translates the global flags into engine options.
func engineOptions(opts *RootOptions) []engine.EngineOption {
	var out []engine.EngineOption
	if opts.Entry != "" {
		out = append(out, engine.WithEntry(opts.Entry))
	}
	if opts.MaxSteps > 0 {
		out = append(out, engine.WithMaxSteps(opts.MaxSteps))
	}
	return out
}
