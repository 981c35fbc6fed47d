package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortflow/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                       `json:"valid"`
	Workflows   int                        `json:"workflows"`
	Errors      []compiler.ValidationError `json:"errors,omitempty"`
	Cycles      []compiler.CycleWarning    `json:"cycles,omitempty"`
	Unreachable []string                   `json:"unreachable,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a workflow graph for structural errors",
		Long: `Check a workflow graph without evaluating it.

Reports every structural error (missing entry, missing fallback rule,
unknown destination, unknown attribute) and warns about cycles and
workflows that cannot be reached from the entry.

Exit codes:
  0 - Graph is valid (warnings do not fail)
  1 - Graph has validation errors
  2 - Command error (unreadable or unparsable input)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loadResult, err := LoadSource(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Error(), nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	formatter.VerboseLog("Loaded %d file(s) from %s", loadResult.FileCount, path)

	g := loadResult.Document.Graph
	if opts.Entry != "" {
		g.Entry = opts.Entry
	}

	result := ValidationResult{
		Workflows:   len(g.Workflows),
		Errors:      compiler.Validate(g),
		Cycles:      compiler.AnalyzeCycles(g),
		Unreachable: compiler.Unreachable(g),
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}

	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	printWarnings(formatter, result)
	fmt.Fprintf(formatter.Writer, "✓ Graph valid (%d workflows)\n", result.Workflows)
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Input that cannot be loaded is a command-level error (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
			TraceID: formatter.TraceID,
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}
	fmt.Fprintln(formatter.Writer)
	printWarnings(formatter, result)

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// printWarnings writes cycle and reachability warnings in text form.
func printWarnings(formatter *OutputFormatter, result ValidationResult) {
	for _, c := range result.Cycles {
		fmt.Fprintf(formatter.Writer, "⚠ cycle: %s\n", strings.Join(c.Path, " → "))
	}
	if len(result.Unreachable) > 0 {
		fmt.Fprintf(formatter.Writer, "⚠ unreachable: %s\n", strings.Join(result.Unreachable, ", "))
	}
}
