package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortflow/internal/ir"
)

// CombosOptions holds flags for the combos command.
type CombosOptions struct {
	*RootOptions
	Bound int64 // upper bound of every axis
}

// CombosResult holds the outcome of propagating the full universe.
type CombosResult struct {
	Bound          int64  `json:"bound"`
	Universe       string `json:"universe"`
	AcceptedVolume string `json:"accepted_volume"`
	RejectedVolume string `json:"rejected_volume"`
	Steps          int    `json:"steps"`
	GraphHash      string `json:"graph_hash"`
	AcceptedHash   string `json:"accepted_hash"`
}

// NewCombosCommand creates the combos command.
func NewCombosCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CombosOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "combos <file>",
		Short: "Count every rating combination the graph accepts",
		Long: `Propagate the universe [1,bound]^4 through the workflow graph, splitting
it into accepted and rejected regions, and report the accepted volume.

Parts in the document are ignored.

Examples:
  sortflow combos ./input.txt
  sortflow combos ./input.txt --bound 20
  sortflow combos ./graph.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombos(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Bound, "bound", ir.DefaultHi, "upper bound of every attribute")

	return cmd
}

func runCombos(opts *CombosOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Bound < ir.DefaultLo {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("bound must be at least %d", ir.DefaultLo), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid bound %d", opts.Bound))
	}

	_, eng, err := loadEngine(opts.RootOptions, path, formatter)
	if err != nil {
		return err
	}

	universe := ir.Universe(ir.DefaultLo, opts.Bound)
	partition, err := eng.Propagate(universe)
	if err != nil {
		return reportEngineError(formatter, err, nil)
	}

	graphHash, err := ir.GraphHash(eng.Graph())
	if err != nil {
		return reportEngineError(formatter, err, nil)
	}
	acceptedHash, err := ir.RegionsHash(partition.Accepted)
	if err != nil {
		return reportEngineError(formatter, err, nil)
	}

	result := CombosResult{
		Bound:          opts.Bound,
		Universe:       universe.String(),
		AcceptedVolume: partition.AcceptedVolume().String(),
		RejectedVolume: partition.RejectedVolume().String(),
		Steps:          len(partition.Steps),
		GraphHash:      graphHash,
		AcceptedHash:   acceptedHash,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	formatter.VerboseLog("Propagated %s in %d steps (graph %s)", result.Universe, result.Steps, result.GraphHash[:12])
	fmt.Fprintf(w, "Accepted combinations: %s\n", result.AcceptedVolume)
	fmt.Fprintf(w, "Rejected combinations: %s\n", result.RejectedVolume)
	return nil
}
