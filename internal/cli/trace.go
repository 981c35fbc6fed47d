package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Part    int  // 1-based part index, 0 for all parts
	Regions bool // trace the propagation instead of parts
	Bound   int64
}

// RouteView is the path one part took.
type RouteView struct {
	Part    string     `json:"part"`
	Path    []string   `json:"path"`
	Verdict ir.Verdict `json:"verdict"`
}

// StepView is one drained work item of a propagation.
type StepView struct {
	Seq      int64    `json:"seq"`
	Workflow string   `json:"workflow"`
	Input    string   `json:"input"`
	Outputs  []string `json:"outputs"` // "dest <- region"
}

// TraceResult holds the trace output. Routes is set for part traces,
// Steps, Accepted and Rejected for region traces.
type TraceResult struct {
	Routes   []RouteView `json:"routes,omitempty"`
	Steps    []StepView  `json:"steps,omitempty"`
	Accepted []string    `json:"accepted,omitempty"`
	Rejected []string    `json:"rejected,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Show how parts or regions move through the graph",
		Long: `Show the workflows each part visits on its way to accept or reject.

With --regions, trace the propagation of [1,bound]^4 instead: every drained
workflow with the regions it produced, followed by the accepted and
rejected regions.

Examples:
  sortflow trace ./input.txt
  sortflow trace ./input.txt --part 2
  sortflow trace ./input.txt --regions --bound 20 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Part, "part", 0, "trace only the Nth part (1-based)")
	cmd.Flags().BoolVar(&opts.Regions, "regions", false, "trace region propagation instead of parts")
	cmd.Flags().Int64Var(&opts.Bound, "bound", ir.DefaultHi, "upper bound of every attribute for --regions")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, eng, err := loadEngine(opts.RootOptions, path, formatter)
	if err != nil {
		return err
	}

	var result TraceResult
	if opts.Regions {
		if opts.Bound < ir.DefaultLo {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("bound must be at least %d", ir.DefaultLo), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid bound %d", opts.Bound))
		}
		partition, err := eng.Propagate(ir.Universe(ir.DefaultLo, opts.Bound))
		if err != nil {
			return reportEngineError(formatter, err, nil)
		}
		result = regionTrace(partition)
	} else {
		parts := doc.Parts
		if opts.Part != 0 {
			if opts.Part < 1 || opts.Part > len(parts) {
				msg := fmt.Sprintf("part %d out of range: document has %d part(s)", opts.Part, len(parts))
				_ = formatter.Error(ErrCodeGeneric, msg, nil)
				return NewExitError(ExitCommandError, msg)
			}
			parts = parts[opts.Part-1 : opts.Part]
		}
		for _, p := range parts {
			route, err := eng.Route(p)
			if err != nil {
				return reportEngineError(formatter, err, map[string]string{"part": p.String()})
			}
			result.Routes = append(result.Routes, RouteView{Part: p.String(), Path: route.Path, Verdict: route.Verdict})
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	outputTraceText(cmd, result)
	return nil
}

// regionTrace converts a partition to its display form.
func regionTrace(p *engine.Partition) TraceResult {
	var result TraceResult
	for _, step := range p.Steps {
		view := StepView{Seq: step.Seq, Workflow: step.Label, Input: step.Input.String()}
		for _, rt := range step.Outputs {
			view.Outputs = append(view.Outputs, rt.Destination+" <- "+rt.Region.String())
		}
		result.Steps = append(result.Steps, view)
	}
	for _, r := range p.Accepted {
		result.Accepted = append(result.Accepted, r.String())
	}
	for _, r := range p.Rejected {
		result.Rejected = append(result.Rejected, r.String())
	}
	return result
}

// outputTraceText outputs the trace in human-readable format.
func outputTraceText(cmd *cobra.Command, result TraceResult) {
	w := cmd.OutOrStdout()

	for _, r := range result.Routes {
		path := append(append([]string{}, r.Path...), terminalFor(r.Verdict))
		fmt.Fprintf(w, "%s: %s (%s)\n", r.Part, strings.Join(path, " → "), r.Verdict)
	}

	if len(result.Steps) == 0 {
		return
	}

	fmt.Fprintln(w, "Steps:")
	for _, s := range result.Steps {
		fmt.Fprintf(w, "  [%d] %s %s\n", s.Seq, s.Workflow, s.Input)
		for _, out := range s.Outputs {
			fmt.Fprintf(w, "      → %s\n", out)
		}
	}

	fmt.Fprintln(w, "Accepted:")
	for _, r := range result.Accepted {
		fmt.Fprintf(w, "  %s\n", r)
	}
	fmt.Fprintln(w, "Rejected:")
	for _, r := range result.Rejected {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

func terminalFor(v ir.Verdict) string {
	if v == ir.Accepted {
		return ir.AcceptLabel
	}
	return ir.RejectLabel
}
