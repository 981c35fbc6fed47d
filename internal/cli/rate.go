package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortflow/internal/ir"
)

// PartVerdict is one classified part.
type PartVerdict struct {
	Part    string     `json:"part"`
	Rating  int64      `json:"rating"`
	Verdict ir.Verdict `json:"verdict"`
}

// RateResult holds the outcome of classifying a document's parts.
type RateResult struct {
	Parts     []PartVerdict `json:"parts"`
	Accepted  int           `json:"accepted"`
	Rejected  int           `json:"rejected"`
	RatingSum int64         `json:"rating_sum"`
}

// NewRateCommand creates the rate command.
func NewRateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate <file>",
		Short: "Classify every part and sum the ratings of accepted parts",
		Long: `Route each part of the document from the entry workflow to accept or
reject, then report the sum of x+m+a+s over the accepted parts.

Examples:
  sortflow rate ./input.txt
  sortflow rate ./graph.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, eng, err := loadEngine(opts, path, formatter)
	if err != nil {
		return err
	}

	sorted, err := eng.SortParts(doc.Parts)
	if err != nil {
		return reportEngineError(formatter, err, nil)
	}

	result := RateResult{
		Parts:     make([]PartVerdict, 0, len(doc.Parts)),
		Accepted:  len(sorted.Accepted),
		Rejected:  len(sorted.Rejected),
		RatingSum: sorted.RatingSum(),
	}
	for i, p := range doc.Parts {
		result.Parts = append(result.Parts, PartVerdict{Part: p.String(), Rating: p.Rating(), Verdict: sorted.Verdicts[i]})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if opts.Verbose {
		for _, pv := range result.Parts {
			fmt.Fprintf(w, "%s → %s\n", pv.Part, pv.Verdict)
		}
	}
	fmt.Fprintf(w, "Accepted: %d of %d parts\n", result.Accepted, len(result.Parts))
	fmt.Fprintf(w, "Rating sum: %d\n", result.RatingSum)
	return nil
}
