package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/marty-droid/laundromat-app-v3/internal/application/pipeline"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/ranking"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/scoring"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
)

type rankOptions struct {
	input          string
	neighborhoods  []string
	minScore       float64
	minCapRate     float64
	realEstateOnly bool
}

// newRankCommand ranks listings locally without a server: bundled reference
// data by default, or a JSON listing file via --input.
func newRankCommand(root *rootOptions) *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank listings locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "JSON listing file (default: bundled reference data)")
	f.StringSliceVar(&opts.neighborhoods, "neighborhoods", nil, "restrict to the named neighborhoods")
	f.Float64Var(&opts.minScore, "min-score", 0, "inclusive opportunity score floor")
	f.Float64Var(&opts.minCapRate, "min-cap-rate", 0, "inclusive cap rate floor, in percent")
	f.BoolVar(&opts.realEstateOnly, "real-estate-only", false, "keep only listings that include real estate")

	return cmd
}

func runRank(cmd *cobra.Command, root *rootOptions, opts *rankOptions) error {
	var src source.Source
	if opts.input != "" {
		src = source.NewFileSource(opts.input)
	} else {
		src = source.NewStaticSource()
	}

	p := pipeline.New(src, scoring.NewDefaultScorer(), logging.NewNopLogger())
	engine, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	criteria := ranking.Criteria{
		Neighborhoods:  opts.neighborhoods,
		MinScore:       opts.minScore,
		MinCapRate:     opts.minCapRate,
		RealEstateOnly: opts.realEstateOnly,
	}
	matches := engine.Filter(criteria)
	summary := ranking.Summarize(matches)

	out := cmd.OutOrStdout()
	if root.output == "json" {
		return printRankJSON(out, matches, summary)
	}
	printRankTable(out, matches, summary)
	return nil
}

func printRankJSON(w io.Writer, matches []listing.Scored, summary ranking.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"listings": matches,
		"summary":  summary,
	})
}

func printRankTable(w io.Writer, matches []listing.Scored, summary ranking.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Neighborhood", "Score", "Cap Rate", "Price", "RE"})
	table.SetAutoWrapText(false)

	for i, m := range matches {
		included := ""
		if m.Signals.RealEstateIncluded {
			included = "yes"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			m.Title,
			m.Classification.Neighborhood,
			fmt.Sprintf("%.2f", m.OpportunityScore),
			fmt.Sprintf("%.2f%%", m.Financials.CapRate),
			m.Price,
			included,
		})
	}
	table.Render()

	meanCapRate := "N/A"
	if summary.MeanCapRate != nil {
		meanCapRate = fmt.Sprintf("%.2f%%", *summary.MeanCapRate)
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(w, bold("Summary"))
	fmt.Fprintf(w, "  Qualified targets:    %d\n", summary.Count)
	fmt.Fprintf(w, "  Max score:            %.2f\n", summary.MaxScore)
	fmt.Fprintf(w, "  Mean cap rate:        %s\n", meanCapRate)
	fmt.Fprintf(w, "  Real estate included: %d\n", summary.RealEstateCount)
}
