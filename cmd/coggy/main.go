// Command coggy is a small demonstration harness for the pipeline: it runs
// one or more atomspace/bank pairs through a turn of text and prints the
// resulting report, following the teacher's cmd/echo.go cobra-subcommand
// layout (AddEchoCommands's assess/status/think group) adapted to a single
// root command since coggy has no server to talk to.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
	"github.com/uprootiny/coggy-sub000/core/pipeline"
)

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	var sb strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func printReport(w io.Writer, r *pipeline.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"field", "value"})

	concepts := strings.Join(r.Normalized.Concepts, ", ")
	table.Append([]string{"report id", r.ID})
	table.Append([]string{"concepts", concepts})
	table.Append([]string{"concept grounding rate", fmt.Sprintf("%.2f", r.ConceptGrounding.Rate)})
	table.Append([]string{"relation grounding rate", fmt.Sprintf("%.2f", r.RelationGrounding.Rate)})
	table.Append([]string{"diagnosis", r.Diagnosis.Kind.String()})
	if r.Commit != nil {
		table.Append([]string{"novel concepts added", strings.Join(r.Commit.NovelConceptsAdded, ", ")})
		table.Append([]string{"links added", fmt.Sprintf("%d", len(r.Commit.LinksAdded))})
	}
	if r.Rescue != nil {
		table.Append([]string{"rescue", r.Rescue.Summary})
	}
	table.Append([]string{"turns so far", fmt.Sprintf("%d", r.Metrics.Turns)})
	table.Append([]string{"grounding rate mean", fmt.Sprintf("%.2f", r.Metrics.GroundingRateMean)})
	table.Render()
}

func newTurnCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "turn [text...]",
		Short: "run one pipeline turn against a fresh atomspace and bank",
		Long: `Runs a single turn of the semantic pipeline: extract, normalize, ground,
commit, diagnose, and rescue. Text is taken from the arguments, or from
stdin when no arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			space := atomspace.New(log)
			bank := attention.New(attention.DefaultAFSize, log)
			p := pipeline.New(log)

			report, err := p.Process(space, bank, text)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func newParallelCmd(log *slog.Logger) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "parallel [text...]",
		Short: "run the same text through N independent atomspace/bank pairs concurrently",
		Long: `Demonstrates concurrent pipeline processing: N independent atomspace and
attention-bank pairs each run their own turn on the same input text, fanned
out with an errgroup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			reports := make([]*pipeline.Report, n)
			var g errgroup.Group
			for i := 0; i < n; i++ {
				i := i
				g.Go(func() error {
					space := atomspace.New(log)
					bank := attention.New(attention.DefaultAFSize, log)
					p := pipeline.New(log)
					report, err := p.Process(space, bank, text)
					if err != nil {
						return fmt.Errorf("pair %d: %w", i, err)
					}
					reports[i] = report
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for i, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "--- pair %d ---\n", i)
				printReport(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 4, "number of independent atomspace/bank pairs to run")
	return cmd
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:   "coggy",
		Short: "an inspectable reasoning harness",
		Long:  "coggy runs text through an atomspace, attention bank, and semantic pipeline, surfacing the diagnosis and rescue for every turn.",
	}
	root.AddCommand(newTurnCmd(log), newParallelCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
