package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/ohitsming/guapital-sub001/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) reportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "report <snapshot.yaml>",
		Short: "Full trajectory report in the selected format",
		Long: fmt.Sprintf("Evaluate a snapshot and render the full report.\nFormats: %v\nAliases: %v",
			output.AvailableFormatterNames(), output.AvailableFormatAliases()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				return output.GenerateReport(report, a.format, cmd.OutOrStdout())
			}
			paths, err := output.SaveReport(report, a.format, outDir)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "  wrote %s\n", p)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write timestamped report files to this directory instead of stdout (format \"all\" writes several)")
	return cmd
}

func (a *app) fireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <snapshot.yaml>",
		Short: "Time to financial independence at the expected return",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), report.Fire, func(w io.Writer) {
				printFire(w, "FIRE", report.Fire)
			})
		},
	}
}

func (a *app) projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project <snapshot.yaml>",
		Short: "Net worth projection at 1, 5, 10, 20 and 30 years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			p := report.Projection
			return a.print(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "Net worth today: %s (assets %s, liabilities %s)\n",
					output.FormatCurrency(p.CurrentNetWorth), output.FormatCurrency(p.CurrentAssets), output.FormatCurrency(p.CurrentLiabilities))
				for _, pt := range p.Points {
					fmt.Fprintf(w, "  %2d yr  %16s\n", pt.HorizonYears, output.FormatCurrency(pt.NetWorth))
				}
				fmt.Fprintf(w, "Years to $1M: %s\n", output.FormatYears(p.YearsToMillion))
				fmt.Fprintf(w, "Years to double: %s\n", output.FormatYears(p.YearsToDouble))
			})
		},
	}
}

func (a *app) scenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios <snapshot.yaml>",
		Short: "FIRE timeline under conservative, base and aggressive returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), report.Scenarios, func(w io.Writer) {
				for _, sc := range report.Scenarios.Entries() {
					printFire(w, sc.Label, sc.Result)
				}
			})
		},
	}
}

func (a *app) milestonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "milestones <snapshot.yaml>",
		Short: "Coast, Lean, regular and Fat FIRE targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			nw := report.Projection.CurrentNetWorth
			return a.print(cmd.OutOrStdout(), report.Milestones, func(w io.Writer) {
				for _, m := range report.Milestones {
					mark := " "
					if m.Achieved {
						mark = "x"
					}
					fmt.Fprintf(w, "[%s] %-10s %16s  remaining %s\n", mark, m.Label, output.FormatCurrency(m.Amount), output.FormatCurrency(m.Remaining(nw)))
				}
			})
		},
	}
}

// print writes v as JSON when the json format is selected, otherwise as text
func (a *app) print(w io.Writer, v any, text func(io.Writer)) error {
	if output.NormalizeFormatName(a.format) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printFire(w io.Writer, label string, f domain.FireCalculation) {
	fmt.Fprintf(w, "%s (%s return)\n", label, output.FormatRate(f.ExpectedReturn))
	fmt.Fprintf(w, "  FIRE number:    %s\n", output.FormatCurrency(f.FireNumber))
	fmt.Fprintf(w, "  Progress:       %s\n", output.FormatPercentage(f.ProgressPercentage))
	fmt.Fprintf(w, "  Savings rate:   %s\n", output.FormatPercentage(f.SavingsRate))
	fmt.Fprintf(w, "  Years to FIRE:  %s\n", output.FormatYears(f.YearsToFire))
	fmt.Fprintf(w, "  Projected date: %s\n", output.FormatDate(f.ProjectedDate))
}
