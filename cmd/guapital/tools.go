package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/ohitsming/guapital-sub001/internal/output"
	"github.com/ohitsming/guapital-sub001/pkg/money"
	"github.com/spf13/cobra"
)

func (a *app) amortizeCmd() *cobra.Command {
	var (
		balance  string
		rate     string
		term     int
		category string
		rows     int
	)
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Amortization schedule for a single loan",
		Example: `  guapital amortize --balance 300000 --rate 0.065 --term 30
  guapital amortize --balance 18000 --category auto_loan -f schedule-csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			principal, err := money.Parse(balance)
			if err != nil {
				return fmt.Errorf("%w: balance %q", config.ErrInvalidInput, balance)
			}
			if principal.IsNegative() {
				return fmt.Errorf("%w: balance cannot be negative", config.ErrInvalidInput)
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			entry := engine.Rates.Lookup(category, true)
			annualRate := entry.AnnualRate
			if rate != "" {
				if annualRate, err = money.Parse(rate); err != nil {
					return fmt.Errorf("%w: rate %q", config.ErrInvalidInput, rate)
				}
			}
			if !cmd.Flags().Changed("term") {
				term = entry.LoanTermYears
			}
			if term <= 0 {
				return fmt.Errorf("%w: %s is revolving and has no amortization schedule; pass --term", config.ErrInvalidInput, entry.Category)
			}

			schedule := calculation.BuildLiabilitySchedule("loan", entry.Category, principal, annualRate, term)
			out := cmd.OutOrStdout()
			switch name := output.NormalizeFormatName(a.format); {
			case name == "json":
				return a.print(out, schedule, nil)
			case strings.Contains(name, "csv"):
				data, err := output.FormatSchedules([]domain.LiabilitySchedule{schedule})
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				printSchedule(out, schedule, rows)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&balance, "balance", "", "Outstanding principal")
	cmd.Flags().StringVar(&rate, "rate", "", "Annual rate as a decimal, e.g. 0.065 (defaults to the category rate)")
	cmd.Flags().IntVar(&term, "term", 0, "Term in years (defaults to the category term)")
	cmd.Flags().StringVar(&category, "category", "mortgage", "Liability category used for default rate and term")
	cmd.Flags().IntVar(&rows, "rows", 12, "Number of schedule rows to print in text output (0 for all)")
	_ = cmd.MarkFlagRequired("balance")
	return cmd
}

func printSchedule(w io.Writer, s domain.LiabilitySchedule, limit int) {
	fmt.Fprintf(w, "%s at %s over %d years\n", s.Category, output.FormatRate(s.Rate), s.TermYears)
	fmt.Fprintf(w, "Monthly payment: %s\n", output.FormatCurrency(s.MonthlyPayment))
	fmt.Fprintf(w, "Total interest:  %s\n", output.FormatCurrency(s.TotalInterest))
	fmt.Fprintf(w, "Payoff:          %s months\n\n", output.FormatMonths(s.PayoffMonths))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tPayment\tInterest\tPrincipal\tBalance\t")
	for i, row := range s.Rows {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", row.Period,
			output.FormatCurrency(row.Payment), output.FormatCurrency(row.Interest),
			output.FormatCurrency(row.Principal), output.FormatCurrency(row.Balance))
	}
	_ = tw.Flush()
	if limit > 0 && len(s.Rows) > limit {
		fmt.Fprintf(w, "... %d more rows\n", len(s.Rows)-limit)
	}
}

func (a *app) ratesCmd() *cobra.Command {
	var (
		explain   string
		liability bool
	)
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the category rate table",
		Long:  "List the category rate table, or with --explain show which entry a category resolves to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			table := engine.Rates
			out := cmd.OutOrStdout()

			if explain != "" {
				entry, kind := table.Explain(explain, liability || table.IsLiabilityCategory(explain))
				return a.print(out, map[string]any{"input": explain, "match": kind, "entry": entry}, func(w io.Writer) {
					fmt.Fprintf(w, "%q -> %s (%s match): rate %s, term %d years\n",
						explain, entry.Category, kind, output.FormatRate(entry.AnnualRate), entry.LoanTermYears)
				})
			}

			entries := table.Entries()
			return a.print(out, entries, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "CATEGORY\tKIND\tRATE\tTERM")
				for _, e := range entries {
					kind := "asset"
					if e.IsLiability {
						kind = "liability"
					}
					term := "-"
					if e.LoanTermYears > 0 {
						term = fmt.Sprintf("%dy", e.LoanTermYears)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Category, kind, output.FormatRate(e.AnnualRate), term)
				}
				_ = tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&explain, "explain", "", "Resolve a category name and show how it matched")
	cmd.Flags().BoolVar(&liability, "liability", false, "Resolve --explain against liability categories")
	return cmd
}

func (a *app) exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example snapshot as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := config.NewInputParser().CreateExampleSnapshot()
			if len(args) == 0 {
				return output.WriteSnapshot(snap, cmd.OutOrStdout())
			}
			if err := output.SaveSnapshot(snap, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example snapshot written to %s\n", args[0])
			return nil
		},
	}
}
