package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/config"
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/immocalc/realty-calculator/internal/output"
	"github.com/immocalc/realty-calculator/internal/snapshot"
)

func newLoanCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Simulate a loan: installment, amortization table, total cost and affordability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput()
			if err != nil {
				return err
			}
			if input.Loan == nil {
				return fmt.Errorf("input file has no loan section")
			}
			report, err := a.engine.RunLoan(input.Loan.Terms, input.Loan.Borrower)
			if err != nil {
				return err
			}
			if err := a.emit(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if save {
				return a.save(cmd.Context(), cmd.OutOrStdout(), report, input.Loan.Borrower, false)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store a snapshot of the simulation")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var save, suggest bool
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare 2 to 5 loan offers side by side",
		Long: `Compare 2 to 5 loan offers. The first offer is the baseline savings are measured against.
With --suggest, only the first offer is read and compared with generated variations
(shorter and longer terms, lower rate).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput()
			if err != nil {
				return err
			}
			section := input.Comparison
			if section == nil || len(section.Offers) == 0 {
				return fmt.Errorf("input file has no comparison offers")
			}
			suggest = suggest || section.Suggest

			run := func() (*domain.Report, error) {
				if suggest {
					return a.engine.RunAlternatives(cmd.Context(), section.Offers[0])
				}
				return a.engine.RunComparison(cmd.Context(), section.Offers)
			}
			report, err := run()
			if err != nil {
				return err
			}
			if err := a.emit(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if save {
				return a.save(cmd.Context(), cmd.OutOrStdout(), report, nil, suggest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store a snapshot of the comparison")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "compare the first offer with generated alternatives")
	return cmd
}

func newInvestCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Evaluate a rental investment: cash flow, yields, payback and ten-year projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.loadInput()
			if err != nil {
				return err
			}
			if input.Investment == nil {
				return fmt.Errorf("input file has no investment section")
			}
			report, err := a.engine.RunInvestment(*input.Investment)
			if err != nil {
				return err
			}
			if err := a.emit(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if save {
				return a.save(cmd.Context(), cmd.OutOrStdout(), report, nil, false)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "store a snapshot of the evaluation")
	return cmd
}

func newNotaryCmd(a *app) *cobra.Command {
	var current string
	cmd := &cobra.Command{
		Use:   "notary <price>",
		Short: "Estimate notary fees for a purchase price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[0], err)
			}
			estimate := calculation.EstimateNotaryFees(price)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Estimated notary fees: %s (%s of %s)\n",
				output.FormatCurrency(estimate), output.FormatPercentage(calculation.NotaryFeeRate), output.FormatCurrency(price))

			if current == "" {
				return nil
			}
			stored, err := decimal.NewFromString(current)
			if err != nil {
				return fmt.Errorf("invalid --current %q: %w", current, err)
			}
			if calculation.ShouldReplaceNotaryEstimate(stored, price) {
				fmt.Fprintf(w, "Current value %s is more than %s of the price away: replace it with the estimate\n",
					output.FormatCurrency(stored), output.FormatPercentage(calculation.NotaryOverrideThreshold))
			} else {
				fmt.Fprintf(w, "Current value %s is close to the estimate: keep it\n", output.FormatCurrency(stored))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "notary fees currently entered, to check against the estimate")
	return cmd
}

func newRatesCmd(a *app) *cobra.Command {
	var file string
	var since int
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the average mortgage rate history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history := a.engine.RateHistory
			if file != "" {
				h, err := calculation.LoadRateHistory(file)
				if err != nil {
					return err
				}
				history = h
			}
			if history == nil {
				return fmt.Errorf("no rate history available")
			}
			points := history.Points
			if since > 0 {
				points = history.Since(since)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", history.Name, history.Source)
			for _, p := range points {
				fmt.Fprintf(w, "  %d  %s\n", p.Year, output.FormatPercentage(p.Rate))
			}
			st := history.Statistics
			fmt.Fprintf(w, "Mean %s, min %s, max %s over %d years\n",
				output.FormatPercentage(st.Mean), output.FormatPercentage(st.Min), output.FormatPercentage(st.Max), st.Count)
			if len(st.MissingYears) > 0 {
				fmt.Fprintf(w, "Missing years: %v\n", st.MissingYears)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV file with year,rate rows instead of the configured series")
	cmd.Flags().IntVar(&since, "since", 0, "only show years from this one onwards")
	return cmd
}

func newBreakEvenCmd(a *app) *cobra.Command {
	var budget string
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the highest rate at which the loan section fits a monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := decimal.NewFromString(budget)
			if err != nil {
				return fmt.Errorf("invalid --budget %q: %w", budget, err)
			}
			input, err := a.loadInput()
			if err != nil {
				return err
			}
			if input.Loan == nil {
				return fmt.Errorf("input file has no loan section")
			}
			rate, err := calculation.BreakEvenRate(input.Loan.Terms, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Highest affordable rate for %s over %d years with %s a month: %s\n",
				output.FormatCurrency(input.Loan.Terms.Principal), input.Loan.Terms.TermYears,
				output.FormatCurrency(limit), output.FormatPercentage(rate))
			return nil
		},
	}
	cmd.Flags().StringVar(&budget, "budget", "", "maximum monthly payment, insurance included")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Recompute and print a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			snap, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, snapshot.ErrNotFound) {
					return fmt.Errorf("no snapshot with id %s", args[0])
				}
				return err
			}
			report, err := snapshot.Restore(cmd.Context(), a.engine, snap)
			if err != nil {
				return err
			}
			for _, d := range snapshot.Drift(snap, report) {
				a.logger.Warnf("snapshot %s changed on recompute: %s", snap.ID, d)
			}
			return a.emit(cmd.OutOrStdout(), report)
		},
	}
}

func newSnapshotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			list, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No snapshots saved")
				return nil
			}
			for _, s := range list {
				fmt.Fprintf(w, "%s  %-10s  %s\n", s.ID, s.Kind, s.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example input file covering every section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_input.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveInput(path, parser.CreateExampleInput()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "realtycalc %s (commit %s)\n", version, commit)
		},
	}
}
