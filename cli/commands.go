package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/report"
)

const chartWidth = 40

// =============================================================================
// CATEGORY COMMANDS
// =============================================================================

func newCategoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending categories",
	}

	var budgetFlag string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category with an optional budget limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseAmount("budget", budgetFlag)
			if err != nil {
				return err
			}
			err = app.mutate(cmd.Context(), func(l *budget.Ledger) error {
				return l.AddCategory(args[0], limit)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category '%s' with a budget of %s.\n", args[0], report.Money(limit))
			return nil
		},
	}
	add.Flags().StringVar(&budgetFlag, "budget", "0", "budget limit")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := app.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			if ledger.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tBUDGET\tSPENT\tREMAINING\tTRANSACTIONS")
			for _, name := range ledger.Categories() {
				rep, err := ledger.GenerateReport(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", rep.Category,
					report.Money(rep.BudgetLimit), report.Money(rep.TotalSpent),
					report.Money(rep.RemainingBudget), len(rep.Transactions))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

// =============================================================================
// TRANSACTION COMMANDS
// =============================================================================

func newTransactionCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record transactions",
	}

	var (
		description string
		dateFlag    string
	)
	add := &cobra.Command{
		Use:   "add CATEGORY AMOUNT",
		Short: "Record a transaction (positive = expense, negative = refund)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}

			var tx budget.Transaction
			err = app.mutate(cmd.Context(), func(l *budget.Ledger) error {
				on := l.Today()
				if dateFlag != "" {
					if on, err = budget.ParseDate(dateFlag); err != nil {
						return err
					}
				}
				tx, err = l.AddTransactionOn(args[0], on, amount, description)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction of %s to '%s' on %s.\n",
				report.Money(tx.Amount), tx.Category, tx.OccurredOn)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "desc", "d", "", "description")
	add.Flags().StringVar(&dateFlag, "date", "", "transaction date YYYY-MM-DD (default today)")

	cmd.AddCommand(add)
	return cmd
}

// =============================================================================
// REPORT COMMANDS
// =============================================================================

func newReportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report CATEGORY",
		Short: "Show budget, spending and transactions of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := app.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := ledger.GenerateReport(args[0])
			if err != nil {
				return err
			}
			return report.WriteReport(cmd.OutOrStdout(), rep)
		},
	}
}

func newSpendingCommand(app *App, pt budget.PeriodType) *cobra.Command {
	var asOfFlag string
	cmd := &cobra.Command{
		Use:   string(pt) + " CATEGORY",
		Short: fmt.Sprintf("Chart %s spending of a category", pt),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := app.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			asOf := ledger.Today()
			if asOfFlag != "" {
				if asOf, err = budget.ParseDate(asOfFlag); err != nil {
					return err
				}
			}
			spending, err := ledger.PeriodSpending(args[0], pt, asOf)
			if err != nil {
				return err
			}
			return writeSpending(cmd.OutOrStdout(), spending)
		},
	}
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date YYYY-MM-DD (default today)")
	return cmd
}

// =============================================================================
// HELPERS
// =============================================================================

func parseAmount(what, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: please enter a valid number", what, s)
	}
	return d, nil
}
