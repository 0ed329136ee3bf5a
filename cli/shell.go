package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/report"
	"github.com/warp/budget-ledger/store/jsonfile"
	"golang.org/x/term"
)

const menu = `
===== Personal Budget Tracker =====
1. Add Category
2. Add Transaction
3. Generate Category Report
4. Generate Weekly Spending Chart
5. Generate Monthly Spending Chart
6. Save Data to File
7. Load Data from File
8. Exit`

func newShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := app.loadLedger(cmd.Context())
			if err != nil {
				return err
			}
			sh := &Shell{
				Ledger:      ledger,
				Store:       app.store,
				In:          bufio.NewScanner(cmd.InOrStdin()),
				Out:         cmd.OutOrStdout(),
				Interactive: isTerminal(cmd.InOrStdin()),
			}
			return sh.Run(cmd.Context())
		},
	}
}

// Shell is the menu-driven front end. Every ledger error is reported to Out
// and the loop continues; only I/O failures on In end it early.
type Shell struct {
	Ledger *budget.Ledger
	// Store is used by save/load when the user gives no filename.
	Store budget.Store

	In  *bufio.Scanner
	Out io.Writer

	// Interactive prints the menu and prompts.
	Interactive bool
}

// Run loops until option 8 or end of input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if s.Interactive {
			fmt.Fprintln(s.Out, menu)
		}
		choice, ok := s.ask("Choose an option: ")
		if !ok {
			return s.In.Err()
		}

		switch choice {
		case "1":
			s.addCategory()
		case "2":
			s.addTransaction()
		case "3":
			s.report()
		case "4":
			s.spending(budget.Weekly)
		case "5":
			s.spending(budget.Monthly)
		case "6":
			s.save(ctx)
		case "7":
			s.load(ctx)
		case "8":
			fmt.Fprintln(s.Out, "Exiting Budget Tracker. Goodbye!")
			return nil
		default:
			fmt.Fprintln(s.Out, "Invalid choice. Please enter a number from 1 to 8.")
		}
	}
}

func (s *Shell) addCategory() {
	name, ok := s.ask("Enter category name: ")
	if !ok {
		return
	}
	raw, ok := s.ask("Enter budget amount: ")
	if !ok {
		return
	}
	limit, err := parseAmount("budget", raw)
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.Ledger.AddCategory(name, limit); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.Out, "Success: Added category '%s' with a budget of %s.\n", name, report.Money(limit))
}

func (s *Shell) addTransaction() {
	name, ok := s.ask("Enter category name for transaction: ")
	if !ok {
		return
	}
	raw, ok := s.ask("Enter transaction amount: ")
	if !ok {
		return
	}
	amount, err := parseAmount("amount", raw)
	if err != nil {
		s.fail(err)
		return
	}
	desc, ok := s.ask("Enter description (optional): ")
	if !ok {
		return
	}
	tx, err := s.Ledger.AddTransaction(name, amount, desc)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.Out, "Success: Added transaction of %s to '%s'.\n", report.Money(tx.Amount), tx.Category)
}

func (s *Shell) report() {
	name, ok := s.ask("Enter category name for report: ")
	if !ok {
		return
	}
	rep, err := s.Ledger.GenerateReport(name)
	if err != nil {
		s.fail(err)
		return
	}
	if err := report.WriteReport(s.Out, rep); err != nil {
		s.fail(err)
	}
}

func (s *Shell) spending(pt budget.PeriodType) {
	name, ok := s.ask(fmt.Sprintf("Enter category name for %s chart: ", pt))
	if !ok {
		return
	}
	spending, err := s.Ledger.CalculatePeriodSpending(name, pt)
	if err != nil {
		s.fail(err)
		return
	}
	if err := writeSpending(s.Out, spending); err != nil {
		s.fail(err)
	}
}

func (s *Shell) save(ctx context.Context) {
	st, label, ok := s.askStore("save")
	if !ok {
		return
	}
	if err := s.Ledger.Save(ctx, st); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.Out, "Success: Budget data saved to '%s'.\n", label)
}

func (s *Shell) load(ctx context.Context) {
	st, label, ok := s.askStore("load")
	if !ok {
		return
	}
	if err := s.Ledger.Load(ctx, st); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			fmt.Fprintf(s.Out, "Error: '%s' not found. Keeping the current budget.\n", label)
			return
		}
		s.fail(err)
		return
	}
	fmt.Fprintf(s.Out, "Success: Budget data loaded from '%s'.\n", label)
}

// askStore reads a filename; blank selects the configured store.
func (s *Shell) askStore(verb string) (budget.Store, string, bool) {
	filename, ok := s.ask(fmt.Sprintf("Enter filename to %s (blank for default): ", verb))
	if !ok {
		return nil, "", false
	}
	if filename == "" {
		if s.Store == nil {
			s.fail(errors.New("no default store configured"))
			return nil, "", false
		}
		return s.Store, "default store", true
	}
	return jsonfile.New(filename), filename, true
}

func (s *Shell) ask(prompt string) (string, bool) {
	if s.Interactive {
		fmt.Fprint(s.Out, prompt)
	}
	if !s.In.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.In.Text()), true
}

func (s *Shell) fail(err error) {
	fmt.Fprintf(s.Out, "Error: %v\n", err)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeSpending(w io.Writer, s budget.Spending) error {
	window := s.Window()
	fmt.Fprintf(w, "%s to %s\n", window.Start, window.End)
	if err := report.RenderChart(w, report.SpendingChart(s), chartWidth); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total Spent: %s\n", report.Money(s.Total()))
	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
