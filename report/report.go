/*
Package report renders ledger results for people.

PURPOSE:
  The budget package returns plain values (Report, Spending). This package
  turns them into text: a category report and a horizontal bar chart.
  Nothing here reads or mutates a ledger.

CHART INPUT:
  A Chart is (title, labels, values) - the same shape a plotting library
  would take - so other renderers can consume it unchanged.
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/budget-ledger/budget"
)

// =============================================================================
// CATEGORY REPORT
// =============================================================================

// WriteReport prints a category summary followed by its transactions.
func WriteReport(w io.Writer, r budget.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Report for '%s' ---\n", r.Category)
	fmt.Fprintf(&b, "  Budget:          %s\n", Money(r.BudgetLimit))
	fmt.Fprintf(&b, "  Total Spent:     %s\n", Money(r.TotalSpent))
	fmt.Fprintf(&b, "  Remaining:       %s\n", Money(r.RemainingBudget))
	if r.IsOverBudget() {
		fmt.Fprintf(&b, "  Over budget by   %s\n", Money(r.RemainingBudget.Neg()))
	}
	b.WriteString("\n  Transactions:\n")
	if len(r.Transactions) == 0 {
		b.WriteString("    No transactions in this category.\n")
	}
	for _, tx := range r.Transactions {
		fmt.Fprintf(&b, "    - %s: %s (%s)\n", tx.OccurredOn, Money(tx.Amount), tx.Description)
	}
	b.WriteString(strings.Repeat("-", 25) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Money formats an amount with two decimals and a dollar sign, sign first.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// =============================================================================
// CHART
// =============================================================================

type Chart struct {
	Title  string
	Labels []string
	Values []decimal.Decimal
}

// SpendingChart builds the chart for a bucketed spending result.
func SpendingChart(s budget.Spending) Chart {
	return Chart{
		Title:  SpendingTitle(s),
		Labels: s.Labels(),
		Values: s.Totals(),
	}
}

// SpendingTitle is "Weekly Spending for 'Food'" or
// "Monthly Spending for 'Food' (2025)".
func SpendingTitle(s budget.Spending) string {
	if s.Type == budget.Monthly {
		return fmt.Sprintf("Monthly Spending for '%s' (%d)", s.Category, s.AsOf.Year())
	}
	return fmt.Sprintf("Weekly Spending for '%s'", s.Category)
}

// RenderChart draws one bar per label, scaled so the largest value spans
// width characters. Zero and negative values get an empty bar.
func RenderChart(w io.Writer, c Chart, width int) error {
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("chart %q: %d labels for %d values", c.Title, len(c.Labels), len(c.Values))
	}
	if width < 1 {
		width = 40
	}

	labelWidth := 0
	for _, l := range c.Labels {
		labelWidth = max(labelWidth, len(l))
	}
	peak := decimal.Zero
	for _, v := range c.Values {
		peak = decimal.Max(peak, v)
	}

	var b strings.Builder
	b.WriteString(c.Title + "\n")
	for i, label := range c.Labels {
		fmt.Fprintf(&b, "%-*s | %s %s\n", labelWidth, label, bar(c.Values[i], peak, width), Money(c.Values[i]))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func bar(v, peak decimal.Decimal, width int) string {
	if !v.IsPositive() || !peak.IsPositive() {
		return ""
	}
	n := v.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart()
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", int(n))
}
