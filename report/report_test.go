package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/report"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", report.Money(decimal.Zero))
	assert.Equal(t, "$12.50", report.Money(dec("12.5")))
	assert.Equal(t, "$0.01", report.Money(dec("0.005")))
	assert.Equal(t, "-$3.00", report.Money(dec("-3")))
}

func TestWriteReport(t *testing.T) {
	l := budget.NewLedger()
	require.NoError(t, l.AddCategory("Food", dec("20")))
	_, err := l.AddTransactionOn("Food", budget.NewDate(2025, time.March, 10), dec("12.5"), "lunch")
	require.NoError(t, err)
	_, err = l.AddTransactionOn("Food", budget.NewDate(2025, time.March, 11), dec("10"), "dinner")
	require.NoError(t, err)
	rep, err := l.GenerateReport("Food")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteReport(&buf, rep))

	out := buf.String()
	assert.Contains(t, out, "--- Report for 'Food' ---")
	assert.Contains(t, out, "Budget:          $20.00")
	assert.Contains(t, out, "Total Spent:     $22.50")
	assert.Contains(t, out, "Remaining:       -$2.50")
	assert.Contains(t, out, "Over budget by   $2.50")
	assert.Contains(t, out, "    - 2025-03-10: $12.50 (lunch)\n    - 2025-03-11: $10.00 (dinner)\n")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("-", 25)+"\n"))
}

func TestWriteReport_NoTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteReport(&buf, budget.Report{Category: "Empty"}))

	assert.Contains(t, buf.String(), "No transactions in this category.")
	assert.NotContains(t, buf.String(), "Over budget")
}

func TestRenderChart_ScalesToPeak(t *testing.T) {
	chart := report.Chart{
		Title:  "Weekly Spending for 'Food'",
		Labels: []string{"Mon", "Tue", "Wed", "Thu"},
		Values: []decimal.Decimal{dec("10"), decimal.Zero, dec("20"), dec("-5")},
	}

	var buf bytes.Buffer
	require.NoError(t, report.RenderChart(&buf, chart, 10))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Weekly Spending for 'Food'", lines[0])
	assert.Equal(t, "Mon | ##### $10.00", lines[1])
	assert.Equal(t, "Tue |  $0.00", lines[2])
	assert.Equal(t, "Wed | ########## $20.00", lines[3])
	assert.Equal(t, "Thu |  -$5.00", lines[4])
}

func TestRenderChart_TinyValueStillVisible(t *testing.T) {
	chart := report.Chart{
		Labels: []string{"a", "b"},
		Values: []decimal.Decimal{dec("1000"), dec("0.01")},
	}

	var buf bytes.Buffer
	require.NoError(t, report.RenderChart(&buf, chart, 40))

	assert.Contains(t, buf.String(), "b | # $0.01")
}

func TestRenderChart_MismatchedInput(t *testing.T) {
	err := report.RenderChart(&bytes.Buffer{}, report.Chart{Labels: []string{"a"}}, 10)
	assert.Error(t, err)
}

func TestSpendingChart(t *testing.T) {
	l := budget.NewLedger()
	require.NoError(t, l.AddCategory("Food", decimal.Zero))
	_, err := l.AddTransactionOn("Food", budget.NewDate(2025, time.February, 3), dec("8"), "")
	require.NoError(t, err)

	monthly, err := l.PeriodSpending("Food", budget.Monthly, budget.NewDate(2025, time.February, 14))
	require.NoError(t, err)
	chart := report.SpendingChart(monthly)

	assert.Equal(t, "Monthly Spending for 'Food' (2025)", chart.Title)
	assert.Equal(t, []string{"January", "February"}, chart.Labels)
	require.Len(t, chart.Values, 2)
	assert.True(t, chart.Values[1].Equal(dec("8")))

	weekly, err := l.PeriodSpending("Food", budget.Weekly, budget.NewDate(2025, time.February, 5))
	require.NoError(t, err)
	assert.Equal(t, "Weekly Spending for 'Food'", report.SpendingTitle(weekly))
}
