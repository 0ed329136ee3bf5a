package jsonfile_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/store/jsonfile"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleLedger(t *testing.T) *budget.Ledger {
	t.Helper()
	l := budget.NewLedger()
	require.NoError(t, l.AddCategory("Rent", dec("1200")))
	require.NoError(t, l.AddCategory("Food", dec("300.50")))
	require.NoError(t, l.AddCategory("Gifts", decimal.Zero))
	_, err := l.AddTransactionOn("Food", budget.NewDate(2025, time.March, 12), dec("12.34"), "lunch")
	require.NoError(t, err)
	_, err = l.AddTransactionOn("Food", budget.NewDate(2025, time.March, 1), dec("-2.50"), "refund")
	require.NoError(t, err)
	_, err = l.AddTransactionOn("Rent", budget.NewDate(2025, time.March, 1), dec("1200"), "")
	require.NoError(t, err)
	return l
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestSaveLoad_RoundTripPreservesEverything(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "budget.json")
	s := jsonfile.New(path)
	original := sampleLedger(t)

	require.NoError(t, original.Save(ctx, s))
	loaded := budget.NewLedger()
	require.NoError(t, loaded.Load(ctx, s))

	assert.Equal(t, []string{"Rent", "Food", "Gifts"}, loaded.Categories())
	for _, name := range original.Categories() {
		want, err := original.GenerateReport(name)
		require.NoError(t, err)
		got, err := loaded.GenerateReport(name)
		require.NoError(t, err)

		assert.True(t, want.BudgetLimit.Equal(got.BudgetLimit), name)
		assert.True(t, want.TotalSpent.Equal(got.TotalSpent), name)
		require.Len(t, got.Transactions, len(want.Transactions), name)
		for i := range want.Transactions {
			assert.Equal(t, want.Transactions[i].OccurredOn, got.Transactions[i].OccurredOn)
			assert.True(t, want.Transactions[i].Amount.Equal(got.Transactions[i].Amount))
			assert.Equal(t, want.Transactions[i].Description, got.Transactions[i].Description)
		}
	}
}

func TestSave_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	l := budget.NewLedger()
	require.NoError(t, l.AddCategory("Food", dec("300")))
	_, err := l.AddTransactionOn("Food", budget.NewDate(2025, time.March, 12), dec("12.5"), "lunch")
	require.NoError(t, err)

	require.NoError(t, l.Save(context.Background(), jsonfile.New(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
    "Food": {
        "budget": 300,
        "transactions": [
            {
                "date": "2025-03-12",
                "amount": 12.5,
                "description": "lunch"
            }
        ]
    }
}
`
	assert.Equal(t, want, string(data))
}

func TestSave_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsonfile.Encode(&buf, budget.Snapshot{}))
	assert.Equal(t, "{}\n", buf.String())

	snap, err := jsonfile.Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, snap.Categories)
}

func TestSave_OverwritesPreviousContents(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "budget.json")
	s := jsonfile.New(path)
	require.NoError(t, sampleLedger(t).Save(ctx, s))

	small := budget.NewLedger()
	require.NoError(t, small.AddCategory("Only", dec("1")))
	require.NoError(t, small.Save(ctx, s))

	loaded := budget.NewLedger()
	require.NoError(t, loaded.Load(ctx, s))
	assert.Equal(t, []string{"Only"}, loaded.Categories())
}

func TestSave_UnwritablePath(t *testing.T) {
	s := jsonfile.New(filepath.Join(t.TempDir(), "missing-dir", "budget.json"))

	err := budget.NewLedger().Save(context.Background(), s)

	assert.ErrorIs(t, err, budget.ErrPersistence)
}

// =============================================================================
// LOAD FAILURES
// =============================================================================

func TestLoad_MissingFile_LedgerUnchanged(t *testing.T) {
	l := sampleLedger(t)
	before := l.Snapshot()

	err := l.Load(context.Background(), jsonfile.New(filepath.Join(t.TempDir(), "nope.json")))

	assert.ErrorIs(t, err, budget.ErrNotFound)
	assert.True(t, budget.IsNotFound(err))
	assert.Equal(t, before, l.Snapshot())
}

func TestLoad_CorruptDocuments_LedgerUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"empty file", ""},
		{"top-level array", `[]`},
		{"category not an object", `{"Food": 12}`},
		{"truncated", `{"Food": {"budget": 10, "transactions": [`},
		{"missing amount", `{"Food": {"transactions": [{"date": "2025-03-01"}]}}`},
		{"missing date", `{"Food": {"transactions": [{"amount": 3}]}}`},
		{"bad date", `{"Food": {"transactions": [{"date": "03/01/2025", "amount": 3}]}}`},
		{"negative budget", `{"Food": {"budget": -5}}`},
		{"duplicate category", `{"Food": {}, "Food": {}}`},
		{"trailing data", `{"Food": {}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLedger(t)
			before := l.Snapshot()

			err := l.Load(context.Background(), jsonfile.New(writeFile(t, tt.content)))

			require.Error(t, err)
			assert.ErrorIs(t, err, budget.ErrCorruptData)
			assert.Equal(t, before, l.Snapshot())
		})
	}
}

// =============================================================================
// LENIENT DECODING
// =============================================================================

func TestLoad_DefaultsAndUnknownFields(t *testing.T) {
	content := `{
		"Travel": {"notes": "ignored", "transactions": [
			{"date": "2025-01-05", "amount": 99.99, "currency": "EUR"}
		]},
		"Misc": {"budget": 20}
	}`
	l := budget.NewLedger()

	require.NoError(t, l.Load(context.Background(), jsonfile.New(writeFile(t, content))))

	assert.Equal(t, []string{"Travel", "Misc"}, l.Categories())
	travel, err := l.GenerateReport("Travel")
	require.NoError(t, err)
	assert.True(t, travel.BudgetLimit.IsZero(), "missing budget defaults to 0")
	require.Len(t, travel.Transactions, 1)
	assert.Equal(t, "", travel.Transactions[0].Description)
	assert.True(t, dec("99.99").Equal(travel.Transactions[0].Amount))

	misc, err := l.GenerateReport("Misc")
	require.NoError(t, err)
	assert.Empty(t, misc.Transactions)
}

func TestDecode_KeepsExactDecimals(t *testing.T) {
	snap, err := jsonfile.Decode(strings.NewReader(
		`{"Food": {"budget": 0.1, "transactions": [{"date": "2025-01-01", "amount": 0.2}]}}`))

	require.NoError(t, err)
	require.Len(t, snap.Categories, 1)
	sum := snap.Categories[0].Budget.Add(snap.Categories[0].Transactions[0].Amount)
	assert.Equal(t, "0.3", sum.String())
}
