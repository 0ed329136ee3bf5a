package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func buildLedger(t *testing.T) *budget.Ledger {
	t.Helper()
	l := budget.NewLedger()
	require.NoError(t, l.AddCategory("Zoo", decimal.RequireFromString("40")))
	require.NoError(t, l.AddCategory("Apples", decimal.RequireFromString("15.75")))
	for _, tx := range []struct {
		category string
		day      int
		amount   string
		desc     string
	}{
		{"Apples", 20, "3.1", "granny smith"},
		{"Zoo", 2, "25", "tickets"},
		{"Apples", 1, "-1.05", "return"},
	} {
		_, err := l.AddTransactionOn(tx.category, budget.NewDate(2025, time.June, tx.day),
			decimal.RequireFromString(tx.amount), tx.desc)
		require.NoError(t, err)
	}
	return l
}

func TestLoad_BeforeAnySave_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, budget.ErrNotFound)
	savedAt, err := store.SavedAt(context.Background())
	require.NoError(t, err)
	assert.True(t, savedAt.IsZero())
}

func TestSaveLoad_RoundTripKeepsOrder(t *testing.T) {
	// GIVEN: categories created Zoo then Apples, Apples transactions out of date order
	// WHEN: saving and loading through SQLite
	// THEN: both orders survive, amounts are exact

	ctx := context.Background()
	store := newTestStore(t)
	original := buildLedger(t)

	require.NoError(t, original.Save(ctx, store))
	loaded := budget.NewLedger()
	require.NoError(t, loaded.Load(ctx, store))

	assert.Equal(t, original.Snapshot(), loaded.Snapshot())
	assert.Equal(t, []string{"Zoo", "Apples"}, loaded.Categories())

	rep, err := loaded.GenerateReport("Apples")
	require.NoError(t, err)
	assert.Equal(t, "2.05", rep.TotalSpent.String())
	assert.Equal(t, "granny smith", rep.Transactions[0].Description)

	savedAt, err := store.SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, savedAt.IsZero())
}

func TestSave_ReplacesPreviousLedger(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, buildLedger(t).Save(ctx, store))

	empty := budget.NewLedger()
	require.NoError(t, empty.Save(ctx, store))

	loaded := buildLedger(t)
	require.NoError(t, loaded.Load(ctx, store))
	assert.Equal(t, 0, loaded.Len(), "an empty save is still a save")
}

func TestNew_FileDatabasePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "budget.db")

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, buildLedger(t).Save(ctx, first))
	require.NoError(t, first.Close())

	second, err := sqlite.New(path)
	require.NoError(t, err)
	defer second.Close()

	loaded := budget.NewLedger()
	require.NoError(t, loaded.Load(ctx, second))
	assert.Equal(t, []string{"Zoo", "Apples"}, loaded.Categories())
}
