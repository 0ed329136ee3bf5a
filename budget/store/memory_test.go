package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/budget/store"
)

func TestMemory_LoadBeforeSave(t *testing.T) {
	m := store.NewMemory()

	_, err := m.Load(context.Background())

	assert.ErrorIs(t, err, budget.ErrNotFound)
	assert.Equal(t, 0, m.Saves())
}

func TestMemory_SaveIsolatedFromLaterMutation(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	snap := budget.Snapshot{Categories: []budget.CategorySnapshot{{
		Name:   "Food",
		Budget: decimal.NewFromInt(100),
		Transactions: []budget.TransactionSnapshot{
			{Date: budget.NewDate(2025, time.March, 10), Amount: decimal.NewFromInt(5), Description: "a"},
		},
	}}}

	require.NoError(t, m.Save(ctx, snap))
	snap.Categories[0].Transactions[0].Description = "mutated"
	snap.Categories[0].Name = "Other"

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Categories[0].Name)
	assert.Equal(t, "a", got.Categories[0].Transactions[0].Description)
	assert.Equal(t, 1, m.Saves())
}
