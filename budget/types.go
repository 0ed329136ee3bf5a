/*
Package budget provides the personal budget ledger.

PURPOSE:
  Records categorized spending against per-category budget limits and
  aggregates it by day and by month. Everything here is a plain in-memory
  value; persistence goes through the Store interface and presentation is
  left to callers.

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: one immutable spending event (positive = expense, negative = refund)
  - Category: a budget limit plus the transactions recorded against it

DESIGN PRINCIPLES:
  1. Precision: amounts are decimal.Decimal, never float64
  2. Insertion order: transactions keep the order they were added in,
     which is not necessarily date order
  3. No side effects: nothing in this package prints or logs

SEE ALSO:
  - ledger.go: the Ledger aggregate
  - spending.go: weekly/monthly bucketing
  - snapshot.go: the persistence unit
*/
package budget

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION - One spending event
// =============================================================================

// Transaction is immutable once created.
type Transaction struct {
	OccurredOn  Date
	Amount      decimal.Decimal
	Category    string // name of the owning category
	Description string
}

// =============================================================================
// CATEGORY - Budget limit plus ordered transactions
// =============================================================================

type Category struct {
	Name         string
	BudgetLimit  decimal.Decimal
	transactions []Transaction
}

// NewCategory creates an empty category.
func NewCategory(name string, budgetLimit decimal.Decimal) *Category {
	return &Category{Name: name, BudgetLimit: budgetLimit}
}

// AddTransaction appends tx. Amount sign and date are not validated.
func (c *Category) AddTransaction(tx Transaction) {
	c.transactions = append(c.transactions, tx)
}

// Transactions returns a copy of the transactions in insertion order.
func (c *Category) Transactions() []Transaction {
	out := make([]Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// Len returns the number of transactions.
func (c *Category) Len() int {
	return len(c.transactions)
}

// TotalSpent is the sum of all amounts; zero when empty.
func (c *Category) TotalSpent() decimal.Decimal {
	return sum(c.transactions)
}

// RemainingBudget is BudgetLimit - TotalSpent. Negative means overspent.
func (c *Category) RemainingBudget() decimal.Decimal {
	return c.BudgetLimit.Sub(c.TotalSpent())
}

// TransactionsInPeriod returns the transactions dated within [start, end],
// inclusive on both ends, in insertion order. start after end yields none.
func (c *Category) TransactionsInPeriod(start, end Date) []Transaction {
	period := Period{Start: start, End: end}
	var out []Transaction
	for _, tx := range c.transactions {
		if period.Contains(tx.OccurredOn) {
			out = append(out, tx)
		}
	}
	return out
}

// SpentIn sums the transactions dated within p.
func (c *Category) SpentIn(p Period) decimal.Decimal {
	return sum(c.TransactionsInPeriod(p.Start, p.End))
}

func (c *Category) clone() *Category {
	return &Category{
		Name:         c.Name,
		BudgetLimit:  c.BudgetLimit,
		transactions: c.Transactions(),
	}
}

func sum(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}
