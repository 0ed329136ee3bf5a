/*
snapshot.go - Detached, ordered copy of a ledger

PURPOSE:
  A Snapshot is what a Store saves and loads. Stores parse their whole
  source into a Snapshot before returning it, and Restore validates it
  again before touching the ledger, so a bad document can never leave a
  half-loaded ledger behind.

ORDER:
  Categories keep ledger order; transactions keep insertion order.
*/
package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Snapshot struct {
	Categories []CategorySnapshot
}

type CategorySnapshot struct {
	Name         string
	Budget       decimal.Decimal
	Transactions []TransactionSnapshot
}

type TransactionSnapshot struct {
	Date        Date
	Amount      decimal.Decimal
	Description string
}

// Snapshot copies the ledger.
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{Categories: make([]CategorySnapshot, 0, len(l.order))}
	for _, name := range l.order {
		c := l.categories[name]
		cs := CategorySnapshot{
			Name:         c.Name,
			Budget:       c.BudgetLimit,
			Transactions: make([]TransactionSnapshot, 0, len(c.transactions)),
		}
		for _, tx := range c.transactions {
			cs.Transactions = append(cs.Transactions, TransactionSnapshot{
				Date:        tx.OccurredOn,
				Amount:      tx.Amount,
				Description: tx.Description,
			})
		}
		snap.Categories = append(snap.Categories, cs)
	}
	return snap
}

// Restore replaces the ledger's contents with snap. An invalid snapshot
// returns an ErrCorruptData error and leaves the ledger unchanged.
func (l *Ledger) Restore(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	categories := make(map[string]*Category, len(snap.Categories))
	order := make([]string, 0, len(snap.Categories))
	for _, cs := range snap.Categories {
		c := NewCategory(cs.Name, cs.Budget)
		for _, ts := range cs.Transactions {
			c.AddTransaction(Transaction{
				OccurredOn:  ts.Date,
				Amount:      ts.Amount,
				Category:    cs.Name,
				Description: ts.Description,
			})
		}
		categories[cs.Name] = c
		order = append(order, cs.Name)
	}

	l.categories = categories
	l.order = order
	return nil
}

// Validate checks the ledger invariants: unique non-blank names and
// non-negative budgets. Missing dates are a store concern; 0001-01-01 is
// a valid date.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Categories))
	for _, cs := range s.Categories {
		if strings.TrimSpace(cs.Name) == "" {
			return fmt.Errorf("%w: blank category name", ErrCorruptData)
		}
		if seen[cs.Name] {
			return fmt.Errorf("%w: category %q appears twice", ErrCorruptData, cs.Name)
		}
		seen[cs.Name] = true
		if cs.Budget.IsNegative() {
			return fmt.Errorf("%w: category %q has negative budget %s", ErrCorruptData, cs.Name, cs.Budget)
		}
	}
	return nil
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Categories: make([]CategorySnapshot, len(s.Categories))}
	for i, cs := range s.Categories {
		txs := make([]TransactionSnapshot, len(cs.Transactions))
		copy(txs, cs.Transactions)
		out.Categories[i] = CategorySnapshot{Name: cs.Name, Budget: cs.Budget, Transactions: txs}
	}
	return out
}

// TransactionCount counts transactions across all categories.
func (s Snapshot) TransactionCount() int {
	n := 0
	for _, cs := range s.Categories {
		n += len(cs.Transactions)
	}
	return n
}
