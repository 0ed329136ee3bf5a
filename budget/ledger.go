/*
ledger.go - The budget ledger aggregate

PURPOSE:
  The Ledger owns every Category by name. It is the only entry point for
  creating categories and recording transactions, and the unit that is saved
  to and loaded from a Store.

INVARIANTS:
  1. Category names are unique; the map key always equals Category.Name
  2. Adding a duplicate category is rejected with no mutation
  3. Load replaces the whole category set or nothing at all

"TODAY":
  AddTransaction and CalculatePeriodSpending read the current date from
  Ledger.Now (time.Now when nil). Everything below them takes an explicit
  date, so tests can pin the calendar.

CONCURRENCY:
  A Ledger is not safe for concurrent use. Callers serving it to several
  goroutines must serialize access (see api.Handler).

SEE ALSO:
  - spending.go: period aggregation
  - snapshot.go: Snapshot / Restore
  - store.go: Store interface
*/
package budget

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	// Now supplies the current time. Nil means time.Now.
	Now func() time.Time

	categories map[string]*Category
	order      []string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{categories: make(map[string]*Category)}
}

// Today returns the ledger's current date in the local time zone.
func (l *Ledger) Today() Date {
	if l.Now != nil {
		return DateOf(l.Now())
	}
	return Today()
}

// AddCategory creates an empty category.
func (l *Ledger) AddCategory(name string, budgetLimit decimal.Decimal) error {
	if strings.TrimSpace(name) == "" || !utf8.ValidString(name) {
		return ErrInvalidCategory
	}
	if budgetLimit.IsNegative() {
		return ErrInvalidBudget
	}
	if _, exists := l.categories[name]; exists {
		return &DuplicateCategoryError{Name: name}
	}
	l.insert(NewCategory(name, budgetLimit))
	return nil
}

// AddTransaction records a transaction dated today.
func (l *Ledger) AddTransaction(categoryName string, amount decimal.Decimal, description string) (Transaction, error) {
	return l.AddTransactionOn(categoryName, l.Today(), amount, description)
}

// AddTransactionOn records a transaction with an explicit date. Descriptions
// must be valid UTF-8 so they survive a save and load unchanged.
func (l *Ledger) AddTransactionOn(categoryName string, on Date, amount decimal.Decimal, description string) (Transaction, error) {
	category, err := l.lookup(categoryName)
	if err != nil {
		return Transaction{}, err
	}
	if !utf8.ValidString(description) {
		return Transaction{}, ErrInvalidDescription
	}
	tx := Transaction{
		OccurredOn:  on,
		Amount:      amount,
		Category:    categoryName,
		Description: description,
	}
	category.AddTransaction(tx)
	return tx, nil
}

// Category returns a copy of the named category.
func (l *Ledger) Category(name string) (*Category, error) {
	category, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	return category.clone(), nil
}

// Categories returns category names in creation (or load) order.
func (l *Ledger) Categories() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of categories.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Clear drops every category and transaction.
func (l *Ledger) Clear() {
	l.categories = make(map[string]*Category)
	l.order = nil
}

func (l *Ledger) lookup(name string) (*Category, error) {
	category, ok := l.categories[name]
	if !ok {
		return nil, &CategoryNotFoundError{Name: name}
	}
	return category, nil
}

func (l *Ledger) insert(c *Category) {
	if l.categories == nil {
		l.categories = make(map[string]*Category)
	}
	l.categories[c.Name] = c
	l.order = append(l.order, c.Name)
}

// =============================================================================
// REPORT - Read-only snapshot of one category
// =============================================================================

type Report struct {
	Category        string
	BudgetLimit     decimal.Decimal
	TotalSpent      decimal.Decimal
	RemainingBudget decimal.Decimal
	Transactions    []Transaction
}

// IsOverBudget reports whether spending exceeds the limit.
func (r Report) IsOverBudget() bool {
	return r.RemainingBudget.IsNegative()
}

// GenerateReport summarizes one category. Pure read.
func (l *Ledger) GenerateReport(categoryName string) (Report, error) {
	category, err := l.lookup(categoryName)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Category:        category.Name,
		BudgetLimit:     category.BudgetLimit,
		TotalSpent:      category.TotalSpent(),
		RemainingBudget: category.RemainingBudget(),
		Transactions:    category.Transactions(),
	}, nil
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Save writes the whole ledger to store, overwriting what it held.
func (l *Ledger) Save(ctx context.Context, store Store) error {
	return store.Save(ctx, l.Snapshot())
}

// Load replaces the ledger's contents with what store holds. On any error
// the ledger is left exactly as it was.
func (l *Ledger) Load(ctx context.Context, store Store) error {
	snap, err := store.Load(ctx)
	if err != nil {
		return err
	}
	return l.Restore(snap)
}
