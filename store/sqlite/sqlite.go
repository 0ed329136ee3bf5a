/*
Package sqlite provides a SQLite-backed budget.Store.

PURPOSE:
  Keeps the ledger in a SQLite database instead of a flat file. The
  contract is the same as store/jsonfile: Save overwrites everything,
  Load returns the whole ledger or an error.

KEY TABLES:
  categories:   one row per category, position = ledger order
  transactions: one row per transaction, position = insertion order
  ledger_meta:  single row recording the last save; its absence means
                "nothing saved yet" (budget.ErrNotFound)

VALUE ENCODING:
  Budgets and amounts are stored as decimal TEXT, dates as YYYY-MM-DD,
  so nothing goes through float64.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety; Save runs in one SQL transaction.

USAGE:
  store, err := sqlite.New("./data/budget.db")
  if err != nil {
      return err
  }
  defer store.Close()

  err = ledger.Save(ctx, store)

SEE ALSO:
  - budget/store.go: Interface definition
  - store/jsonfile: Flat-file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/budget-ledger/budget"
)

// Store implements budget.Store using SQLite.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	source string
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// :memory: databases are per-connection
	db.SetMaxOpenConns(1)

	store := &Store{db: db, source: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS categories (
		position INTEGER NOT NULL,
		name TEXT NOT NULL UNIQUE,
		budget TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		category TEXT NOT NULL REFERENCES categories(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		occurred_on TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_category_position
		ON transactions(category, position);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		saved_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// budget.Store
// =============================================================================

// Save replaces every stored row with snap, atomically.
func (s *Store) Save(ctx context.Context, snap budget.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, snap); err != nil {
		return budget.NewStoreError("save", s.source, budget.ErrPersistence, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, snap budget.Snapshot) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM transactions",
		"DELETE FROM categories",
	} {
		if _, err := sqlTx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear ledger: %w", err)
		}
	}

	for i, cs := range snap.Categories {
		_, err := sqlTx.ExecContext(ctx,
			"INSERT INTO categories (position, name, budget) VALUES (?, ?, ?)",
			i, cs.Name, cs.Budget.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", cs.Name, err)
		}

		for j, ts := range cs.Transactions {
			_, err := sqlTx.ExecContext(ctx, `
				INSERT INTO transactions (category, position, occurred_on, amount, description)
				VALUES (?, ?, ?, ?, ?)
			`, cs.Name, j, ts.Date.String(), ts.Amount.String(), ts.Description)
			if err != nil {
				return fmt.Errorf("failed to insert transaction %d of %q: %w", j, cs.Name, err)
			}
		}
	}

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO ledger_meta (id, saved_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at
	`, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record save: %w", err)
	}

	return sqlTx.Commit()
}

// Load reads the whole ledger.
func (s *Store) Load(ctx context.Context) (budget.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM ledger_meta WHERE id = 1").Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrNotFound, nil)
	}
	if err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
	}

	snap, err := s.loadCategories(ctx)
	if err != nil {
		return budget.Snapshot{}, err
	}
	if err := snap.Validate(); err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrCorruptData, err)
	}
	return snap, nil
}

func (s *Store) loadCategories(ctx context.Context) (budget.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, budget FROM categories ORDER BY position ASC")
	if err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
	}
	defer rows.Close()

	var snap budget.Snapshot
	index := make(map[string]int)
	for rows.Next() {
		var name, budgetText string
		if err := rows.Scan(&name, &budgetText); err != nil {
			return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
		}
		limit, err := decimal.NewFromString(budgetText)
		if err != nil {
			return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrCorruptData,
				fmt.Errorf("category %q budget: %w", name, err))
		}
		index[name] = len(snap.Categories)
		snap.Categories = append(snap.Categories, budget.CategorySnapshot{
			Name:         name,
			Budget:       limit,
			Transactions: []budget.TransactionSnapshot{},
		})
	}
	if err := rows.Err(); err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
	}

	txRows, err := s.db.QueryContext(ctx, `
		SELECT category, occurred_on, amount, description
		FROM transactions
		ORDER BY category ASC, position ASC
	`)
	if err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
	}
	defer txRows.Close()

	for txRows.Next() {
		category, ts, err := scanTransaction(txRows)
		if err != nil {
			return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrCorruptData, err)
		}
		i, ok := index[category]
		if !ok {
			return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrCorruptData,
				fmt.Errorf("transaction references unknown category %q", category))
		}
		snap.Categories[i].Transactions = append(snap.Categories[i].Transactions, ts)
	}
	if err := txRows.Err(); err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.source, budget.ErrPersistence, err)
	}

	return snap, nil
}

func scanTransaction(rows *sql.Rows) (string, budget.TransactionSnapshot, error) {
	var (
		category    string
		occurredOn  string
		amountText  string
		description string
	)
	if err := rows.Scan(&category, &occurredOn, &amountText, &description); err != nil {
		return "", budget.TransactionSnapshot{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	date, err := budget.ParseDate(occurredOn)
	if err != nil {
		return "", budget.TransactionSnapshot{}, fmt.Errorf("category %q: %w", category, err)
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return "", budget.TransactionSnapshot{}, fmt.Errorf("category %q amount: %w", category, err)
	}
	return category, budget.TransactionSnapshot{Date: date, Amount: amount, Description: description}, nil
}

// SavedAt returns when the ledger was last saved; zero if never.
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM ledger_meta WHERE id = 1").Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, savedAt)
}
