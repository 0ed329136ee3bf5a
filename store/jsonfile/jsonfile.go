/*
Package jsonfile stores the ledger as a single JSON document on disk.

FORMAT:
  {
      "Food": {
          "budget": 300,
          "transactions": [
              {"date": "2025-03-10", "amount": 12.5, "description": "lunch"}
          ]
      }
  }

  - Top-level keys are category names, in ledger order.
  - Amounts and budgets are JSON numbers written from their exact decimal
    text and read back through decimal parsing, so no float rounding occurs.
  - Unknown fields are ignored. A missing budget means 0, missing
    transactions means none, a missing description means "".
  - A missing date or amount, a non-object category, a negative budget,
    a repeated category name, or trailing content is corrupt data.

SAVE SEMANTICS:
  Save replaces the file contents entirely.

SEE ALSO:
  - budget/store.go: the Store contract
*/
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/budget-ledger/budget"
)

const indent = "    "

// =============================================================================
// FILE STORE
// =============================================================================

type Store struct {
	Path string
	Perm fs.FileMode
}

// New returns a store for the file at path. The file need not exist yet.
func New(path string) *Store {
	return &Store{Path: path, Perm: 0o644}
}

// Save overwrites the file with snap.
func (s *Store) Save(_ context.Context, snap budget.Snapshot) error {
	var buf bytes.Buffer
	if err := encode(&buf, snap); err != nil {
		return budget.NewStoreError("save", s.Path, budget.ErrPersistence, err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), s.Perm); err != nil {
		return budget.NewStoreError("save", s.Path, budget.ErrPersistence, err)
	}
	return nil
}

// Load parses the whole file before returning anything.
func (s *Store) Load(_ context.Context) (budget.Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return budget.Snapshot{}, budget.NewStoreError("load", s.Path, budget.ErrNotFound, nil)
		}
		return budget.Snapshot{}, budget.NewStoreError("load", s.Path, budget.ErrPersistence, err)
	}

	snap, err := decode(bytes.NewReader(data))
	if err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.Path, budget.ErrCorruptData, err)
	}
	if err := snap.Validate(); err != nil {
		return budget.Snapshot{}, budget.NewStoreError("load", s.Path, budget.ErrCorruptData, err)
	}
	return snap, nil
}

// =============================================================================
// CODEC
// =============================================================================

type fileCategory struct {
	Budget       *json.Number      `json:"budget"`
	Transactions []fileTransaction `json:"transactions"`
}

type fileTransaction struct {
	Date        *string      `json:"date"`
	Amount      *json.Number `json:"amount"`
	Description string       `json:"description"`
}

// Encode writes snap in the ledger file format.
func Encode(w io.Writer, snap budget.Snapshot) error {
	return encode(w, snap)
}

// Decode reads a ledger document. Errors wrap budget.ErrCorruptData.
// The result is not validated against ledger invariants; see Snapshot.Validate.
func Decode(r io.Reader) (budget.Snapshot, error) {
	snap, err := decode(r)
	if err != nil {
		return budget.Snapshot{}, fmt.Errorf("%w: %v", budget.ErrCorruptData, err)
	}
	return snap, nil
}

// encode writes the object by hand because encoding/json sorts map keys and
// category order must survive a round-trip.
func encode(w io.Writer, snap budget.Snapshot) error {
	if len(snap.Categories) == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, cs := range snap.Categories {
		key, err := json.Marshal(cs.Name)
		if err != nil {
			return err
		}
		value, err := json.MarshalIndent(toFile(cs), indent, indent)
		if err != nil {
			return fmt.Errorf("category %q: %w", cs.Name, err)
		}
		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(snap.Categories)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func toFile(cs budget.CategorySnapshot) fileCategory {
	budgetNum := json.Number(cs.Budget.String())
	fc := fileCategory{
		Budget:       &budgetNum,
		Transactions: make([]fileTransaction, len(cs.Transactions)),
	}
	for i, ts := range cs.Transactions {
		date := ts.Date.String()
		amount := json.Number(ts.Amount.String())
		fc.Transactions[i] = fileTransaction{
			Date:        &date,
			Amount:      &amount,
			Description: ts.Description,
		}
	}
	return fc
}

func decode(r io.Reader) (budget.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return budget.Snapshot{}, errors.New("empty document")
		}
		return budget.Snapshot{}, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return budget.Snapshot{}, fmt.Errorf("expected top-level object, got %v", tok)
	}

	var snap budget.Snapshot
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return budget.Snapshot{}, err
		}
		name, ok := tok.(string)
		if !ok {
			return budget.Snapshot{}, fmt.Errorf("expected category name, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return budget.Snapshot{}, fmt.Errorf("category %q: %w", name, err)
		}
		cs, err := fromFile(name, raw)
		if err != nil {
			return budget.Snapshot{}, fmt.Errorf("category %q: %w", name, err)
		}
		snap.Categories = append(snap.Categories, cs)
	}

	if _, err := dec.Token(); err != nil {
		return budget.Snapshot{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return budget.Snapshot{}, errors.New("unexpected data after top-level object")
	}
	return snap, nil
}

func fromFile(name string, raw json.RawMessage) (budget.CategorySnapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return budget.CategorySnapshot{}, errors.New("expected an object")
	}

	var fc fileCategory
	if err := json.Unmarshal(trimmed, &fc); err != nil {
		return budget.CategorySnapshot{}, err
	}

	cs := budget.CategorySnapshot{
		Name:         name,
		Budget:       decimal.Zero,
		Transactions: make([]budget.TransactionSnapshot, 0, len(fc.Transactions)),
	}
	if fc.Budget != nil {
		b, err := decimal.NewFromString(fc.Budget.String())
		if err != nil {
			return budget.CategorySnapshot{}, fmt.Errorf("budget: %w", err)
		}
		cs.Budget = b
	}

	for i, ft := range fc.Transactions {
		if ft.Date == nil {
			return budget.CategorySnapshot{}, fmt.Errorf("transaction %d: missing date", i)
		}
		if ft.Amount == nil {
			return budget.CategorySnapshot{}, fmt.Errorf("transaction %d: missing amount", i)
		}
		date, err := budget.ParseDate(*ft.Date)
		if err != nil {
			return budget.CategorySnapshot{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		amount, err := decimal.NewFromString(ft.Amount.String())
		if err != nil {
			return budget.CategorySnapshot{}, fmt.Errorf("transaction %d: amount: %w", i, err)
		}
		cs.Transactions = append(cs.Transactions, budget.TransactionSnapshot{
			Date:        date,
			Amount:      amount,
			Description: ft.Description,
		})
	}
	return cs, nil
}
