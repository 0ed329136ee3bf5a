/*
errors.go - Error kinds for the budget ledger

PURPOSE:
  Every failure the ledger or a Store can report is one of the sentinels
  below. Structured errors carry the offending category name or persistence
  source and unwrap to their sentinel, so callers branch with errors.Is and
  read context with errors.As.

ERROR KINDS:
  1. Ledger errors  - ErrCategoryNotFound, ErrDuplicateCategory,
                      ErrInvalidCategory, ErrInvalidBudget, ErrInvalidDescription,
                      ErrInvalidPeriodType
  2. Store errors   - ErrNotFound, ErrCorruptData, ErrPersistence

USAGE:
  if errors.Is(err, budget.ErrCategoryNotFound) {
      var nf *budget.CategoryNotFoundError
      errors.As(err, &nf)
      fmt.Printf("no category %q\n", nf.Name)
  }
*/
package budget

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCategoryNotFound is returned when an operation names a category the
	// ledger does not hold.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateCategory is returned when adding a category whose name is
	// already taken. The existing category is left untouched.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrInvalidCategory is returned for blank or non-UTF-8 category names.
	ErrInvalidCategory = errors.New("invalid category name")

	// ErrInvalidDescription is returned for descriptions that are not valid UTF-8.
	ErrInvalidDescription = errors.New("description must be valid UTF-8")

	// ErrInvalidBudget is returned for negative budget limits.
	ErrInvalidBudget = errors.New("budget limit must not be negative")

	// ErrInvalidPeriodType is returned for period types other than weekly/monthly.
	ErrInvalidPeriodType = errors.New("invalid period type")

	// ErrNotFound is returned by Store.Load when there is nothing to load.
	ErrNotFound = errors.New("ledger data not found")

	// ErrCorruptData is returned by Store.Load when stored content cannot be
	// parsed or violates the ledger invariants.
	ErrCorruptData = errors.New("ledger data is corrupt")

	// ErrPersistence is returned when writing or reading the store fails at
	// the I/O level.
	ErrPersistence = errors.New("ledger persistence failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CategoryNotFoundError names the missing category.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q not found", e.Name)
}

func (e *CategoryNotFoundError) Unwrap() error {
	return ErrCategoryNotFound
}

// DuplicateCategoryError names the category that already exists.
type DuplicateCategoryError struct {
	Name string
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("category %q already exists", e.Name)
}

func (e *DuplicateCategoryError) Unwrap() error {
	return ErrDuplicateCategory
}

// StoreError describes a failed Save or Load.
// Kind is one of ErrNotFound, ErrCorruptData, ErrPersistence.
type StoreError struct {
	Op     string // "save" or "load"
	Source string // file path, DSN, or "memory"
	Kind   error
	Err    error // underlying cause, may be nil
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Kind)
	}
	// Causes from Validate and the decoders already name their kind.
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Source, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewStoreError is a convenience for Store implementations.
func NewStoreError(op, source string, kind, err error) *StoreError {
	return &StoreError{Op: op, Source: source, Kind: kind, Err: err}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing category or missing data.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidBudget) ||
		errors.Is(err, ErrInvalidDescription) ||
		errors.Is(err, ErrInvalidPeriodType)
}
