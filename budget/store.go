/*
store.go - Persistence interface for the ledger

PURPOSE:
  A Store holds exactly one saved ledger. Save overwrites it entirely;
  Load returns it as a fully parsed and validated Snapshot.

ERROR CONTRACT:
  Load  -> ErrNotFound when nothing was ever saved (missing file, empty DB)
        -> ErrCorruptData when the content cannot be parsed
        -> ErrPersistence on I/O failure
  Save  -> ErrPersistence on I/O failure
  Implementations return *StoreError so callers also see the source.

IMPLEMENTATIONS:
  - store/jsonfile: flat JSON file (the canonical format)
  - store/sqlite:   SQLite database
  - budget/store:   in-memory, for tests and ephemeral sessions
*/
package budget

import "context"

type Store interface {
	// Save overwrites the stored ledger with snap.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the stored ledger. Nothing is returned on partial parses.
	Load(ctx context.Context) (Snapshot, error)
}
