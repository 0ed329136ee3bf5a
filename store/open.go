// Package store selects a budget.Store implementation from configuration.
package store

import (
	"fmt"

	"github.com/warp/budget-ledger/budget"
	memstore "github.com/warp/budget-ledger/budget/store"
	"github.com/warp/budget-ledger/config"
	"github.com/warp/budget-ledger/store/jsonfile"
	"github.com/warp/budget-ledger/store/sqlite"
)

// Open returns the configured store and a function releasing its resources.
func Open(cfg config.StorageConfig) (budget.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendJSON, "":
		return jsonfile.New(cfg.File), noop, nil
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return memstore.NewMemory(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Describe names the store location for log lines.
func Describe(cfg config.StorageConfig) string {
	switch cfg.Backend {
	case config.BackendSQLite:
		return "sqlite:" + cfg.SQLitePath
	case config.BackendMemory:
		return "memory"
	default:
		return cfg.File
	}
}
