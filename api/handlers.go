/*
handlers.go - HTTP API handlers for the budget ledger

PURPOSE:
  Exposes one budget.Ledger over REST. Handles HTTP request/response and
  JSON serialization, and delegates to the ledger.

ARCHITECTURE:
  Handler holds the ledger, the store it is saved to, a logger and metrics.
  The ledger is not safe for concurrent use, so every handler takes mu for
  the whole ledger operation (one writer lock per ledger).

REQUEST FLOW:
  1. Parse HTTP request
  2. Lock, call the ledger, unlock
  3. Optionally auto-save after a mutation
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (blank name, negative budget, bad date/period)
  - 404: Category not found, nothing saved yet
  - 409: Duplicate category
  - 422: Stored data is corrupt
  - 500: Persistence failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/warp/budget-ledger/budget"
	"github.com/warp/budget-ledger/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// errNoStore is returned by save and load on a handler built without a store.
var errNoStore = errors.New("no store configured")

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	mu     sync.Mutex
	Ledger *budget.Ledger
	Store  budget.Store

	// AutoSave persists the ledger after every successful mutation.
	AutoSave bool
	// dirty is set by mutations and cleared by successful saves and loads.
	dirty bool
	// currentScenario is the id of the last demo ledger loaded, if any.
	currentScenario string

	Log     zerolog.Logger
	Metrics *Metrics
}

// NewHandler creates a handler serving ledger, persisted to store.
func NewHandler(ledger *budget.Ledger, store budget.Store, logger zerolog.Logger) *Handler {
	h := &Handler{
		Ledger:  ledger,
		Store:   store,
		Log:     logger,
		Metrics: NewMetrics(),
	}
	h.Metrics.Categories.Set(float64(ledger.Len()))
	return h
}

// =============================================================================
// CATEGORY HANDLERS
// =============================================================================

// ListCategories returns every category with its totals.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	names := h.Ledger.Categories()
	dtos := make([]CategorySummaryDTO, 0, len(names))
	for _, name := range names {
		rep, err := h.Ledger.GenerateReport(name)
		if err != nil {
			h.mu.Unlock()
			writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
			return
		}
		dtos = append(dtos, toSummaryDTO(rep))
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, dtos)
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.Ledger.AddCategory(req.Name, req.Budget)
	h.Metrics.observe("add_category", err)
	if err != nil {
		writeLedgerError(w, "Failed to create category", err)
		return
	}
	h.dirty = true
	h.Metrics.Categories.Set(float64(h.Ledger.Len()))
	h.Log.Info().Str("category", req.Name).Str("budget", req.Budget.String()).Msg("category created")

	if err := h.autoSave(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Category created but the ledger could not be saved", err)
		return
	}

	rep, _ := h.Ledger.GenerateReport(req.Name)
	writeJSON(w, http.StatusCreated, toSummaryDTO(rep))
}

// GetCategory returns the full report of one category.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mu.Lock()
	rep, err := h.Ledger.GenerateReport(name)
	h.mu.Unlock()
	if err != nil {
		writeLedgerError(w, "Failed to get category", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// AddTransaction records a transaction against a category.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	on := h.Ledger.Today()
	if req.Date != "" {
		parsed, err := budget.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		on = parsed
	}

	tx, err := h.Ledger.AddTransactionOn(name, on, *req.Amount, req.Description)
	h.Metrics.observe("add_transaction", err)
	if err != nil {
		writeLedgerError(w, "Failed to add transaction", err)
		return
	}
	h.dirty = true
	h.Log.Info().Str("category", name).Str("amount", tx.Amount.String()).Stringer("date", tx.OccurredOn).Msg("transaction added")

	if err := h.autoSave(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Transaction added but the ledger could not be saved", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// =============================================================================
// SPENDING HANDLERS
// =============================================================================

// GetSpending returns weekly (default) or monthly buckets.
//
// Query: period=weekly|monthly, as_of=YYYY-MM-DD (default today).
func (h *Handler) GetSpending(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	periodParam := r.URL.Query().Get("period")
	if periodParam == "" {
		periodParam = string(budget.Weekly)
	}
	pt, err := budget.ParsePeriodType(periodParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use weekly or monthly)", err)
		return
	}

	h.mu.Lock()
	asOf := h.Ledger.Today()
	if s := r.URL.Query().Get("as_of"); s != "" {
		asOf, err = budget.ParseDate(s)
		if err != nil {
			h.mu.Unlock()
			writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
			return
		}
	}
	spending, err := h.Ledger.PeriodSpending(name, pt, asOf)
	h.mu.Unlock()
	if err != nil {
		writeLedgerError(w, "Failed to calculate spending", err)
		return
	}

	labels := spending.Labels()
	buckets := make([]BucketDTO, len(spending.Buckets))
	for i, b := range spending.Buckets {
		buckets[i] = BucketDTO{
			Label: labels[i],
			Start: b.Period.Start.String(),
			End:   b.Period.End.String(),
			Total: b.Total.InexactFloat64(),
		}
	}

	writeJSON(w, http.StatusOK, SpendingDTO{
		Category: spending.Category,
		Period:   string(spending.Type),
		AsOf:     spending.AsOf.String(),
		Title:    report.SpendingTitle(spending),
		Total:    spending.Total().InexactFloat64(),
		Buckets:  buckets,
	})
}

// =============================================================================
// PERSISTENCE HANDLERS
// =============================================================================

// SaveLedger writes the ledger to the store.
func (h *Handler) SaveLedger(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.save(r.Context()); err != nil {
		h.Log.Error().Err(err).Msg("save failed")
		writeLedgerError(w, "Failed to save ledger", err)
		return
	}

	snap := h.Ledger.Snapshot()
	writeJSON(w, http.StatusOK, PersistenceDTO{
		Status:       "saved",
		Categories:   len(snap.Categories),
		Transactions: snap.TransactionCount(),
	})
}

// LoadLedger replaces the ledger with the store's contents.
// On failure the in-memory ledger is unchanged.
func (h *Handler) LoadLedger(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Store == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load ledger", errNoStore)
		return
	}
	err := h.Ledger.Load(r.Context(), h.Store)
	h.Metrics.observe("load", err)
	if err != nil {
		h.Log.Warn().Err(err).Msg("load failed")
		writeLedgerError(w, "Failed to load ledger", err)
		return
	}
	h.dirty = false
	h.currentScenario = ""
	h.Metrics.Categories.Set(float64(h.Ledger.Len()))

	snap := h.Ledger.Snapshot()
	writeJSON(w, http.StatusOK, PersistenceDTO{
		Status:       "loaded",
		Categories:   len(snap.Categories),
		Transactions: snap.TransactionCount(),
	})
}

// Save persists the ledger outside of a request, e.g. on shutdown.
func (h *Handler) Save(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.save(ctx)
}

// SaveIfDirty saves only when there are unsaved mutations.
func (h *Handler) SaveIfDirty(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.dirty {
		return false, nil
	}
	if err := h.save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// autoSave must be called with mu held. Without a store it does nothing.
func (h *Handler) autoSave(ctx context.Context) error {
	if !h.AutoSave || h.Store == nil {
		return nil
	}
	err := h.save(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("auto-save failed")
	}
	return err
}

// save must be called with mu held.
func (h *Handler) save(ctx context.Context) error {
	if h.Store == nil {
		return errNoStore
	}
	err := h.Ledger.Save(ctx, h.Store)
	h.Metrics.observe("save", err)
	if err == nil {
		h.dirty = false
	}
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeLedgerError(w http.ResponseWriter, message string, err error) {
	writeError(w, statusFor(err), message, err)
}

// statusFor maps ledger and store error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case budget.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, budget.ErrDuplicateCategory):
		return http.StatusConflict
	case budget.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, budget.ErrCorruptData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
