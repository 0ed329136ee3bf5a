/*
scenarios.go - Demo ledgers for trying out the API

PURPOSE:

	Provides pre-built ledgers so a frontend (or a person with curl) has
	something to chart right away. Every scenario is dated relative to the
	ledger's "today", so weekly and monthly views always have data.

AVAILABLE SCENARIOS:

	starter:        Rent, Food and Transport with spending spread over this week
	overspent:      A Food budget blown mid-week, plus a refund
	year-in-review: One Utilities bill per month since January

HOW SCENARIOS WORK:
 1. Build a Snapshot relative to today
 2. Restore it into the ledger (replacing everything)
 3. Auto-save if enabled

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "overspent"}

NOTE:

	Loading a scenario replaces the current ledger. Only use in demos.

SEE ALSO:
  - budget/snapshot.go: Restore
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/budget-ledger/budget"
)

type scenario struct {
	ScenarioDTO
	build func(today budget.Date) budget.Snapshot
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "starter",
			Name:        "Starter Budget",
			Description: "Three categories with a few purchases this week",
		},
		build: buildStarter,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "overspent",
			Name:        "Overspent",
			Description: "Food over budget by mid-week, one refund",
		},
		build: buildOverspent,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "year-in-review",
			Name:        "Year in Review",
			Description: "A monthly utilities bill from January to this month",
		},
		build: buildYearInReview,
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the last loaded scenario, or null.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	s, ok := findScenario(current)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, s.ScenarioDTO)
}

// LoadScenario replaces the ledger with a demo ledger.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	s, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	snap := s.build(h.Ledger.Today())
	err := h.Ledger.Restore(snap)
	h.Metrics.observe("load_scenario", err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}
	h.dirty = true
	h.currentScenario = s.ID
	h.Metrics.Categories.Set(float64(h.Ledger.Len()))
	h.Log.Info().Str("scenario", s.ID).Msg("scenario loaded")

	if err := h.autoSave(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Scenario loaded but the ledger could not be saved", err)
		return
	}

	writeJSON(w, http.StatusOK, PersistenceDTO{
		Status:       "loaded",
		Categories:   len(snap.Categories),
		Transactions: snap.TransactionCount(),
	})
}

// =============================================================================
// SCENARIO BUILDERS
// =============================================================================

func demoTx(on budget.Date, amount, description string) budget.TransactionSnapshot {
	return budget.TransactionSnapshot{
		Date:        on,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
	}
}

func buildStarter(today budget.Date) budget.Snapshot {
	monday := budget.StartOfWeek(today)
	return budget.Snapshot{Categories: []budget.CategorySnapshot{
		{
			Name:   "Rent",
			Budget: decimal.NewFromInt(1200),
			Transactions: []budget.TransactionSnapshot{
				demoTx(budget.StartOfMonth(today.Year(), today.Month()), "1200", "monthly rent"),
			},
		},
		{
			Name:   "Food",
			Budget: decimal.NewFromInt(300),
			Transactions: []budget.TransactionSnapshot{
				demoTx(monday, "42.10", "groceries"),
				demoTx(monday.AddDays(2), "12.50", "lunch"),
				demoTx(monday.AddDays(5), "64.00", "dinner out"),
			},
		},
		{
			Name:   "Transport",
			Budget: decimal.NewFromInt(80),
			Transactions: []budget.TransactionSnapshot{
				demoTx(monday.AddDays(1), "2.90", "bus"),
				demoTx(monday.AddDays(3), "2.90", "bus"),
			},
		},
	}}
}

func buildOverspent(today budget.Date) budget.Snapshot {
	monday := budget.StartOfWeek(today)
	return budget.Snapshot{Categories: []budget.CategorySnapshot{
		{
			Name:   "Food",
			Budget: decimal.NewFromInt(100),
			Transactions: []budget.TransactionSnapshot{
				demoTx(monday, "55.00", "weekly shop"),
				demoTx(monday.AddDays(1), "38.75", "takeaway"),
				demoTx(monday.AddDays(2), "29.99", "birthday cake"),
				demoTx(monday.AddDays(3), "-8.00", "returned item"),
			},
		},
	}}
}

func buildYearInReview(today budget.Date) budget.Snapshot {
	utilities := budget.CategorySnapshot{
		Name:   "Utilities",
		Budget: decimal.NewFromInt(150 * int64(today.Month())),
	}
	for m := 1; m <= int(today.Month()); m++ {
		amount := decimal.NewFromInt(int64(90 + 10*(m%4)))
		utilities.Transactions = append(utilities.Transactions, budget.TransactionSnapshot{
			Date:        budget.NewDate(today.Year(), time.Month(m), 15),
			Amount:      amount,
			Description: "electricity and water",
		})
	}
	return budget.Snapshot{Categories: []budget.CategorySnapshot{utilities}}
}
