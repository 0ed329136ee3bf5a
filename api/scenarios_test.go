/*
scenarios_test.go - Tests for the demo ledgers

Every scenario must load through the same validation as a stored ledger and
produce data visible in the weekly or monthly view for "today".
*/
package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			srv := newTestServer(t, true)

			rec := srv.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": s.ID})

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			dto := decodeBody[PersistenceDTO](t, rec)
			assert.Equal(t, srv.handler.Ledger.Len(), dto.Categories)
			assert.Positive(t, dto.Transactions)
			assert.Equal(t, 1, srv.store.Saves(), "auto-save after loading")

			current := decodeBody[ScenarioDTO](t, srv.do(t, http.MethodGet, "/api/scenarios/current", nil))
			assert.Equal(t, s.ID, current.ID)
		})
	}
}

func TestScenario_OverspentShowsInReport(t *testing.T) {
	// GIVEN: today is Wednesday 2025-03-12
	// WHEN: loading the overspent demo
	// THEN: Food is over its 100 budget and this week's chart has data

	srv := newTestServer(t, false)
	require.Equal(t, http.StatusOK,
		srv.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "overspent"}).Code)

	report := decodeBody[ReportDTO](t, srv.do(t, http.MethodGet, "/api/categories/Food", nil))
	assert.True(t, report.OverBudget)
	assert.InDelta(t, 115.74, report.TotalSpent, 0.001)

	spending := decodeBody[SpendingDTO](t, srv.do(t, http.MethodGet, "/api/categories/Food/spending", nil))
	assert.Equal(t, 55.0, spending.Buckets[0].Total)
}

func TestScenario_YearInReviewCoversEveryMonth(t *testing.T) {
	srv := newTestServer(t, false)
	srv.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "year-in-review"})

	spending := decodeBody[SpendingDTO](t, srv.do(t, http.MethodGet, "/api/categories/Utilities/spending?period=monthly", nil))

	require.Len(t, spending.Buckets, 3)
	for _, b := range spending.Buckets {
		assert.Positive(t, b.Total, b.Label)
	}
}

func TestScenario_UnknownAndReset(t *testing.T) {
	srv := newTestServer(t, false)

	rec := srv.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "lottery-win"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null\n", rec.Body.String())

	list := decodeBody[[]ScenarioDTO](t, srv.do(t, http.MethodGet, "/api/scenarios", nil))
	assert.Len(t, list, len(scenarios))
}
