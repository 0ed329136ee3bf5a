/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  budget package's types from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Requests accept amounts as JSON numbers or numeric strings (decoded into
  decimal.Decimal). Responses carry float64 for client convenience.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/budget-ledger/budget"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateCategoryRequest is the request to create a category.
type CreateCategoryRequest struct {
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
}

// AddTransactionRequest records spending. Date defaults to today.
type AddTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CategorySummaryDTO is one row of the category list.
type CategorySummaryDTO struct {
	Name             string  `json:"name"`
	Budget           float64 `json:"budget"`
	TotalSpent       float64 `json:"total_spent"`
	RemainingBudget  float64 `json:"remaining_budget"`
	TransactionCount int     `json:"transaction_count"`
}

// TransactionDTO represents a transaction.
type TransactionDTO struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ReportDTO is the full category report.
type ReportDTO struct {
	Category        string           `json:"category"`
	Budget          float64          `json:"budget"`
	TotalSpent      float64          `json:"total_spent"`
	RemainingBudget float64          `json:"remaining_budget"`
	OverBudget      bool             `json:"over_budget"`
	Transactions    []TransactionDTO `json:"transactions"`
}

// BucketDTO is one period bucket.
type BucketDTO struct {
	Label string  `json:"label"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	Total float64 `json:"total"`
}

// SpendingDTO is the bucketed spending of one category.
type SpendingDTO struct {
	Category string      `json:"category"`
	Period   string      `json:"period"`
	AsOf     string      `json:"as_of"`
	Title    string      `json:"title"`
	Total    float64     `json:"total"`
	Buckets  []BucketDTO `json:"buckets"`
}

// PersistenceDTO reports a save or load.
type PersistenceDTO struct {
	Status       string `json:"status"`
	Categories   int    `json:"categories"`
	Transactions int    `json:"transactions"`
}

// ScenarioDTO describes a demo ledger.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTransactionDTO(tx budget.Transaction) TransactionDTO {
	return TransactionDTO{
		Date:        tx.OccurredOn.String(),
		Amount:      tx.Amount.InexactFloat64(),
		Category:    tx.Category,
		Description: tx.Description,
	}
}

func toReportDTO(r budget.Report) ReportDTO {
	txs := make([]TransactionDTO, len(r.Transactions))
	for i, tx := range r.Transactions {
		txs[i] = toTransactionDTO(tx)
	}
	return ReportDTO{
		Category:        r.Category,
		Budget:          r.BudgetLimit.InexactFloat64(),
		TotalSpent:      r.TotalSpent.InexactFloat64(),
		RemainingBudget: r.RemainingBudget.InexactFloat64(),
		OverBudget:      r.IsOverBudget(),
		Transactions:    txs,
	}
}

func toSummaryDTO(r budget.Report) CategorySummaryDTO {
	return CategorySummaryDTO{
		Name:             r.Category,
		Budget:           r.BudgetLimit.InexactFloat64(),
		TotalSpent:       r.TotalSpent.InexactFloat64(),
		RemainingBudget:  r.RemainingBudget.InexactFloat64(),
		TransactionCount: len(r.Transactions),
	}
}
