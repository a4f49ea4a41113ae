// Package core defines the shared types used across the finance agent.
package core

import "time"

// TxKind distinguishes money flowing in from money flowing out.
type TxKind string

const (
	// Expense is money spent.
	Expense TxKind = "expense"

	// Income is money received.
	Income TxKind = "income"
)

// Transaction is a single financial event. Records are immutable once
// persisted; the ID is assigned by the store at insertion.
type Transaction struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Kind        TxKind    `json:"kind"`
}

// CategoryAggregate is the total spend and transaction count for one
// category over the queried window.
type CategoryAggregate struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// AnomalyRecord flags a single transaction whose amount sits well above
// the norm for its category. Excess is amount minus the category mean and
// is always positive.
type AnomalyRecord struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Excess   float64   `json:"excess"`
}

// MonthlySummary is the income/expense/savings picture for one calendar
// month. Month is formatted as "2006-01". SavingsRate is a percentage and
// reported as 0 when the month had no income.
type MonthlySummary struct {
	Month       string  `json:"month"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savings_rate"`
}

// CategoryInsight holds descriptive statistics for one spending category.
type CategoryInsight struct {
	Average float64 `json:"avg_amount"`
	Min     float64 `json:"min_amount"`
	Max     float64 `json:"max_amount"`
	Total   float64 `json:"total_spent"`
	Count   int     `json:"transaction_count"`
}

// CategoryForecast is the predicted spend for one category next month.
type CategoryForecast struct {
	PerTransaction        float64 `json:"per_transaction"`
	MonthlyTotal          float64 `json:"monthly_total"`
	EstimatedTransactions float64 `json:"estimated_transactions"`
}
