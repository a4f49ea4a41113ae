package analyzer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, s store.TransactionStore, txs []core.Transaction) {
	t.Helper()
	for _, tx := range txs {
		if _, err := s.Append(context.Background(), tx); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func TestCategorizeSpending(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, []core.Transaction{
		{Date: date(2025, 1, 5), Category: "Food", Amount: 300, Kind: core.Expense},
		{Date: date(2025, 1, 6), Category: "Travel", Amount: 120, Kind: core.Expense},
		{Date: date(2025, 1, 7), Category: "Food", Amount: 200, Kind: core.Expense},
		{Date: date(2025, 1, 8), Category: "Salary", Amount: 5000, Kind: core.Income},
	})

	aggs, err := New(s).CategorizeSpending(context.Background())
	if err != nil {
		t.Fatalf("CategorizeSpending() error = %v", err)
	}

	if len(aggs) != 2 {
		t.Fatalf("got %d categories, want 2", len(aggs))
	}
	if aggs[0].Category != "Food" || aggs[1].Category != "Travel" {
		t.Errorf("categories not sorted: %v, %v", aggs[0].Category, aggs[1].Category)
	}
	if aggs[0].Total != 500 || aggs[0].Count != 2 {
		t.Errorf("Food aggregate = %+v, want total 500 count 2", aggs[0])
	}

	// Category totals must sum to the total of all expense amounts.
	var sum float64
	for _, agg := range aggs {
		sum += agg.Total
	}
	if math.Abs(sum-620) > 1e-9 {
		t.Errorf("category totals sum = %v, want 620", sum)
	}
}

func TestCategorizeSpending_Empty(t *testing.T) {
	aggs, err := New(store.NewMemoryStore()).CategorizeSpending(context.Background())
	if err != nil {
		t.Fatalf("CategorizeSpending() error = %v", err)
	}
	if len(aggs) != 0 {
		t.Errorf("got %d aggregates, want 0", len(aggs))
	}
}

func TestDetectUnnecessarySpending(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, []core.Transaction{
		{Date: date(2025, 1, 5), Category: "Food", Amount: 300, Kind: core.Expense},
		{Date: date(2025, 1, 10), Category: "Food", Amount: 320, Kind: core.Expense},
		{Date: date(2025, 1, 15), Category: "Food", Amount: 310, Kind: core.Expense},
		{Date: date(2025, 1, 20), Category: "Food", Amount: 900, Kind: core.Expense},
	})

	anomalies, err := New(s).DetectUnnecessarySpending(context.Background())
	if err != nil {
		t.Fatalf("DetectUnnecessarySpending() error = %v", err)
	}

	if len(anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(anomalies))
	}
	an := anomalies[0]
	if an.Amount != 900 {
		t.Errorf("flagged amount = %v, want 900", an.Amount)
	}
	// mean(300, 320, 310, 900) = 457.5
	if math.Abs(an.Excess-442.5) > 1e-9 {
		t.Errorf("excess = %v, want 442.5", an.Excess)
	}
	if an.Excess <= 0 {
		t.Errorf("excess must be strictly positive, got %v", an.Excess)
	}
}

func TestDetectUnnecessarySpending_Skips(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
	}{
		{
			name: "below minimum sample count",
			txs: []core.Transaction{
				{Date: date(2025, 1, 5), Category: "Food", Amount: 10, Kind: core.Expense},
				{Date: date(2025, 1, 6), Category: "Food", Amount: 9000, Kind: core.Expense},
			},
		},
		{
			name: "zero stddev",
			txs: []core.Transaction{
				{Date: date(2025, 1, 5), Category: "Rent", Amount: 1500, Kind: core.Expense},
				{Date: date(2025, 2, 5), Category: "Rent", Amount: 1500, Kind: core.Expense},
				{Date: date(2025, 3, 5), Category: "Rent", Amount: 1500, Kind: core.Expense},
				{Date: date(2025, 4, 5), Category: "Rent", Amount: 1500, Kind: core.Expense},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			seed(t, s, tt.txs)

			anomalies, err := New(s).DetectUnnecessarySpending(context.Background())
			if err != nil {
				t.Fatalf("DetectUnnecessarySpending() error = %v", err)
			}
			if len(anomalies) != 0 {
				t.Errorf("got %d anomalies, want 0", len(anomalies))
			}
		})
	}
}

func TestMonthlySummary(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, []core.Transaction{
		{Date: date(2025, 1, 1), Category: "Salary", Amount: 5000, Kind: core.Income},
		{Date: date(2025, 1, 10), Category: "Food", Amount: 1200, Kind: core.Expense},
		{Date: date(2025, 2, 10), Category: "Food", Amount: 800, Kind: core.Expense},
		{Date: date(2025, 3, 1), Category: "Salary", Amount: 5000, Kind: core.Income},
	})

	summary, err := New(s).MonthlySummary(context.Background())
	if err != nil {
		t.Fatalf("MonthlySummary() error = %v", err)
	}

	if len(summary) != 3 {
		t.Fatalf("got %d rows, want 3", len(summary))
	}

	want := []core.MonthlySummary{
		{Month: "2025-01", Income: 5000, Expense: 1200, Savings: 3800, SavingsRate: 76},
		{Month: "2025-02", Income: 0, Expense: 800, Savings: -800, SavingsRate: 0},
		{Month: "2025-03", Income: 5000, Expense: 0, Savings: 5000, SavingsRate: 100},
	}
	for i, row := range summary {
		if row != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, row, want[i])
		}
		if row.Savings != row.Income-row.Expense {
			t.Errorf("row %d: savings %v != income %v - expense %v", i, row.Savings, row.Income, row.Expense)
		}
	}
}

func TestMonthlySummary_Empty(t *testing.T) {
	summary, err := New(store.NewMemoryStore()).MonthlySummary(context.Background())
	if err != nil {
		t.Fatalf("MonthlySummary() error = %v", err)
	}
	if len(summary) != 0 {
		t.Errorf("got %d rows, want 0", len(summary))
	}
}

type failingStore struct{}

func (failingStore) List(ctx context.Context, kind core.TxKind) ([]core.Transaction, error) {
	return nil, core.ErrDataUnavailable
}

func (failingStore) Append(ctx context.Context, tx core.Transaction) (int64, error) {
	return 0, core.ErrDataUnavailable
}

func TestStoreFailurePropagates(t *testing.T) {
	a := New(failingStore{})

	if _, err := a.CategorizeSpending(context.Background()); !errors.Is(err, core.ErrDataUnavailable) {
		t.Errorf("CategorizeSpending() error = %v, want ErrDataUnavailable", err)
	}
	if _, err := a.DetectUnnecessarySpending(context.Background()); !errors.Is(err, core.ErrDataUnavailable) {
		t.Errorf("DetectUnnecessarySpending() error = %v, want ErrDataUnavailable", err)
	}
	if _, err := a.MonthlySummary(context.Background()); !errors.Is(err, core.ErrDataUnavailable) {
		t.Errorf("MonthlySummary() error = %v, want ErrDataUnavailable", err)
	}
}
