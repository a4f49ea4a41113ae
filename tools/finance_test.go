package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/manali-mahadik-10/FinAgent/analyzer"
	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/forecast"
	"github.com/manali-mahadik-10/FinAgent/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuilderConvertsErrorsToText(t *testing.T) {
	tool := New("Broken").
		Description("always fails").
		Handler(func(ctx context.Context, _ string) (string, error) {
			return "", errors.New("store exploded")
		})

	out := tool.Invoke(context.Background(), "anything")
	if out == "" {
		t.Fatal("Invoke() returned empty text for a failing handler")
	}
	if !strings.Contains(out, "store exploded") {
		t.Errorf("Invoke() = %q, want the failure described", out)
	}
}

func TestFinanceToolNames(t *testing.T) {
	s := store.NewMemoryStore()
	all := FinanceTools(analyzer.New(s), forecast.New(s))

	want := []string{
		"Analyze_Spending",
		"Detect_Unnecessary_Spending",
		"Predict_Next_Month",
		"Monthly_Summary",
	}
	if len(all) != len(want) {
		t.Fatalf("got %d tools, want %d", len(all), len(want))
	}
	for i, tool := range all {
		if tool.Name() != want[i] {
			t.Errorf("tool %d = %q, want %q", i, tool.Name(), want[i])
		}
		if tool.Description() == "" {
			t.Errorf("tool %q has no description", tool.Name())
		}
	}
}

func TestToolsOnEmptyStore(t *testing.T) {
	s := store.NewMemoryStore()
	a := analyzer.New(s)
	p := forecast.New(s)

	tests := []struct {
		tool core.Tool
		want string
	}{
		{NewAnalyzeSpending(a), "No spending data available yet."},
		{NewDetectUnnecessarySpending(a), "✅ No excessive spending detected."},
		{NewMonthlySummary(a), "No monthly summary data found."},
	}
	for _, tt := range tests {
		t.Run(tt.tool.Name(), func(t *testing.T) {
			if got := tt.tool.Invoke(context.Background(), ""); got != tt.want {
				t.Errorf("Invoke() = %q, want %q", got, tt.want)
			}
		})
	}

	// Prediction before training degrades to apologetic text, never an
	// error crossing the invoke boundary.
	out := NewPredictNextMonth(p).Invoke(context.Background(), "")
	if !strings.Contains(out, "not trained") {
		t.Errorf("Invoke() = %q, want untrained model explained", out)
	}
}

func TestAnalyzeSpendingOutput(t *testing.T) {
	s := store.NewMemoryStore()
	txs := []core.Transaction{
		{Date: date(2025, 1, 5), Category: "Food", Amount: 300, Kind: core.Expense},
		{Date: date(2025, 1, 7), Category: "Food", Amount: 200, Kind: core.Expense},
		{Date: date(2025, 1, 9), Category: "Travel", Amount: 120.5, Kind: core.Expense},
	}
	for _, tx := range txs {
		if _, err := s.Append(context.Background(), tx); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	out := NewAnalyzeSpending(analyzer.New(s)).Invoke(context.Background(), "")
	for _, want := range []string{"**Food** → ₹500.00 total (2 txns)", "**Travel** → ₹120.50 total (1 txns)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Invoke() output missing %q:\n%s", want, out)
		}
	}
}

func TestDetectUnnecessaryOutputRankedByExcess(t *testing.T) {
	s := store.NewMemoryStore()
	txs := []core.Transaction{
		// Food: mean 457.5, the 900 flags with excess 442.5.
		{Date: date(2025, 1, 5), Category: "Food", Amount: 300, Kind: core.Expense},
		{Date: date(2025, 1, 10), Category: "Food", Amount: 320, Kind: core.Expense},
		{Date: date(2025, 1, 15), Category: "Food", Amount: 310, Kind: core.Expense},
		{Date: date(2025, 1, 20), Category: "Food", Amount: 900, Kind: core.Expense},
		// Shopping: mean 1050, the 3000 flags with excess 1950.
		{Date: date(2025, 1, 2), Category: "Shopping", Amount: 400, Kind: core.Expense},
		{Date: date(2025, 1, 8), Category: "Shopping", Amount: 350, Kind: core.Expense},
		{Date: date(2025, 1, 12), Category: "Shopping", Amount: 450, Kind: core.Expense},
		{Date: date(2025, 1, 25), Category: "Shopping", Amount: 3000, Kind: core.Expense},
	}
	for _, tx := range txs {
		if _, err := s.Append(context.Background(), tx); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	out := NewDetectUnnecessarySpending(analyzer.New(s)).Invoke(context.Background(), "")
	shoppingIdx := strings.Index(out, "Shopping")
	foodIdx := strings.Index(out, "Food")
	if shoppingIdx == -1 || foodIdx == -1 {
		t.Fatalf("expected both categories flagged:\n%s", out)
	}
	if shoppingIdx > foodIdx {
		t.Errorf("overspends not ranked by excess descending:\n%s", out)
	}
}
