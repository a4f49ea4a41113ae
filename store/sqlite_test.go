package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/manali-mahadik-10/FinAgent/core"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "finance.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txs := []core.Transaction{
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 300, Description: "groceries", Kind: core.Expense},
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Category: "Salary", Amount: 5000, Kind: core.Income},
		{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Category: "Travel", Amount: 120, Kind: core.Expense},
	}
	for i, tx := range txs {
		id, err := s.Append(ctx, tx)
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if id != int64(i+1) {
			t.Errorf("Append() id = %d, want %d", id, i+1)
		}
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d transactions, want 3", len(all))
	}
	// Ordered by date, then insertion id.
	if all[0].Category != "Salary" || all[1].Category != "Food" || all[2].Category != "Travel" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].Category, all[1].Category, all[2].Category)
	}
	if all[1].Description != "groceries" {
		t.Errorf("description = %q, want %q", all[1].Description, "groceries")
	}

	expenses, err := s.List(ctx, core.Expense)
	if err != nil {
		t.Fatalf("List(expense) error = %v", err)
	}
	if len(expenses) != 2 {
		t.Errorf("List(expense) returned %d transactions, want 2", len(expenses))
	}
	for _, tx := range expenses {
		if tx.Kind != core.Expense {
			t.Errorf("List(expense) returned kind %q", tx.Kind)
		}
	}
}

func TestMemoryStoreOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if _, err := s.Append(ctx, core.Transaction{Date: d, Category: "X", Amount: 1, Kind: core.Expense}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	txs, err := s.List(ctx, core.Expense)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Date.Before(txs[i-1].Date) {
			t.Errorf("transactions out of date order at %d", i)
		}
	}
}

func TestConversationsRoundTrip(t *testing.T) {
	s, err := NewSQLiteConversations(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("NewSQLiteConversations() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	conv, err := s.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	turns := []AppendMessage{
		{ConversationID: conv.ID, Role: "user", Content: "analyze my spending"},
		{ConversationID: conv.ID, Role: "assistant", Content: "📊 Spending by Category..."},
	}
	for i := range turns {
		if err := s.Append(ctx, &turns[i]); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.Get(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Get() returned %d messages, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != "user" || got.Messages[1].Role != "assistant" {
		t.Errorf("message roles = %q, %q", got.Messages[0].Role, got.Messages[1].Role)
	}

	if _, err := s.Get(ctx, "no-such-id"); err == nil {
		t.Error("Get() on missing conversation did not fail")
	}
}
