// Package store provides persistence for transactions and conversations.
package store

import (
	"context"
	"time"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// TransactionStore is the read/write contract the analytical layer needs.
// List returns transactions ordered by date then id; an empty kind returns
// every record. The analyzer and forecaster re-read through this interface
// on every call and never cache results.
type TransactionStore interface {
	List(ctx context.Context, kind core.TxKind) ([]core.Transaction, error)
	Append(ctx context.Context, tx core.Transaction) (int64, error)
}

// Conversation is chat session metadata.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredMessage is one persisted conversation turn.
type StoredMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationWithMessages bundles a conversation and its full history.
type ConversationWithMessages struct {
	Conversation
	Messages []StoredMessage `json:"messages"`
}

// AppendMessage is the write request for persisting one turn.
type AppendMessage struct {
	ConversationID string
	Role           string
	Content        string
}

// Conversations persists chat history across sessions.
type Conversations interface {
	Create(ctx context.Context, userID string) (*Conversation, error)
	Get(ctx context.Context, id string) (*ConversationWithMessages, error)
	Append(ctx context.Context, msg *AppendMessage) error
}
