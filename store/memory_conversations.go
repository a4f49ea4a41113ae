package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryConversations keeps chat history in memory only. It is the
// default when no persistent store is configured.
type MemoryConversations struct {
	mu    sync.RWMutex
	convs map[string]*ConversationWithMessages
}

// NewMemoryConversations creates an in-memory conversation store.
func NewMemoryConversations() *MemoryConversations {
	return &MemoryConversations{convs: make(map[string]*ConversationWithMessages)}
}

// Create starts a new conversation for the given user.
func (m *MemoryConversations) Create(ctx context.Context, userID string) (*Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	conv := &ConversationWithMessages{
		Conversation: Conversation{
			ID:        uuid.New().String(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	m.convs[conv.ID] = conv
	return &conv.Conversation, nil
}

// Get retrieves a conversation with its message history.
func (m *MemoryConversations) Get(ctx context.Context, id string) (*ConversationWithMessages, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.convs[id]
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}

	out := *conv
	out.Messages = append([]StoredMessage(nil), conv.Messages...)
	return &out, nil
}

// Append adds one turn to a conversation.
func (m *MemoryConversations) Append(ctx context.Context, msg *AppendMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.convs[msg.ConversationID]
	if !ok {
		return fmt.Errorf("conversation not found")
	}

	now := time.Now().UTC()
	conv.Messages = append(conv.Messages, StoredMessage{
		ID:             uuid.New().String(),
		ConversationID: msg.ConversationID,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      now,
	})
	conv.UpdatedAt = now
	return nil
}
