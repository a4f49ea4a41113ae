package server

import "github.com/manali-mahadik-10/FinAgent/store"

// ClientMessage is a message received over the WebSocket.
type ClientMessage struct {
	// Type is one of: new_conversation, resume_conversation, message.
	Type string `json:"type"`

	// Content is the user utterance for type "message".
	Content string `json:"content,omitempty"`

	// ConversationID identifies the conversation to resume.
	ConversationID string `json:"conversation_id,omitempty"`
}

// ServerMessage is a message sent over the WebSocket.
type ServerMessage struct {
	// Type is one of: conversation_started, conversation_resumed,
	// text, complete, error.
	Type string `json:"type"`

	// Content carries reply or error text.
	Content string `json:"content,omitempty"`

	// ConversationID identifies the active conversation.
	ConversationID string `json:"conversation_id,omitempty"`

	// Messages is the prior history sent on resume.
	Messages []store.StoredMessage `json:"messages,omitempty"`
}
