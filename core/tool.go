package core

import "context"

// Tool is a named analytical query exposed to the conversational layer.
//
// Invoke is total over its input domain: implementations catch their own
// internal errors and return descriptive text instead of propagating them,
// since an unrecovered failure here would terminate the user-facing
// conversation. The built-in tools take no semantic parameters and ignore
// their input argument.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) string
}

// ToolSpec is the name/description pair handed to an external intent
// classifier. The classifier sees nothing else about a tool.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage builds a user-authored message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage builds an assistant-authored message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
