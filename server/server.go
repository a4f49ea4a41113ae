// Package server hosts conversational sessions over WebSocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/engine"
	"github.com/manali-mahadik-10/FinAgent/store"
)

// Config configures the server.
type Config struct {
	// Dispatcher routes each turn to a tool or a conversational reply.
	Dispatcher *engine.Dispatcher

	// AuthFunc validates requests and returns a user ID. If nil, a
	// default user ID is used (not recommended for production).
	AuthFunc func(r *http.Request) (userID string, err error)

	// Conversations persists conversations. If nil, conversations are
	// stored in memory only.
	Conversations store.Conversations
}

// Server is a WebSocket server for the finance agent. Each connection
// holds one session; turns within a session are processed strictly
// sequentially and the history is append-only, mutated only between
// turns.
type Server struct {
	config        Config
	dispatcher    *engine.Dispatcher
	conversations store.Conversations
	upgrader      websocket.Upgrader
}

// session is the per-connection conversation state.
type session struct {
	UserID         string
	ConversationID string
	History        []core.Message
}

// New creates a new server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("server: dispatcher is required")
	}

	conversations := cfg.Conversations
	if conversations == nil {
		conversations = store.NewMemoryConversations()
	}

	return &Server{
		config:        cfg,
		dispatcher:    cfg.Dispatcher,
		conversations: conversations,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}, nil
}

// Handler returns an HTTP handler for WebSocket connections.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleWebSocket)
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	http.Handle("/ws", s.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Printf("Starting finance agent server on %s", addr)
	return http.ListenAndServe(addr, nil)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := "default-user"
	if s.config.AuthFunc != nil {
		var err error
		userID, err = s.config.AuthFunc(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("WebSocket connected for user %s", userID)

	var currentSession *session

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			s.sendError(conn, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "new_conversation":
			currentSession = s.handleNewConversation(r.Context(), conn, userID)

		case "resume_conversation":
			currentSession = s.handleResumeConversation(r.Context(), conn, userID, msg.ConversationID)

		case "message":
			if currentSession == nil {
				s.sendError(conn, "No active conversation. Send 'new_conversation' first.")
				continue
			}
			s.handleMessage(r.Context(), conn, currentSession, msg.Content)

		default:
			s.sendError(conn, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}
	}
}

func (s *Server) handleNewConversation(ctx context.Context, conn *websocket.Conn, userID string) *session {
	conv, err := s.conversations.Create(ctx, userID)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Failed to create conversation: %v", err))
		return nil
	}

	sess := &session{
		UserID:         userID,
		ConversationID: conv.ID,
		History:        []core.Message{},
	}

	s.send(conn, ServerMessage{
		Type:           "conversation_started",
		ConversationID: conv.ID,
	})

	log.Printf("Started conversation %s for user %s", conv.ID, userID)
	return sess
}

func (s *Server) handleResumeConversation(ctx context.Context, conn *websocket.Conn, userID, conversationID string) *session {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		s.sendError(conn, "Conversation not found")
		return nil
	}

	history := make([]core.Message, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		history = append(history, core.Message{
			Role:    core.Role(m.Role),
			Content: m.Content,
		})
	}

	sess := &session{
		UserID:         userID,
		ConversationID: conversationID,
		History:        history,
	}

	s.send(conn, ServerMessage{
		Type:           "conversation_resumed",
		ConversationID: conversationID,
		Messages:       conv.Messages,
	})

	log.Printf("Resumed conversation %s for user %s", conversationID, userID)
	return sess
}

func (s *Server) handleMessage(ctx context.Context, conn *websocket.Conn, sess *session, content string) {
	if content == "" {
		return
	}

	log.Printf("[CONVERSATION %s] USER: %s", sess.ConversationID, truncate(content, 50))

	s.persistMessage(ctx, sess.ConversationID, "user", content)

	reply := s.dispatcher.Dispatch(ctx, sess.History, content)

	sess.History = append(sess.History, core.NewUserMessage(content))
	sess.History = append(sess.History, core.NewAssistantMessage(reply))

	s.persistMessage(ctx, sess.ConversationID, "assistant", reply)

	log.Printf("[CONVERSATION %s] ASSISTANT: %s", sess.ConversationID, truncate(reply, 200))

	s.send(conn, ServerMessage{Type: "text", Content: reply})
	s.send(conn, ServerMessage{Type: "complete"})
}

func (s *Server) persistMessage(ctx context.Context, conversationID, role, content string) {
	err := s.conversations.Append(ctx, &store.AppendMessage{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	})
	if err != nil {
		log.Printf("Failed to persist message: %v", err)
	}
}

func (s *Server) send(conn *websocket.Conn, msg ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, content string) {
	log.Printf("Sending error: %s", content)
	s.send(conn, ServerMessage{Type: "error", Content: content})
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
