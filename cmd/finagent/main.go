// FinAgent: a conversational personal-finance assistant.
// Claude routes each user message to one of four analytical tools over
// the local transaction store.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/manali-mahadik-10/FinAgent/analyzer"
	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/engine"
	"github.com/manali-mahadik-10/FinAgent/forecast"
	"github.com/manali-mahadik-10/FinAgent/server"
	"github.com/manali-mahadik-10/FinAgent/store"
	"github.com/manali-mahadik-10/FinAgent/tools"
)

const systemPrompt = `You are FinAgent, a personal finance assistant. You have tools that
analyze the user's own transaction history: spending by category, excessive
expense detection, next-month expense prediction, and monthly income vs
expense summaries. Use a tool whenever the user asks about their finances;
answer conversationally otherwise. Keep replies concise and friendly.`

func main() {
	_ = godotenv.Load()

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Fatal("❌ ANTHROPIC_API_KEY environment variable is required")
	}

	dbPath := os.Getenv("FINAGENT_DB")
	if dbPath == "" {
		dbPath = "finance.db"
	}

	model := os.Getenv("FINAGENT_MODEL")
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	txStore, err := store.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer txStore.Close()
	log.Printf("✅ Transaction store ready (%s)", dbPath)

	chatStore, err := store.NewSQLiteConversations("chat_history.db")
	if err != nil {
		log.Printf("⚠️ Failed to initialize chat store: %v (using in-memory)", err)
		chatStore = nil
	} else {
		defer chatStore.Close()
		log.Println("✅ Chat history store ready (chat_history.db)")
	}

	spending := analyzer.New(txStore)
	predictor := forecast.New(txStore)

	// Train up front like the original agent did. Too little history is
	// not fatal: prediction requests report it until data accumulates.
	score, err := predictor.Train(context.Background())
	switch {
	case err == nil:
		log.Printf("✅ Forecast model trained (R² %.2f)", score)
	case errors.Is(err, core.ErrInsufficientData):
		log.Printf("⚠️ Forecast model not trained yet: %v", err)
	default:
		log.Fatal(err)
	}

	registry := engine.NewToolRegistry()
	registry.RegisterAll(tools.FinanceTools(spending, predictor)...)
	log.Printf("✅ Registered tools: %v", registry.List())

	classifier := engine.NewClaudeClassifier(engine.ClaudeConfig{
		Model:        model,
		MaxTokens:    1024,
		SystemPrompt: systemPrompt,
	})

	cfg := server.Config{
		Dispatcher: engine.NewDispatcher(registry, classifier),
	}
	if chatStore != nil {
		cfg.Conversations = chatStore
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws", port)
	log.Printf("💚 Health check: http://localhost:%s/health", port)

	if err := srv.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
