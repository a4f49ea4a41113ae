package engine

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// Decision is the outcome of intent classification for one utterance.
// An empty Tool means "no tool": Reply carries the conversational answer
// to use instead.
type Decision struct {
	Tool  string
	Reply string
}

// Classifier chooses which tool, if any, should answer an utterance.
// Implementations see only each tool's name and description, never the
// implementation behind it.
type Classifier interface {
	Classify(ctx context.Context, history []core.Message, utterance string, specs []core.ToolSpec) (Decision, error)
}

// ClaudeClassifier uses the Claude API for intent classification. The
// model is offered the registry's tools; when it emits a tool_use block
// that becomes the decision, otherwise its text is the conversational
// reply.
type ClaudeClassifier struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	system    string
}

// ClaudeConfig configures the Claude-backed classifier.
type ClaudeConfig struct {
	// Model is the Claude model name.
	Model string

	// MaxTokens is the maximum response tokens.
	MaxTokens int64

	// SystemPrompt sets the assistant's persona and routing guidance.
	SystemPrompt string
}

// NewClaudeClassifier creates a classifier using the ANTHROPIC_API_KEY
// environment variable for authentication.
func NewClaudeClassifier(cfg ClaudeConfig) *ClaudeClassifier {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	return &ClaudeClassifier{
		client:    anthropic.NewClient(),
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
		system:    cfg.SystemPrompt,
	}
}

// Classify sends the history and utterance to Claude with the tool specs
// attached and reads back either a tool choice or a plain reply.
func (c *ClaudeClassifier) Classify(ctx context.Context, history []core.Message, utterance string, specs []core.ToolSpec) (Decision, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case core.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(utterance)))

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  messages,
		Tools:     toAPITools(specs),
	}
	if c.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Decision{}, fmt.Errorf("classify: %w", err)
	}

	var decision Decision
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			decision.Reply += b.Text
		case anthropic.ToolUseBlock:
			if decision.Tool == "" {
				decision.Tool = b.Name
			}
		}
	}
	return decision, nil
}
