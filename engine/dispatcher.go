package engine

import (
	"context"
	"log"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// fallbackReply is used when neither a tool nor the classifier produced
// anything usable. The conversation must always get visible text back.
const fallbackReply = "I'm not sure how to help with that. You can ask me to analyze " +
	"your spending, find unnecessary expenses, predict next month's expenses, " +
	"or summarize your monthly finances."

// errorReply is the user-facing text for a classifier transport failure.
const errorReply = "Sorry, I ran into a problem understanding that. Please try again."

// Dispatcher runs one conversational turn: an external classifier picks
// a tool name (or none) and the dispatcher invokes it. No error escapes
// Dispatch; every failure degrades to an informative reply.
type Dispatcher struct {
	registry   *ToolRegistry
	classifier Classifier
}

// NewDispatcher creates a dispatcher over the given registry and
// classifier.
func NewDispatcher(registry *ToolRegistry, classifier Classifier) *Dispatcher {
	return &Dispatcher{registry: registry, classifier: classifier}
}

// Registry exposes the dispatcher's tool registry.
func (d *Dispatcher) Registry() *ToolRegistry { return d.registry }

// Dispatch handles one utterance against the prior turn history and
// returns the reply text. A tool name the registry doesn't know degrades
// to a conversational answer rather than failing; the history itself is
// owned by the caller and only read here.
func (d *Dispatcher) Dispatch(ctx context.Context, history []core.Message, utterance string) string {
	decision, err := d.classifier.Classify(ctx, history, utterance, d.registry.Specs())
	if err != nil {
		log.Printf("Classifier error: %v", err)
		return errorReply
	}

	if decision.Tool == "" {
		if decision.Reply == "" {
			return fallbackReply
		}
		return decision.Reply
	}

	tool, ok := d.registry.Get(decision.Tool)
	if !ok {
		// The classifier named a tool we don't have. Fall back to its
		// own text if any rather than surfacing an error.
		log.Printf("Unknown tool %q requested, falling back to conversational reply", decision.Tool)
		if decision.Reply != "" {
			return decision.Reply
		}
		return fallbackReply
	}

	return tool.Invoke(ctx, utterance)
}
