// Package tools builds the analytical tools exposed to the
// conversational layer.
package tools

import (
	"context"
	"fmt"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// HandlerFunc runs a tool's underlying analytical query. Returning an
// error is fine: the built tool converts it to descriptive text before
// it can cross the dispatch boundary.
type HandlerFunc func(ctx context.Context, input string) (string, error)

// Builder assembles a Tool fluently:
//
//	tools.New("Monthly_Summary").
//		Description("Give income vs expense summary.").
//		Handler(fn)
type Builder struct {
	name        string
	description string
}

// New starts building a tool with the given unique name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Description sets the human-readable description the intent classifier
// sees.
func (b *Builder) Description(d string) *Builder {
	b.description = d
	return b
}

// Handler finishes the build. The resulting Tool's Invoke is total: any
// handler error becomes an apologetic, informative reply instead of a
// propagated failure.
func (b *Builder) Handler(fn HandlerFunc) core.Tool {
	return &builtTool{name: b.name, description: b.description, handler: fn}
}

type builtTool struct {
	name        string
	description string
	handler     HandlerFunc
}

func (t *builtTool) Name() string        { return t.name }
func (t *builtTool) Description() string { return t.description }

func (t *builtTool) Invoke(ctx context.Context, input string) string {
	out, err := t.handler(ctx, input)
	if err != nil {
		return fmt.Sprintf("Sorry, I couldn't complete that: %v.", err)
	}
	return out
}
