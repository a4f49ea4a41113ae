// Package engine routes conversational turns to analytical tools.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/manali-mahadik-10/FinAgent/core"
)

// ToolRegistry manages the fixed set of tools available to a session.
// Tool names are unique; registering a duplicate name replaces the
// earlier tool. The set is expected to be complete before the first turn.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
}

// NewToolRegistry creates an empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]core.Tool),
	}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool core.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// RegisterAll adds multiple tools to the registry.
func (r *ToolRegistry) RegisterAll(tools ...core.Tool) {
	for _, tool := range tools {
		r.Register(tool)
	}
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (core.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tool names, sorted.
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named tool against an utterance. This is the direct
// contract for hosts that already know which tool they want; it fails
// with core.ErrUnknownTool for names not in the registry. The dispatcher
// never surfaces that error to a conversation, it falls back to a plain
// reply instead.
func (r *ToolRegistry) Invoke(ctx context.Context, name, utterance string) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownTool, name)
	}
	return tool.Invoke(ctx, utterance), nil
}

// Specs returns the name/description pairs handed to the intent
// classifier, sorted by name for a stable contract.
func (r *ToolRegistry) Specs() []core.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]core.ToolSpec, 0, len(r.tools))
	for _, tool := range r.tools {
		specs = append(specs, core.ToolSpec{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// toAPITools converts tool specs to Claude API format. Every built-in
// tool is a zero-argument query, so the schema is an empty object.
func toAPITools(specs []core.ToolSpec) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        spec.Name,
				Description: anthropic.String(spec.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]interface{}{},
				},
			},
		})
	}
	return tools
}
