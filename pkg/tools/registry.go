// Package tools implements the tool catalog and the dispatcher that turns every
// invocation into exactly one result envelope.
package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"modelbridge/pkg/providers"
)

// Tool is one catalog entry backed by a provider route.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Kind returns the logical operation behind the name.
	Kind() providers.ToolKind

	// Description returns a human-readable description for the caller.
	Description() string

	// InputSchema returns the JSON schema for tool arguments.
	InputSchema() *jsonschema.Schema

	// Execute runs the tool with the given arguments.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Registry holds the catalog. Iteration follows registration order, which is
// fixed per provider profile.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
// Returns an error if a tool with the same name already exists.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers a tool and panics on error.
func (r *Registry) MustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names in catalog order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Tools returns the registered tools in catalog order.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Descriptor is the wire form of a catalog entry.
type Descriptor struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema" yaml:"inputSchema"`
}

// Descriptors returns the catalog in order.
func (r *Registry) Descriptors() []Descriptor {
	tools := r.Tools()
	out := make([]Descriptor, 0, len(tools))
	for _, t := range tools {
		out = append(out, Descriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return out
}
