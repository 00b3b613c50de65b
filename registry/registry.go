package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo
}

// ServerInfo describes this MCP server for initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type registeredTool struct {
	tool    model.Tool
	handler ToolHandler
}

// Registry holds the tools a server exposes, in registration order.
type Registry struct {
	mu     sync.RWMutex
	config Config
	order  []string
	tools  map[string]registeredTool

	started bool
}

// New creates a new Registry with the given config.
func New(cfg Config) *Registry {
	return &Registry{
		config: cfg,
		tools:  make(map[string]registeredTool),
	}
}

// Register adds t. Names are unique and the handler is required.
func (r *Registry) Register(t Tool) error {
	tool := t.model()
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}
	id := tool.ToolID()
	if t.Handler == nil {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, id)
	}
	r.tools[id] = registeredTool{tool: tool, handler: t.Handler}
	r.order = append(r.order, id)
	return nil
}

// ListAll returns all registered tools in registration order.
func (r *Registry) ListAll(ctx context.Context) ([]model.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]model.Tool, 0, len(r.order))
	for _, id := range r.order {
		tools = append(tools, r.tools[id].tool)
	}
	return tools, nil
}

// GetTool returns a tool by ID.
func (r *Registry) GetTool(ctx context.Context, id string) (model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tools[id]
	if !ok {
		return model.Tool{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return rt.tool, nil
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	rt, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return rt.handler(ctx, args)
}

// Start marks the registry as serving.
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true
	return nil
}

// Stop marks the registry as stopped.
func (r *Registry) Stop() error {
	r.mu.Lock()
	r.started = false
	r.mu.Unlock()
	return nil
}

// RegistryStats returns registry statistics.
type RegistryStats struct {
	TotalTools int
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RegistryStats{TotalTools: len(r.tools)}
}

// HealthCheck returns nil if the registry is healthy.
func (r *Registry) HealthCheck(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.started {
		return ErrNotStarted
	}
	return nil
}
