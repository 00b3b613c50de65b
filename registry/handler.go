package registry

import (
	"context"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler runs a tool call. args is the decoded arguments object, never
// nil. The result is encoded as the JSON-RPC result.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// Tool declares a tool served by a Registry.
type Tool struct {
	Name        string
	Title       string
	Description string
	// InputSchema is the JSON schema of the arguments object.
	InputSchema map[string]any
	Tags        []string
	Version     string
	Handler     ToolHandler
}

func (t Tool) model() model.Tool {
	return model.Tool{
		Tool: mcp.Tool{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.InputSchema,
		},
		Version: t.Version,
		Tags:    model.NormalizeTags(t.Tags),
	}
}
