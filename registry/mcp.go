package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonwraymond/compendium/internal/logger"
	"github.com/jonwraymond/toolfoundation/model"
)

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *MCPError `json:"error,omitempty"`
}

// MCPError is a JSON-RPC error object.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *MCPError) Error() string { return e.Message }

// InitializeResult answers initialize.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// Capabilities advertises the server features. Only tools are served.
type Capabilities struct {
	Tools struct{} `json:"tools"`
}

// ToolsListResult answers tools/list.
type ToolsListResult struct {
	Tools []ToolInfo `json:"tools"`
}

// ToolInfo is a tool as listed to clients.
type ToolInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

type method func(r *Registry, ctx context.Context, params json.RawMessage) (any, error)

var methods = map[string]method{
	"initialize": (*Registry).initialize,
	"tools/list": (*Registry).listTools,
	"tools/call": (*Registry).callTool,
}

// HandleRequest dispatches req and returns its response.
func (r *Registry) HandleRequest(ctx context.Context, req MCPRequest) MCPResponse {
	resp := MCPResponse{JSONRPC: "2.0", ID: req.ID}
	m, ok := methods[req.Method]
	if !ok {
		resp.Error = &MCPError{
			Code:    ErrCodeMethodNotFound,
			Message: fmt.Sprintf("method %s not found", req.Method),
		}
		return resp
	}
	result, err := m(r, ctx, req.Params)
	if err != nil {
		resp.Error = toMCPError(err)
		return resp
	}
	resp.Result = result
	return resp
}

// parseErrorResponse answers a request body that is not JSON.
func parseErrorResponse(err error) MCPResponse {
	return MCPResponse{
		JSONRPC: "2.0",
		Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
	}
}

func (r *Registry) initialize(context.Context, json.RawMessage) (any, error) {
	return InitializeResult{
		ProtocolVersion: model.MCPVersion,
		ServerInfo:      r.config.ServerInfo,
	}, nil
}

func (r *Registry) listTools(ctx context.Context, _ json.RawMessage) (any, error) {
	tools, err := r.ListAll(ctx)
	if err != nil {
		return nil, &MCPError{Code: ErrCodeInternal, Message: err.Error()}
	}
	out := ToolsListResult{Tools: make([]ToolInfo, len(tools))}
	for i, t := range tools {
		out.Tools[i] = ToolInfo{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}
	}
	return out, nil
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (r *Registry) callTool(ctx context.Context, params json.RawMessage) (any, error) {
	var p toolsCallParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &MCPError{Code: ErrCodeInvalidParams, Message: err.Error()}
		}
	}

	result, err := r.Execute(ctx, p.Name, p.Arguments)
	if err != nil {
		logger.FromContext(ctx).Warn("tool call failed",
			zap.String("tool", p.Name),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// toMCPError maps err to its JSON-RPC error. Tool failures that are not
// argument or lookup errors use the execution failure code.
func toMCPError(err error) *MCPError {
	var rpcErr *MCPError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	code := ErrCodeToolExecFailed
	switch {
	case errors.Is(err, ErrToolNotFound):
		code = ErrCodeToolNotFound
	case errors.Is(err, ErrInvalidArguments):
		code = ErrCodeInvalidParams
	}
	return &MCPError{Code: code, Message: err.Error()}
}
