package registry

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonwraymond/toolfoundation/model"
)

func newTestRegistry() *Registry {
	return New(Config{
		ServerInfo: ServerInfo{Name: "test", Version: "1.0.0"},
	})
}

func nopHandler(ctx context.Context, args map[string]any) (any, error) {
	return nil, nil
}

var anyObject = map[string]any{"type": "object"}

func echoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "Echoes its arguments",
		InputSchema: anyObject,
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	}
}

func TestNew(t *testing.T) {
	cfg := Config{
		ServerInfo: ServerInfo{
			Name:    "test-server",
			Version: "1.0.0",
		},
	}

	reg := New(cfg)

	if reg == nil {
		t.Fatal("expected non-nil registry")
	}
	if reg.config.ServerInfo.Name != "test-server" {
		t.Errorf("expected server name 'test-server', got %s", reg.config.ServerInfo.Name)
	}
}

func TestRegister(t *testing.T) {
	reg := newTestRegistry()

	callCount := 0
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		callCount++
		return map[string]any{"echo": args["message"]}, nil
	}

	err := reg.Register(Tool{
		Name:        "echo",
		Description: "Echoes back input",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string"},
			},
		},
		Tags:    []string{"echo", "utility"},
		Handler: handler,
	})

	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	ctx := context.Background()
	result, err := reg.Execute(ctx, "echo", map[string]any{"message": "hello"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected handler to be called once, got %d", callCount)
	}

	resultMap, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected result to be map[string]any, got %T", result)
	}

	if resultMap["echo"] != "hello" {
		t.Errorf("expected echo='hello', got %v", resultMap["echo"])
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := newTestRegistry()

	if err := reg.Register(echoTool("tool")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := reg.Register(Tool{Name: "tool", Description: "Tool again", InputSchema: anyObject, Handler: nopHandler})
	if !errors.Is(err, ErrDuplicateTool) {
		t.Errorf("expected ErrDuplicateTool, got %v", err)
	}
}

func TestRegister_NilHandler(t *testing.T) {
	reg := newTestRegistry()

	err := reg.Register(Tool{Name: "tool", Description: "Tool", InputSchema: anyObject})
	if !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestListAll_RegistrationOrder(t *testing.T) {
	reg := newTestRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(echoTool(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	tools, err := reg.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	if strings.Join(names, ",") != "zeta,alpha,mid" {
		t.Errorf("expected registration order, got %v", names)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	reg := New(Config{
		ServerInfo: ServerInfo{
			Name:    "test-server",
			Version: "1.0.0",
		},
	})

	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	}

	resp := reg.HandleRequest(context.Background(), req)

	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	result, ok := resp.Result.(InitializeResult)
	if !ok {
		t.Fatalf("expected InitializeResult, got %T", resp.Result)
	}

	if result.ProtocolVersion != model.MCPVersion {
		t.Errorf("expected protocolVersion %s, got %v", model.MCPVersion, result.ProtocolVersion)
	}
	if result.ServerInfo.Name != "test-server" {
		t.Errorf("expected name 'test-server', got %v", result.ServerInfo.Name)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"serverInfo":{"name":"test-server","version":"1.0.0"}`) {
		t.Errorf("unexpected wire form: %s", raw)
	}
	if !strings.Contains(string(raw), `"capabilities":{"tools":{}}`) {
		t.Errorf("expected tools capability: %s", raw)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	reg := newTestRegistry()

	tool := echoTool("echo")
	tool.Title = "Echo"
	_ = reg.Register(tool)

	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := reg.HandleRequest(context.Background(), req)

	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	tools := resp.Result.(ToolsListResult).Tools

	if len(tools) == 0 {
		t.Fatal("expected at least one tool")
	}

	if tools[0].Name != "echo" {
		t.Errorf("expected tool name 'echo', got %v", tools[0].Name)
	}
	if tools[0].Title != "Echo" {
		t.Errorf("expected tool title 'Echo', got %v", tools[0].Title)
	}
}

func TestHandleRequest_ToolsCall(t *testing.T) {
	reg := newTestRegistry()

	handler := func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{"result": args["input"]}, nil
	}

	_ = reg.Register(Tool{Name: "process", Description: "Processes input", InputSchema: anyObject, Handler: handler})

	params, _ := json.Marshal(map[string]any{
		"name":      "process",
		"arguments": map[string]any{"input": "test"},
	})

	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	}

	resp := reg.HandleRequest(context.Background(), req)

	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}

	resultMap := resp.Result.(map[string]any)
	if resultMap["result"] != "test" {
		t.Errorf("expected result='test', got %v", resultMap["result"])
	}
}

func TestHandleRequest_ToolsCall_NotFound(t *testing.T) {
	reg := newTestRegistry()

	params, _ := json.Marshal(map[string]any{
		"name":      "missing",
		"arguments": map[string]any{},
	})

	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	}

	resp := reg.HandleRequest(context.Background(), req)

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != ErrCodeToolNotFound {
		t.Errorf("expected ErrCodeToolNotFound, got %d", resp.Error.Code)
	}
}

func TestHandleRequest_ToolsCall_ErrorCodes(t *testing.T) {
	reg := newTestRegistry()

	fail := func(name string, err error) Tool {
		return Tool{
			Name:        name,
			Description: "Fails",
			InputSchema: anyObject,
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return nil, err
			},
		}
	}
	_ = reg.Register(fail("strict", fmt.Errorf("%w: missing field", ErrInvalidArguments)))
	_ = reg.Register(fail("broken", errors.New("boom")))
	_ = reg.Register(fail("rpc", &MCPError{Code: ErrCodeInternal, Message: "internal"}))

	tests := []struct {
		tool string
		code int
	}{
		{"strict", ErrCodeInvalidParams},
		{"broken", ErrCodeToolExecFailed},
		{"rpc", ErrCodeInternal},
		{"missing", ErrCodeToolNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			params, _ := json.Marshal(map[string]any{"name": tt.tool})
			resp := reg.HandleRequest(context.Background(), MCPRequest{
				JSONRPC: "2.0",
				ID:      1,
				Method:  "tools/call",
				Params:  params,
			})
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, resp.Error.Code)
			}
		})
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	reg := newTestRegistry()

	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "unknown/method",
	}

	resp := reg.HandleRequest(context.Background(), req)
	if resp.Error == nil {
		t.Fatal("expected error for unknown method")
	}
	if resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("expected ErrCodeMethodNotFound, got %d", resp.Error.Code)
	}
}

func TestStats(t *testing.T) {
	reg := newTestRegistry()

	_ = reg.Register(echoTool("tool1"))
	_ = reg.Register(echoTool("tool2"))

	stats := reg.Stats()

	if stats.TotalTools != 2 {
		t.Errorf("expected 2 total tools, got %d", stats.TotalTools)
	}
}

func TestLifecycle(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	if err := reg.HealthCheck(ctx); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}

	if err := reg.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := reg.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	if err := reg.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	if err := reg.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestGetTool_Version(t *testing.T) {
	reg := newTestRegistry()

	tool := echoTool("versioned")
	tool.Version = "2.1.0"
	_ = reg.Register(tool)

	got, err := reg.GetTool(context.Background(), "versioned")
	if err != nil {
		t.Fatalf("GetTool failed: %v", err)
	}
	if got.Version != "2.1.0" {
		t.Errorf("expected version 2.1.0, got %s", got.Version)
	}

	_, err = reg.GetTool(context.Background(), "nonexistent")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestServeStdio(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.Register(echoTool("echo"))

	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`{not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"x":"y"}}}`,
	}, "\n"))
	var out bytes.Buffer

	if err := ServeStdio(context.Background(), reg, in, &out); err != nil {
		t.Fatalf("ServeStdio failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var responses []MCPResponse
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		responses = append(responses, resp)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}
	if responses[0].Error != nil {
		t.Errorf("initialize failed: %v", responses[0].Error)
	}
	if responses[1].Error == nil || responses[1].Error.Code != ErrCodeParseError {
		t.Errorf("expected parse error, got %+v", responses[1].Error)
	}
	result, ok := responses[2].Result.(map[string]any)
	if !ok || result["x"] != "y" {
		t.Errorf("expected echoed arguments, got %v", responses[2].Result)
	}
}

func TestServeStdio_Cancelled(t *testing.T) {
	reg := newTestRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	err := ServeStdio(ctx, reg, in, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestServeHTTP(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.Register(echoTool("echo"))

	srv := httptest.NewServer(ServeHTTP(reg))
	defer srv.Close()

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp, err := http.Post(srv.URL, "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var mcpResp MCPResponse
	if err := json.NewDecoder(resp.Body).Decode(&mcpResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if mcpResp.Error != nil {
		t.Fatalf("expected no error, got %v", mcpResp.Error)
	}
	resultMap, ok := mcpResp.Result.(map[string]any)
	if !ok {
		t.Fatalf("expected result map, got %T", mcpResp.Result)
	}
	tools, ok := resultMap["tools"].([]any)
	if !ok || len(tools) == 0 {
		t.Fatal("expected at least one tool")
	}
}

func TestServeSSE(t *testing.T) {
	reg := newTestRegistry()
	_ = reg.Register(echoTool("echo"))

	srv := httptest.NewServer(ServeSSE(reg))
	defer srv.Close()

	reqBody := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp, err := http.Post(srv.URL, "application/json", reqBody)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	scanner := bufio.NewScanner(resp.Body)
	var dataLine string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data: ") {
			dataLine = strings.TrimPrefix(line, "data: ")
			break
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner failed: %v", err)
	}
	if dataLine == "" {
		t.Fatal("expected SSE data line")
	}

	var mcpResp MCPResponse
	if err := json.Unmarshal([]byte(dataLine), &mcpResp); err != nil {
		t.Fatalf("unmarshal SSE data failed: %v", err)
	}
	if mcpResp.Error != nil {
		t.Fatalf("expected no error, got %v", mcpResp.Error)
	}
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	reg := newTestRegistry()

	srv := httptest.NewServer(ServeHTTP(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestServeHTTP_InvalidJSON(t *testing.T) {
	reg := newTestRegistry()

	srv := httptest.NewServer(ServeHTTP(reg))
	defer srv.Close()

	body := bytes.NewBufferString(`{invalid json`)
	resp, err := http.Post(srv.URL, "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var mcpResp MCPResponse
	_ = json.NewDecoder(resp.Body).Decode(&mcpResp)
	if mcpResp.Error == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if mcpResp.Error.Code != ErrCodeParseError {
		t.Errorf("expected ErrCodeParseError, got %d", mcpResp.Error.Code)
	}
}

func TestRouter(t *testing.T) {
	reg := newTestRegistry()
	srv := httptest.NewServer(Router(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before start, got %d", resp.StatusCode)
	}

	if err := reg.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 after start, got %d", resp.StatusCode)
	}

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	resp, err = http.Post(srv.URL+"/mcp", "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var mcpResp MCPResponse
	if err := json.NewDecoder(resp.Body).Decode(&mcpResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if mcpResp.Error != nil {
		t.Errorf("expected no error, got %v", mcpResp.Error)
	}

	resp, err = http.Get(srv.URL + "/mcp")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET /mcp, got %d", resp.StatusCode)
	}
}
