package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/flarexio/agrimithra"
)

func TestUnmarshalInitializeRequest(t *testing.T) {
	assert := assert.New(t)

	input := []byte(`{
	  "jsonrpc": "2.0",
	  "id": 1,
	  "method": "initialize",
	  "params": {
	    "protocolVersion": "2024-11-05",
	    "capabilities": {
	      "roots": {
	        "listChanged": true
	      },
	      "sampling": {},
	      "elicitation": {}
	    },
	    "clientInfo": {
	      "name": "ExampleClient",
	      "title": "Example Client Display Name",
	      "version": "1.0.0"
	    }
	  }
	}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	var params mcp.InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(mcp.JSONRPC_VERSION, req.JSONRPC)
	assert.Equal(mcp.NewRequestId(int64(1)), req.ID)
	assert.Equal(mcp.MethodInitialize, req.Method)
	assert.Equal("2024-11-05", params.ProtocolVersion)
}

func TestUnmarshalCallToolRequest(t *testing.T) {
	assert := assert.New(t)

	input := []byte(`{
	  "jsonrpc": "2.0",
	  "id": 2,
	  "method": "tools/call",
	  "params": {
	    "name": "crop_guide",
	    "arguments": {
	      "label": "Rice___Leaf_blast"
	    }
	  }
	}`)

	var req JSONRPCRequest
	if err := json.Unmarshal(input, &req); err != nil {
		assert.Fail(err.Error())
		return
	}

	var params mcp.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(mcp.JSONRPC_VERSION, req.JSONRPC)
	assert.Equal(mcp.NewRequestId(int64(2)), req.ID)
	assert.Equal(mcp.MethodToolsCall, req.Method)
	assert.Equal(ToolCropGuide, params.Name)
	assert.Contains(params.Arguments, "label")

	var callToolReq mcp.CallToolRequest
	if err := json.Unmarshal(input, &callToolReq); err != nil {
		assert.Fail(err.Error())
		return
	}

	label, err := callToolReq.RequireString("label")
	assert.NoError(err)
	assert.Equal("Rice___Leaf_blast", label)
}

type stubService struct {
	agrimithra.Service
	added []agrimithra.Document
}

func (svc *stubService) Ask(ctx context.Context, req agrimithra.AskRequest) (*agrimithra.Answer, error) {
	return &agrimithra.Answer{
		Query:    req.Query,
		Category: agrimithra.CategoryWeather,
		Answer:   "About the weather information: rain expected",
	}, nil
}

func (svc *stubService) AddDocument(ctx context.Context, doc agrimithra.Document) (agrimithra.AddStatus, error) {
	for _, d := range svc.added {
		if d.Key() == doc.Key() {
			return agrimithra.AddStatusError, agrimithra.ErrDocumentExists
		}
	}

	svc.added = append(svc.added, doc)
	return agrimithra.AddStatusSuccess, nil
}

func (svc *stubService) Guide(ctx context.Context, label string) (string, error) {
	if agrimithra.ParseLabel(label) != "Rice" {
		return "", agrimithra.ErrGuideNotFound
	}

	return "## Comprehensive Guide: Rice (Paddy)", nil
}

func callTool(t *testing.T, endpoint MCPEndpoint, name string, args map[string]any) mcp.JSONRPCMessage {
	params, err := json.Marshal(map[string]any{
		"name":      name,
		"arguments": args,
	})

	if err != nil {
		t.Fatal(err)
	}

	return endpoint(context.Background(), JSONRPCRequest{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(int64(1)),
		Method:  mcp.MethodToolsCall,
		Params:  params,
	})
}

func toolText(t *testing.T, msg mcp.JSONRPCMessage) (string, bool) {
	resp, ok := msg.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("unexpected message: %T", msg)
	}

	result, ok := resp.Result.(*mcp.CallToolResult)
	if !ok || len(result.Content) == 0 {
		t.Fatalf("unexpected result: %T", resp.Result)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content: %T", result.Content[0])
	}

	return text.Text, result.IsError
}

func TestTools(t *testing.T) {
	assert := assert.New(t)

	tools := Tools()

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}

	assert.Equal([]string{
		ToolAskAdvisor,
		ToolSearchKnowledge,
		ToolAddDocument,
		ToolListCategories,
		ToolCropGuide,
	}, names)

	assert.Contains(tools[0].InputSchema.Required, "query")
	assert.Contains(tools[4].InputSchema.Required, "label")
	assert.Contains(categoryIDs(), string(agrimithra.CategoryGeneral))
}

func TestCallToolEndpoint(t *testing.T) {
	assert := assert.New(t)

	svc := new(stubService)
	endpoint := CallToolEndpoint(svc)

	text, isError := toolText(t, callTool(t, endpoint, ToolAskAdvisor, map[string]any{
		"query": "Will it rain tomorrow?",
	}))

	assert.False(isError)

	var answer agrimithra.Answer
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(agrimithra.CategoryWeather, answer.Category)
	assert.Equal("Will it rain tomorrow?", answer.Query)

	_, isError = toolText(t, callTool(t, endpoint, ToolAskAdvisor, map[string]any{}))
	assert.True(isError, "query is required")

	args := map[string]any{
		"title":   "Banana Sigatoka",
		"content": "Remove infected leaves.",
	}

	text, isError = toolText(t, callTool(t, endpoint, ToolAddDocument, args))
	assert.False(isError)
	assert.Contains(text, `"status": "success"`)

	text, isError = toolText(t, callTool(t, endpoint, ToolAddDocument, args))
	assert.True(isError)
	assert.Contains(text, agrimithra.ErrDocumentExists.Error())

	text, isError = toolText(t, callTool(t, endpoint, ToolCropGuide, map[string]any{
		"label": "Rice___Leaf_blast",
	}))

	assert.False(isError)
	assert.Equal("## Comprehensive Guide: Rice (Paddy)", text)

	_, isError = toolText(t, callTool(t, endpoint, ToolCropGuide, map[string]any{
		"label": "Mango___healthy",
	}))

	assert.True(isError)
}

func TestCallToolUnknownTool(t *testing.T) {
	assert := assert.New(t)

	msg := callTool(t, CallToolEndpoint(new(stubService)), "get_weather", nil)

	resp, ok := msg.(mcp.JSONRPCError)
	if !ok {
		assert.Fail("expected a JSON-RPC error")
		return
	}

	assert.Equal(mcp.INVALID_PARAMS, resp.Error.Code)
}

func TestInitializeEndpoint(t *testing.T) {
	assert := assert.New(t)

	params := []byte(`{"protocolVersion":"1999-01-01","capabilities":{},"clientInfo":{"name":"test","version":"0"}}`)

	msg := InitializeEndpoint(new(stubService))(context.Background(), JSONRPCRequest{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(int64(1)),
		Method:  mcp.MethodInitialize,
		Params:  params,
	})

	resp, ok := msg.(mcp.JSONRPCResponse)
	if !ok {
		assert.Fail("expected a JSON-RPC response")
		return
	}

	result, ok := resp.Result.(*mcp.InitializeResult)
	if !ok {
		assert.Fail("expected an initialize result")
		return
	}

	assert.Equal(mcp.LATEST_PROTOCOL_VERSION, result.ProtocolVersion)
	assert.Equal("agrimithra", result.ServerInfo.Name)
	assert.NotNil(result.Capabilities.Tools)
}
