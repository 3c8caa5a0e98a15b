package mcp

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flarexio/agrimithra"
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      mcp.RequestId   `json:"id"`
	Method  mcp.MCPMethod   `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func ErrorResponse(id mcp.RequestId, code int, message string) mcp.JSONRPCError {
	resp := mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
	}

	resp.Error.Code = code
	resp.Error.Message = message

	return resp
}

type MCPEndpoint func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage

const MCPSERVER_INSTRUCTIONS string = `AgriMithra answers farming questions from a curated agricultural knowledge base, providing:

1. **Advisory answers**: Crop disease, market prices, weather, government schemes, fertilizers and pest control
2. **Knowledge search**: Ranked documents for a free-text query
3. **Crop guides**: Fertilizer, pest and disease management for a plant or an image classifier label

Available tools:
- ask_advisor: Answer a question with sources and follow-up suggestions
- search_knowledge: Search the knowledge base
- add_document: Add an advisory document
- list_categories: List advisory categories with sample questions
- crop_guide: Render the crop guide for a plant or classifier label

Answers are composed from retrieved documents only. Always defer to the local agricultural extension officer.`

const (
	ToolAskAdvisor      = "ask_advisor"
	ToolSearchKnowledge = "search_knowledge"
	ToolAddDocument     = "add_document"
	ToolListCategories  = "list_categories"
	ToolCropGuide       = "crop_guide"
)

func categoryIDs() []string {
	specs := agrimithra.DefaultTaxonomy().Specs()

	ids := make([]string, 0, len(specs)+1)
	for _, spec := range specs {
		ids = append(ids, string(spec.ID))
	}

	return append(ids, string(agrimithra.CategoryGeneral))
}

// Tools lists the tools served by CallToolEndpoint.
func Tools() []mcp.Tool {
	categories := categoryIDs()

	return []mcp.Tool{
		mcp.NewTool(ToolAskAdvisor,
			mcp.WithDescription("Answer a farming question from the agricultural knowledge base, with sources and suggested follow-up questions."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("The farmer's question"),
			),
			mcp.WithString("category",
				mcp.Description("Optional advisory category used for follow-up suggestions"),
				mcp.Enum(categories...),
			),
			mcp.WithNumber("top_k",
				mcp.Description("Number of documents to retrieve"),
				mcp.Min(1),
			),
		),
		mcp.NewTool(ToolSearchKnowledge,
			mcp.WithDescription("Search the agricultural knowledge base and return ranked documents."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Free-text search query"),
			),
			mcp.WithNumber("k",
				mcp.Description("Maximum number of documents"),
				mcp.Min(1),
			),
		),
		mcp.NewTool(ToolAddDocument,
			mcp.WithDescription("Add an advisory document to the knowledge base. Titles must be unique."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Unique document title"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Advisory text"),
			),
			mcp.WithString("category",
				mcp.Description("Advisory category, general when omitted"),
			),
		),
		mcp.NewTool(ToolListCategories,
			mcp.WithDescription("List the advisory categories with sample questions."),
		),
		mcp.NewTool(ToolCropGuide,
			mcp.WithDescription("Render the comprehensive crop guide for a plant name or an image classifier label such as Tomato___Early_blight."),
			mcp.WithString("label",
				mcp.Required(),
				mcp.Description("Plant name or classifier label"),
			),
		),
	}
}

func InitializeEndpoint(svc agrimithra.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.InitializeParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		protocolVersion := mcp.LATEST_PROTOCOL_VERSION
		if clientVersion := params.ProtocolVersion; clientVersion != "" {
			if slices.Contains(mcp.ValidProtocolVersions, clientVersion) {
				protocolVersion = clientVersion
			}
		}

		result := &mcp.InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: mcp.ServerCapabilities{
				Tools: &struct {
					ListChanged bool `json:"listChanged,omitempty"`
				}{},
			},
			ServerInfo: mcp.Implementation{
				Name:    "agrimithra",
				Version: "1.0.0",
			},
			Instructions: MCPSERVER_INSTRUCTIONS,
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func PingEndpoint(svc agrimithra.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  struct{}{},
		}
	}
}

func ListToolsEndpoint(svc agrimithra.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		result := &mcp.ListToolsResult{
			Tools: Tools(),
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  result,
		}
	}
}

func CallToolEndpoint(svc agrimithra.Service) MCPEndpoint {
	return func(ctx context.Context, req JSONRPCRequest) mcp.JSONRPCMessage {
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, err.Error())
		}

		callToolReq := mcp.CallToolRequest{
			Request: mcp.Request{
				Method: string(req.Method),
			},
			Params: params,
		}

		var handler func(context.Context, agrimithra.Service, mcp.CallToolRequest) *mcp.CallToolResult

		switch params.Name {
		case ToolAskAdvisor:
			handler = askAdvisor
		case ToolSearchKnowledge:
			handler = searchKnowledge
		case ToolAddDocument:
			handler = addDocument
		case ToolListCategories:
			handler = listCategories
		case ToolCropGuide:
			handler = cropGuide
		default:
			return ErrorResponse(req.ID, mcp.INVALID_PARAMS, "unknown tool: "+params.Name)
		}

		return mcp.JSONRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Result:  handler(ctx, svc, callToolReq),
		}
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultText(string(bs))
}

func askAdvisor(ctx context.Context, svc agrimithra.Service, req mcp.CallToolRequest) *mcp.CallToolResult {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	answer, err := svc.Ask(ctx, agrimithra.AskRequest{
		Query:    query,
		Category: agrimithra.Category(req.GetString("category", "")),
		TopK:     req.GetInt("top_k", 0),
	})

	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return jsonResult(answer)
}

func searchKnowledge(ctx context.Context, svc agrimithra.Service, req mcp.CallToolRequest) *mcp.CallToolResult {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	matches, err := svc.Retrieve(ctx, query, req.GetInt("k", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return jsonResult(matches)
}

func addDocument(ctx context.Context, svc agrimithra.Service, req mcp.CallToolRequest) *mcp.CallToolResult {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	doc := agrimithra.Document{
		Title:    strings.TrimSpace(title),
		Category: agrimithra.Category(req.GetString("category", "")),
		Content:  content,
	}

	status, err := svc.AddDocument(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(string(status) + ": " + err.Error())
	}

	return jsonResult(agrimithra.AddDocumentResponse{
		Status: status,
		Title:  doc.Title,
	})
}

func listCategories(ctx context.Context, svc agrimithra.Service, req mcp.CallToolRequest) *mcp.CallToolResult {
	categories, err := svc.Categories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return jsonResult(categories)
}

func cropGuide(ctx context.Context, svc agrimithra.Service, req mcp.CallToolRequest) *mcp.CallToolResult {
	label, err := req.RequireString("label")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	guide, err := svc.Guide(ctx, label)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultText(guide)
}
