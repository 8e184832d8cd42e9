// Package mcp exposes the paper download service over the Model Context
// Protocol, so LLM clients can fetch and read arXiv papers as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/download"
)

// DownloadPaperTool fetches a paper from arXiv and converts it to Markdown.
var DownloadPaperTool = mcp.Tool{
	Name: "download_paper",
	Description: `Download a paper from arXiv and convert it to Markdown.

The download runs asynchronously: the first call starts the job and later
calls report its progress. Set check_status=true to poll without starting
a new download.`,
	InputSchema: mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"paper_id": map[string]interface{}{
				"type":        "string",
				"description": "arXiv paper identifier, e.g. '2401.12345'",
			},
			"check_status": map[string]interface{}{
				"type":        "boolean",
				"description": "Only check the status of an existing download",
				"default":     false,
			},
		},
		Required: []string{"paper_id"},
	},
}

// ListPapersTool lists the papers already converted to Markdown.
var ListPapersTool = mcp.Tool{
	Name:        "list_papers",
	Description: "List all papers that have been downloaded and converted to Markdown.",
	InputSchema: mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	},
}

// ReadPaperTool returns the Markdown content of a converted paper.
var ReadPaperTool = mcp.Tool{
	Name:        "read_paper",
	Description: "Read the Markdown content of a previously converted paper.",
	InputSchema: mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"paper_id": map[string]interface{}{
				"type":        "string",
				"description": "arXiv paper identifier, e.g. '2401.12345'",
			},
		},
		Required: []string{"paper_id"},
	},
}

// Server wraps the MCP server with SSE and stdio transports.
type Server struct {
	downloadSvc *download.Service
	mcpServer   *server.MCPServer
	sseServer   *server.SSEServer
}

func NewServer(downloadSvc *download.Service) *Server {
	s := &Server{downloadSvc: downloadSvc}

	mcpServer := server.NewMCPServer(
		"arXiv Paper Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	mcpServer.AddTool(DownloadPaperTool, s.HandleDownloadPaper)
	mcpServer.AddTool(ListPapersTool, s.HandleListPapers)
	mcpServer.AddTool(ReadPaperTool, s.HandleReadPaper)

	s.mcpServer = mcpServer
	return s
}

// HandleDownloadPaper starts a download-and-convert job or reports the
// state of an existing one.
func (s *Server) HandleDownloadPaper(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	paperID, ok := argsMap["paper_id"].(string)
	if !ok || paperID == "" {
		return mcp.NewToolResultError("paper_id parameter is required"), nil
	}

	checkStatus := false
	if v, ok := argsMap["check_status"].(bool); ok {
		checkStatus = v
	}

	result := s.downloadSvc.RequestOrCheck(ctx, download.Request{
		PaperID:   paperID,
		CheckOnly: checkStatus,
	})

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// HandleListPapers lists converted papers present on disk.
func (s *Server) HandleListPapers(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	papers, err := s.downloadSvc.ListPapers()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list papers: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(papers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// HandleReadPaper returns the Markdown content of a converted paper.
func (s *Server) HandleReadPaper(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	paperID, ok := argsMap["paper_id"].(string)
	if !ok || paperID == "" {
		return mcp.NewToolResultError("paper_id parameter is required"), nil
	}

	content, err := s.downloadSvc.ReadPaper(paperID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

// StartSSE serves the MCP protocol over SSE on the given address.
func (s *Server) StartSSE(addr string) error {
	s.sseServer = server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAliveInterval(30*time.Second),
	)

	slog.Info("starting MCP SSE server", "addr", addr)
	return s.sseServer.Start(addr)
}

// StartStdio serves the MCP protocol over stdin/stdout.
func (s *Server) StartStdio() error {
	slog.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.mcpServer)
}

// Shutdown stops the SSE server if it was started.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sseServer == nil {
		return nil
	}
	slog.Info("shutting down MCP SSE server")
	return s.sseServer.Shutdown(ctx)
}
