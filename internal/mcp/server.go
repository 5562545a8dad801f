// Package mcp provides a Model Context Protocol server for fathom.
//
// It exposes extraction as MCP tools over stdio transport (for Claude
// Desktop, Cursor, and similar clients). Extraction is stateless and
// read-only, so the tools carry read-only hints and never report errors
// for unparseable text; bad text simply yields empty category arrays.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fathomtext/fathom"
	"github.com/fathomtext/fathom/pkg/types"
)

// NewServer creates a configured MCP server with the fathom tools.
func NewServer(version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"Fathom",
		version,
		server.WithToolCapabilities(false),
	)

	registerExtractTool(s)
	registerExtractCategoryTool(s)
	registerCategoriesTool(s)

	return s
}

func registerExtractTool(s *server.MCPServer) {
	tool := mcp.NewTool("fathom_extract",
		mcp.WithDescription("Extract typed, confidence-scored context records from one sentence or paragraph. Returns all thirteen categories (identity, goals, events, tools, skills, jobs, preferences, experiences, facts, results, intents, constraints, warnings); categories with no matches are empty arrays."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The sentence or paragraph to analyze"),
		),
		mcp.WithString("source",
			mcp.Description("Source label recorded in the response meta block (default: 'mcp')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		source := "mcp"
		if v, err := req.RequireString("source"); err == nil && v != "" {
			source = v
		}

		resp := fathom.ExtractContext(text, fathom.WithSource(source))
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerExtractCategoryTool(s *server.MCPServer) {
	tool := mcp.NewTool("fathom_extract_category",
		mcp.WithDescription("Extract a single category of context records from one sentence or paragraph. Returns a JSON array; no matches yields []."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The sentence or paragraph to analyze"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category to extract"),
			mcp.Enum(types.Categories...),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}
		name, err := req.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError("category is required"), nil
		}

		items, err := fathom.ExtractCategory(text, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid category: %v", err)), nil
		}

		data, _ := json.MarshalIndent(items, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerCategoriesTool(s *server.MCPServer) {
	tool := mcp.NewTool("fathom_categories",
		mcp.WithDescription("List the category names fathom extracts, in canonical response order."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.MarshalIndent(types.Categories, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
