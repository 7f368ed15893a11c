// Package tool exposes the documentation filter as MCP tools.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brizzai/apidoc-filter/internal/docs"
	"github.com/brizzai/apidoc-filter/internal/filter"
	"github.com/brizzai/apidoc-filter/internal/logger"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	FilterToolName = "filter_api_docs"
	GroupsToolName = "list_api_groups"
)

// Handler answers tool calls from the loaded documentation groups.
type Handler struct {
	registry *docs.Registry
	engine   *filter.Engine
}

// NewHandler creates a new tool handler.
func NewHandler(registry *docs.Registry, engine *filter.Engine) *Handler {
	return &Handler{registry: registry, engine: engine}
}

// Register adds the documentation tools to s.
func (h *Handler) Register(s *mcpserver.MCPServer) {
	s.AddTool(FilterTool(), h.Filter)
	s.AddTool(GroupsTool(), h.Groups)
}

// FilterTool describes the filter_api_docs tool.
func FilterTool() mcp.Tool {
	return mcp.NewTool(FilterToolName,
		mcp.WithDescription("Returns the Swagger 2.0 document of an API narrowed to a path or path prefix and a set of tags. "+
			"Only the definitions and tags the remaining operations use are kept."),
		mcp.WithString("group",
			mcp.Description("Documentation group, see list_api_groups. Defaults to the default group."),
		),
		mcp.WithString("path",
			mcp.Description("Exact path or path prefix, e.g. /pet or /pet/{petId}"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated operation tags"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(string(docs.FormatJSON), string(docs.FormatYAML)),
		),
	)
}

// GroupsTool describes the list_api_groups tool.
func GroupsTool() mcp.Tool {
	return mcp.NewTool(GroupsToolName,
		mcp.WithDescription("Lists the documentation groups that filter_api_docs can read from"),
	)
}

// Filter handles filter_api_docs calls.
func (h *Handler) Filter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	group := stringArg(args, "group")
	req := filter.Request{Path: stringArg(args, "path"), Tags: stringArg(args, "tags")}

	format, err := docs.ParseFormat(stringArg(args, "format"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.registry.Filter(h.engine, group, req)
	if errors.Is(err, docs.ErrUnknownGroup) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to filter group %q: %w", group, err)
	}
	if res.Empty {
		return mcp.NewToolResultError(fmt.Sprintf("No path matches %q with tags %q", req.Path, req.Tags)), nil
	}

	data, err := docs.Encode(res.Document, format, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	logger.Debug("Filter tool call",
		zap.String("group", group),
		zap.String("path", req.Path),
		zap.String("tags", req.Tags),
		zap.Int("paths", res.Document.Paths.Len()),
	)
	return mcp.NewToolResultText(string(data)), nil
}

// Groups handles list_api_groups calls.
func (h *Handler) Groups(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(h.registry.Resources())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func stringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}
