package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type previewActionTool struct {
	sessions services.SessionManager
}

func NewPreviewActionTool(sessions services.SessionManager) *previewActionTool {
	return &previewActionTool{sessions: sessions}
}

func (p *previewActionTool) GetTool() mcp.Tool {
	return mcp.NewTool("preview_action",
		mcp.WithDescription("Get the live preview of the active action. Fields that cannot be shown, such as malformed attribute JSON or invalid amounts, are listed in errors while the rest of the preview stays available."),
	)
}

func (p *previewActionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return successResult("Preview:", editorSession(ctx, p.sessions).Preview())
	}
}
