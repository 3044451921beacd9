package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type resolveActionTool struct {
	sessions services.SessionManager
}

func NewResolveActionTool(sessions services.SessionManager) *resolveActionTool {
	return &resolveActionTool{sessions: sessions}
}

func (r *resolveActionTool) GetTool() mcp.Tool {
	return mcp.NewTool("resolve_action",
		mcp.WithDescription("Fetch the action metadata a wallet-aware renderer would show for an action URL. Starting a new resolution, or editing the recipient or amounts, discards the one in flight."),
		mcp.WithString("action_url",
			mcp.Description("Action URL to resolve. Defaults to the action URL of the last submit"),
		),
	)
}

func (r *resolveActionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		actionURL := request.GetString("action_url", "")

		resolution, err := editorSession(ctx, r.sessions).Resolve(ctx, actionURL)
		if errors.Is(err, services.ErrStaleResolution) {
			return mcp.NewToolResultError("Resolution discarded: the action changed while it was being resolved"), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve action: %v", err)), nil
		}

		return successResult("Resolved action:", resolution)
	}
}
