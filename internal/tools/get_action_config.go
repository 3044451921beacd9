package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type getActionConfigTool struct {
	sessions services.SessionManager
}

func NewGetActionConfigTool(sessions services.SessionManager) *getActionConfigTool {
	return &getActionConfigTool{sessions: sessions}
}

func (g *getActionConfigTool) GetTool() mcp.Tool {
	return mcp.NewTool("get_action_config",
		mcp.WithDescription("Get the full action configuration of the current editing session: the active action type, all five variant payloads and the current form binding (incarnation)."),
	)
}

func (g *getActionConfigTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		config, binding := editorSession(ctx, g.sessions).Snapshot()
		return successResult("Current action configuration:", map[string]any{
			"config":  config,
			"binding": binding,
		})
	}
}
