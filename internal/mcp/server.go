package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/tools"
)

type MCPServer struct {
	server   *server.MCPServer
	sessions services.SessionManager
}

func NewMCPServer(sessions services.SessionManager) *MCPServer {
	mcpServer := &MCPServer{
		sessions: sessions,
	}
	mcpServer.InitializeTools(sessions)
	return mcpServer
}

func (s *MCPServer) InitializeTools(sessions services.SessionManager) {
	hooks := &server.Hooks{}
	// each client edits its own draft; drop it when the client goes away
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		sessions.Close(session.SessionID())
	})

	srv := server.NewMCPServer(
		"Blink Launchpad MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithHooks(hooks),
	)

	srv.AddPrompt(mcp.NewPrompt("blink-launchpad-usage",
		mcp.WithPromptDescription("Instructions and guidance for configuring blinks with the launchpad tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (editing, publishing, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("Blink Launchpad Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(getToolInstructions(category)),
				),
			},
		), nil
	})

	// Editing Tools
	getConfigTool := tools.NewGetActionConfigTool(sessions)
	srv.AddTool(getConfigTool.GetTool(), getConfigTool.GetHandler())

	setActionTypeTool := tools.NewSetActionTypeTool(sessions)
	srv.AddTool(setActionTypeTool.GetTool(), setActionTypeTool.GetHandler())

	updateActionTool := tools.NewUpdateActionTool(sessions)
	srv.AddTool(updateActionTool.GetTool(), updateActionTool.GetHandler())

	previewActionTool := tools.NewPreviewActionTool(sessions)
	srv.AddTool(previewActionTool.GetTool(), previewActionTool.GetHandler())

	// Publishing Tools
	submitActionTool := tools.NewSubmitActionTool(sessions)
	srv.AddTool(submitActionTool.GetTool(), submitActionTool.GetHandler())

	resolveActionTool := tools.NewResolveActionTool(sessions)
	srv.AddTool(resolveActionTool.GetTool(), resolveActionTool.GetHandler())

	s.server = srv
}

func getToolInstructions(category string) string {
	switch category {
	case "editing":
		return `Editing Tools:

1. get_action_config - Show the whole draft: every action type and the form binding
   Usage: Call first to see which action type is active and its incarnation

2. set_action_type - Switch between tipping, tokenSwap, buyNft, staking and custom
   Usage: Values of the other types are kept, switching back restores them

3. update_action - Merge field values into one action type
   Usage: Pass the incarnation from the last binding; edits from a replaced binding are rejected

4. preview_action - Render the preview of the active action type
   Usage: Check error markers such as missing_recipient or malformed_json before submitting`

	case "publishing":
		return `Publishing Tools:

1. submit_action - Submit the draft
   Usage: For SOL tipping this builds the donate-sol action URL and the shareable blink link

2. resolve_action - Fetch the metadata a wallet-aware renderer would show
   Usage: Defaults to the last submitted action URL; editing the recipient or amounts discards a resolution in flight`

	case "all":
		return `Blink Launchpad MCP Tools Overview:

This MCP server provides 6 tools for configuring Solana blinks:

EDITING (4 tools):
- get_action_config: Show the draft
- set_action_type: Switch the active action type
- update_action: Edit fields of an action type
- preview_action: Render the preview

PUBLISHING (2 tools):
- submit_action: Build the action URL and shareable link
- resolve_action: Resolve an action URL into metadata

Transactions are returned unsigned. No private keys are handled by the server.`

	default:
		return `Invalid category. Available categories: editing, publishing, all`
	}
}

func (s *MCPServer) Start() error {
	return server.ServeStdio(s.server)
}

// GetSessions returns the editing sessions served by the MCP server
func (s *MCPServer) GetSessions() services.SessionManager {
	return s.sessions
}

// StreamableHTTPHandler serves the MCP protocol over streamable HTTP
func (s *MCPServer) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.server)
}
