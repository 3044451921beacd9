package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type submitActionTool struct {
	sessions services.SessionManager
}

type SubmitActionArguments struct {
	WalletConnected *bool `json:"wallet_connected,omitempty"`
}

func NewSubmitActionTool(sessions services.SessionManager) *submitActionTool {
	return &submitActionTool{sessions: sessions}
}

func (s *submitActionTool) GetTool() mcp.Tool {
	return mcp.NewTool("submit_action",
		mcp.WithDescription("Submit the current configuration. A SOL tip with a recipient produces the donate-sol action URL and a shareable blink link; other configurations are only recorded."),
		mcp.WithBoolean("wallet_connected",
			mcp.Description("Whether the user has a wallet connected. Defaults to the last reported status"),
		),
	)
}

func (s *submitActionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SubmitActionArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		session := editorSession(ctx, s.sessions)
		if args.WalletConnected != nil {
			session.SetWalletConnected(*args.WalletConnected)
		}

		result, err := session.Submit(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to submit action: %v", err)), nil
		}

		message := "Configuration recorded:"
		if result.ShareableURL != "" {
			message = fmt.Sprintf("Blink created. Share this link: %s", result.ShareableURL)
		}
		return successResult(message, map[string]any{
			"result":        result,
			"notifications": session.Notifications(),
		})
	}
}
