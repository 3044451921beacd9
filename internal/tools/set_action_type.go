package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type setActionTypeTool struct {
	sessions services.SessionManager
}

type SetActionTypeArguments struct {
	ActionType string `json:"action_type" validate:"required"`
}

func NewSetActionTypeTool(sessions services.SessionManager) *setActionTypeTool {
	return &setActionTypeTool{sessions: sessions}
}

func (s *setActionTypeTool) GetTool() mcp.Tool {
	names := make([]string, 0, len(models.AllActionTypes))
	for _, t := range models.AllActionTypes {
		names = append(names, string(t))
	}

	return mcp.NewTool("set_action_type",
		mcp.WithDescription("Switch the active action type. Values entered for every type are kept, so switching back restores them. Returns a new form binding; edits sent with an older incarnation are rejected."),
		mcp.WithString("action_type",
			mcp.Required(),
			mcp.Description("The action type to activate"),
			mcp.Enum(names...),
		),
	)
}

func (s *setActionTypeTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SetActionTypeArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		binding, err := editorSession(ctx, s.sessions).SwitchVariant(models.ActionType(strings.TrimSpace(args.ActionType)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to switch action type: %v", err)), nil
		}

		return successResult(fmt.Sprintf("Switched to %s:", binding.Variant), binding)
	}
}
