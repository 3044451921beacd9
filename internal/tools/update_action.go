package tools

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

type updateActionTool struct {
	sessions services.SessionManager
}

type UpdateActionArguments struct {
	Fields map[string]any `json:"fields" validate:"required"`

	// Optional fields
	ActionType  string `json:"action_type,omitempty"`
	Incarnation uint64 `json:"incarnation,omitempty"`
}

func NewUpdateActionTool(sessions services.SessionManager) *updateActionTool {
	return &updateActionTool{sessions: sessions}
}

func (u *updateActionTool) GetTool() mcp.Tool {
	return mcp.NewTool("update_action",
		mcp.WithDescription("Merge fields into one action type's configuration. Only the given keys change; lists such as suggestedAmounts are replaced as a whole. Unknown keys or wrongly typed values reject the whole update."),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Fields to set, using the form names (e.g., {\"recipientAddress\": \"...\", \"baseAmount\": \"0.02\"})"),
		),
		mcp.WithString("action_type",
			mcp.Description("Action type to update. Defaults to the active one"),
		),
		mcp.WithNumber("incarnation",
			mcp.Description("Incarnation of the form binding the edit was made in. Edits from a replaced binding are rejected"),
		),
	)
}

func (u *updateActionTool) GetHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateActionArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		session := editorSession(ctx, u.sessions)
		config, err := session.ApplyChange(services.FormChange{
			Incarnation: args.Incarnation,
			Variant:     models.ActionType(args.ActionType),
			Fields:      models.Patch(args.Fields),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update action: %v", err)), nil
		}

		return successResult("Action updated:", map[string]any{
			"config":  config,
			"preview": session.Preview(),
		})
	}
}
