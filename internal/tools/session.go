package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
)

// defaultSessionID is used when the request carries no client session, e.g. in unit tests
const defaultSessionID = "default"

// editorSession returns the editing session bound to the calling client
func editorSession(ctx context.Context, sessions services.SessionManager) *services.EditorSession {
	if clientSession := server.ClientSessionFromContext(ctx); clientSession != nil && clientSession.SessionID() != "" {
		return sessions.Get(clientSession.SessionID())
	}
	return sessions.Get(defaultSessionID)
}

func successResult(message string, payload any) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
			mcp.NewTextContent(string(resultJSON)),
		},
	}, nil
}
