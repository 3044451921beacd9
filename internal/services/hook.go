package services

import (
	"context"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

// Hook is used to run side effects when a configuration is submitted, based on its action type
type Hook interface {
	// CanHandle is used to check if the hook can handle the action type
	CanHandle(actionType models.ActionType) bool
	// OnSubmit is called with the final snapshot and may fill in the submit result
	OnSubmit(ctx context.Context, snapshot models.ActionConfig, result *SubmitResult) error
}
