package hooks

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/rxtech-lab/blink-launchpad/internal/utils"
)

type DonateSolHook struct {
	origin  string
	metrics *metrics.Metrics
}

// CanHandle implements Hook.
func (d *DonateSolHook) CanHandle(actionType models.ActionType) bool {
	return actionType == models.ActionTypeTipping
}

// OnSubmit implements Hook.
// URLs are built only for SOL tips with a recipient; anything else is only recorded.
func (d *DonateSolHook) OnSubmit(ctx context.Context, snapshot models.ActionConfig, result *services.SubmitResult) error {
	tipping := snapshot.Tipping
	if tipping.Token != models.DefaultToken || tipping.RecipientAddress == "" {
		return nil
	}

	actionURL, err := utils.BuildDonateSolURL(d.origin, tipping)
	if err != nil {
		return fmt.Errorf("failed to build action url: %w", err)
	}
	shareableURL, err := utils.BuildShareableURL(d.origin, actionURL)
	if err != nil {
		return fmt.Errorf("failed to build shareable url: %w", err)
	}

	result.ActionURL = actionURL
	result.ShareableURL = shareableURL

	if d.metrics != nil {
		d.metrics.ActionURLsBuilt.Inc()
		d.metrics.ShareableLinks.Inc()
	}
	return nil
}

// NewDonateSolHook creates the hook. m may be nil.
func NewDonateSolHook(origin string, m *metrics.Metrics) services.Hook {
	return &DonateSolHook{
		origin:  origin,
		metrics: m,
	}
}
