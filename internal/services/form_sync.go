package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

var ErrStaleBinding = errors.New("edit belongs to a replaced form binding")

// FormChange is one change event of the editing surface
type FormChange struct {
	// Incarnation of the binding that produced the event; zero skips the check
	Incarnation uint64 `json:"incarnation,omitempty"`
	// Variant defaults to the active variant when empty
	Variant models.ActionType `json:"variant,omitempty"`
	Fields  models.Patch      `json:"fields"`
}

// SubmitResult is the recorded outcome of a submit
type SubmitResult struct {
	Snapshot     models.ActionConfig `json:"snapshot"`
	ActionURL    string              `json:"action_url,omitempty"`
	ShareableURL string              `json:"shareable_url,omitempty"`
	SubmittedAt  time.Time           `json:"submitted_at"`
}

// FormSyncAdapter applies change events to the store one at a time. It keeps no
// buffer: every event becomes exactly one PatchVariant call, in arrival order.
type FormSyncAdapter struct {
	store      VariantStore
	switcher   *VariantSwitcher
	hooks      HookService
	notifier   Notifier
	lastSubmit *SubmitResult
}

func NewFormSyncAdapter(store VariantStore, switcher *VariantSwitcher, hooks HookService, notifier Notifier) *FormSyncAdapter {
	return &FormSyncAdapter{
		store:    store,
		switcher: switcher,
		hooks:    hooks,
		notifier: notifier,
	}
}

func (f *FormSyncAdapter) Apply(change FormChange) (models.ActionConfig, error) {
	if change.Incarnation != 0 && change.Incarnation != f.switcher.Incarnation() {
		return f.store.Get(), fmt.Errorf("%w: got incarnation %d, current is %d", ErrStaleBinding, change.Incarnation, f.switcher.Incarnation())
	}

	variant := change.Variant
	if variant == "" {
		variant = f.store.Get().Type
	}
	return f.store.PatchVariant(variant, change.Fields)
}

// Submit records the final snapshot and runs the submit hooks. URLs are only
// produced by hooks that accept the snapshot.
func (f *FormSyncAdapter) Submit(ctx context.Context) (*SubmitResult, error) {
	snapshot := f.store.Get()
	result := &SubmitResult{
		Snapshot:    snapshot,
		SubmittedAt: time.Now(),
	}

	if err := f.hooks.OnSubmit(ctx, snapshot, result); err != nil {
		f.notify(NotificationError, fmt.Sprintf("Failed to create blink: %v", err))
		return nil, fmt.Errorf("submit hooks failed: %w", err)
	}

	f.lastSubmit = result
	if result.ShareableURL != "" {
		f.notify(NotificationSuccess, "Blink created: "+result.ShareableURL)
		if f.notifier != nil && !f.notifier.IsWalletConnected() {
			f.notify(NotificationInfo, "Connect a wallet to sign the donation from the shared link")
		}
	} else {
		f.notify(NotificationSuccess, "Blink configuration saved")
	}
	return result, nil
}

// LastSubmission returns the most recent successful submit, or nil
func (f *FormSyncAdapter) LastSubmission() *SubmitResult {
	return f.lastSubmit
}

func (f *FormSyncAdapter) notify(kind NotificationKind, message string) {
	if f.notifier != nil {
		f.notifier.Notify(kind, message)
	}
}
