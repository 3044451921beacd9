package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

var ErrNothingToResolve = errors.New("no action url to resolve, submit a tipping blink first")

// tippingURLKeys are the tipping fields encoded into the action URL.
// Editing one of them makes any in-flight resolution stale.
var tippingURLKeys = []string{"recipientAddress", "baseAmount", "imageUrl", "title", "description", "token"}

// EditorSession owns the configuration of one editing session and wires the
// store, switcher, form adapter, preview and resolver together. Calls are
// serialized at this boundary; the components underneath do not lock.
type EditorSession struct {
	mu       sync.Mutex
	id       string
	store    VariantStore
	switcher *VariantSwitcher
	adapter  *FormSyncAdapter
	resolver ResolverService
	notifier Notifier
	metrics  *metrics.Metrics

	preview            models.PreviewViewModel
	previewIncarnation uint64
}

// NewEditorSession creates a session seeded with the default configuration.
// m may be nil.
func NewEditorSession(id string, hooks HookService, notifier Notifier, resolver ResolverService, m *metrics.Metrics) *EditorSession {
	store := NewVariantStore(models.DefaultActionConfig())
	switcher := NewVariantSwitcher(store)

	session := &EditorSession{
		id:       id,
		store:    store,
		switcher: switcher,
		adapter:  NewFormSyncAdapter(store, switcher, hooks, notifier),
		resolver: resolver,
		notifier: notifier,
		metrics:  m,
	}
	session.preview = ProjectPreview(store.Get())
	store.Subscribe(func(snapshot models.ActionConfig, _ uint64) {
		session.preview = ProjectPreview(snapshot)
		session.previewIncarnation = switcher.Incarnation()
	})
	return session
}

func (s *EditorSession) ID() string {
	return s.id
}

// Snapshot returns the current configuration and the binding an editing surface should use
func (s *EditorSession) Snapshot() (models.ActionConfig, FormBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(), s.switcher.Binding()
}

func (s *EditorSession) SwitchVariant(actionType models.ActionType) (FormBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	binding, err := s.switcher.Switch(actionType)
	if err != nil {
		return binding, err
	}
	// the store published before the counter moved
	s.previewIncarnation = binding.Incarnation
	return binding, nil
}

func (s *EditorSession) ApplyChange(change FormChange) (models.ActionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.adapter.Apply(change)
	if err != nil {
		return snapshot, err
	}

	variant := change.Variant
	if variant == "" {
		variant = snapshot.Type
	}
	if variant == models.ActionTypeTipping && touchesAny(change.Fields, tippingURLKeys) && s.resolver != nil {
		s.resolver.Invalidate()
	}
	return snapshot, nil
}

// Preview returns the view-model of the current snapshot
func (s *EditorSession) Preview() models.PreviewViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.previewIncarnation != s.switcher.Incarnation() {
		s.preview = ProjectPreview(s.store.Get())
		s.previewIncarnation = s.switcher.Incarnation()
	}
	return s.preview
}

func (s *EditorSession) Submit(ctx context.Context) (*SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.adapter.Submit(ctx)
	if s.metrics != nil {
		actionType := string(s.store.Get().Type)
		switch {
		case err != nil:
			s.metrics.RecordSubmission(actionType, "failed")
		case result.ShareableURL != "":
			s.metrics.RecordSubmission(actionType, "url_built")
		default:
			s.metrics.RecordSubmission(actionType, "recorded")
		}
	}
	return result, err
}

func (s *EditorSession) LastSubmission() *SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.LastSubmission()
}

// Resolve resolves actionURL, or the action URL of the last submit when empty.
// The session lock is not held during the network call, so edits stay possible.
func (s *EditorSession) Resolve(ctx context.Context, actionURL string) (*Resolution, error) {
	if actionURL == "" {
		last := s.LastSubmission()
		if last == nil || last.ActionURL == "" {
			return nil, ErrNothingToResolve
		}
		actionURL = last.ActionURL
	}
	return s.resolver.Resolve(ctx, actionURL)
}

// SetWalletConnected forwards the wallet status when the notifier tracks it
func (s *EditorSession) SetWalletConnected(connected bool) {
	if n, ok := s.notifier.(interface{ SetWalletConnected(bool) }); ok {
		n.SetWalletConnected(connected)
	}
}

// Notifications drains pending notifications when the notifier buffers them
func (s *EditorSession) Notifications() []Notification {
	if n, ok := s.notifier.(interface{ Drain() []Notification }); ok {
		return n.Drain()
	}
	return nil
}

func touchesAny(patch models.Patch, keys []string) bool {
	for _, key := range keys {
		if _, ok := patch[key]; ok {
			return true
		}
	}
	return false
}
