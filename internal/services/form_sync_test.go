package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/stretchr/testify/suite"
)

// mockNotifier records notifications instead of showing them
type mockNotifier struct {
	mu              sync.Mutex
	notifications   []services.Notification
	walletConnected bool
}

func (m *mockNotifier) Notify(kind services.NotificationKind, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, services.Notification{Kind: kind, Message: message})
}

func (m *mockNotifier) IsWalletConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walletConnected
}

func (m *mockNotifier) kinds() []services.NotificationKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kinds []services.NotificationKind
	for _, n := range m.notifications {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

type FormSyncAdapterTestSuite struct {
	suite.Suite
	store    services.VariantStore
	switcher *services.VariantSwitcher
	hook     *mockHook
	notifier *mockNotifier
	adapter  *services.FormSyncAdapter
}

func (s *FormSyncAdapterTestSuite) SetupTest() {
	s.store = services.NewVariantStore(models.DefaultActionConfig())
	s.switcher = services.NewVariantSwitcher(s.store)
	s.hook = newMockHook("tipping", models.ActionTypeTipping)
	s.notifier = &mockNotifier{}

	hooks := services.NewHookService()
	s.Require().NoError(hooks.AddHook(s.hook))
	s.adapter = services.NewFormSyncAdapter(s.store, s.switcher, hooks, s.notifier)
}

func (s *FormSyncAdapterTestSuite) TestApplyDefaultsToActiveVariant() {
	snapshot, err := s.adapter.Apply(services.FormChange{
		Fields: models.Patch{"recipientAddress": "abc"},
	})
	s.Require().NoError(err)
	s.Equal("abc", snapshot.Tipping.RecipientAddress)
}

func (s *FormSyncAdapterTestSuite) TestApplyEachEventIndependently() {
	events := []services.FormChange{
		{Fields: models.Patch{"title": "T"}},
		{Fields: models.Patch{"baseAmount": "0.5"}},
		{Fields: models.Patch{"title": "T2"}},
	}
	for _, event := range events {
		_, err := s.adapter.Apply(event)
		s.Require().NoError(err)
	}

	tipping := s.store.Get().Tipping
	s.Equal("T2", tipping.Title)
	s.Equal("0.5", tipping.BaseAmount)
	s.Equal(models.DefaultToken, tipping.Token)
	s.Equal(uint64(3), s.store.Revision())
}

func (s *FormSyncAdapterTestSuite) TestApplyRejectsStaleBinding() {
	_, err := s.switcher.Switch(models.ActionTypeStaking)
	s.Require().NoError(err)

	// incarnation zero skips the check
	_, err = s.adapter.Apply(services.FormChange{
		Variant: models.ActionTypeTipping,
		Fields:  models.Patch{"title": "late keystroke"},
	})
	s.NoError(err)

	_, err = s.switcher.Switch(models.ActionTypeTipping)
	s.Require().NoError(err)
	before := s.store.Get()

	_, err = s.adapter.Apply(services.FormChange{
		Incarnation: 1,
		Fields:      models.Patch{"title": "stale"},
	})
	s.ErrorIs(err, services.ErrStaleBinding)
	s.Equal(before, s.store.Get())

	_, err = s.adapter.Apply(services.FormChange{
		Incarnation: 2,
		Fields:      models.Patch{"title": "fresh"},
	})
	s.NoError(err)
	s.Equal("fresh", s.store.Get().Tipping.Title)
}

func (s *FormSyncAdapterTestSuite) TestSubmitBuildsURLWhenHookAccepts() {
	s.hook.actionURL = "https://x/api/actions/donate-sol?recipient=abc"
	s.hook.shareableURL = "https://x/blink?action=..."

	result, err := s.adapter.Submit(context.Background())
	s.Require().NoError(err)
	s.Equal(s.hook.actionURL, result.ActionURL)
	s.Equal(s.store.Get(), result.Snapshot)
	s.Equal(result, s.adapter.LastSubmission())
	s.Equal([]services.NotificationKind{services.NotificationSuccess, services.NotificationInfo}, s.notifier.kinds())
}

func (s *FormSyncAdapterTestSuite) TestSubmitWithWalletConnectedSkipsInfo() {
	s.hook.actionURL = "https://x/api/actions/donate-sol?recipient=abc"
	s.hook.shareableURL = "https://x/blink?action=..."
	s.notifier.walletConnected = true

	_, err := s.adapter.Submit(context.Background())
	s.Require().NoError(err)
	s.Equal([]services.NotificationKind{services.NotificationSuccess}, s.notifier.kinds())
}

func (s *FormSyncAdapterTestSuite) TestSubmitNonTippingOnlyRecords() {
	_, err := s.switcher.Switch(models.ActionTypeStaking)
	s.Require().NoError(err)

	result, err := s.adapter.Submit(context.Background())
	s.Require().NoError(err)
	s.Equal(0, s.hook.callCount)
	s.Empty(result.ActionURL)
	s.Empty(result.ShareableURL)
	s.Equal(models.ActionTypeStaking, result.Snapshot.Type)
}

func (s *FormSyncAdapterTestSuite) TestSubmitHookError() {
	s.hook.setError(true, "boom")

	result, err := s.adapter.Submit(context.Background())
	s.Error(err)
	s.Nil(result)
	s.Nil(s.adapter.LastSubmission())
	s.Equal([]services.NotificationKind{services.NotificationError}, s.notifier.kinds())
}

func TestFormSyncAdapterTestSuite(t *testing.T) {
	suite.Run(t, new(FormSyncAdapterTestSuite))
}
