package services

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
)

// SessionManager hands out one EditorSession per client session id.
// Sessions are never shared between ids.
type SessionManager interface {
	// Get returns the session for id, creating it on first use
	Get(id string) *EditorSession
	Close(id string)
	Count() int
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*EditorSession
	hooks    HookService
	fetcher  ActionFetcher
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewSessionManager creates a manager. m may be nil.
func NewSessionManager(hooks HookService, fetcher ActionFetcher, m *metrics.Metrics, logger zerolog.Logger) SessionManager {
	return &sessionManager{
		sessions: make(map[string]*EditorSession),
		hooks:    hooks,
		fetcher:  fetcher,
		metrics:  m,
		logger:   logger,
	}
}

func (m *sessionManager) Get(id string) *EditorSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session
	}

	logger := m.logger.With().Str("session", id).Logger()
	session := NewEditorSession(
		id,
		m.hooks,
		NewLogNotifier(logger),
		NewResolverService(m.fetcher, m.metrics),
		m.metrics,
	)
	m.sessions[id] = session
	if m.metrics != nil {
		m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
	logger.Debug().Msg("editor session created")
	return session
}

func (m *sessionManager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return
	}
	session.resolver.Invalidate()
	delete(m.sessions, id)
	if m.metrics != nil {
		m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
}

func (m *sessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
