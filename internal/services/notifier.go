package services

import (
	"sync"

	"github.com/rs/zerolog"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notifier is the UI capability injected into whatever triggers a submit:
// toast-style notifications and the wallet connection status.
type Notifier interface {
	Notify(kind NotificationKind, message string)
	IsWalletConnected() bool
}

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// LogNotifier logs notifications and keeps them until drained by the client
type LogNotifier struct {
	mu              sync.Mutex
	logger          zerolog.Logger
	pending         []Notification
	walletConnected bool
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, Notification{Kind: kind, Message: message})
	n.logger.Info().Str("kind", string(kind)).Msg(message)
}

func (n *LogNotifier) IsWalletConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.walletConnected
}

func (n *LogNotifier) SetWalletConnected(connected bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.walletConnected = connected
}

// Drain returns and clears the pending notifications
func (n *LogNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	pending := n.pending
	n.pending = nil
	return pending
}
