package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rxtech-lab/blink-launchpad/internal/metrics"
	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

var ErrStaleResolution = errors.New("resolution superseded by a newer request")

// ActionFetcher performs the network call that turns an action URL into metadata
type ActionFetcher interface {
	FetchAction(ctx context.Context, actionURL string) (*models.ActionGetResponse, error)
}

type Resolution struct {
	Seq       uint64                    `json:"seq"`
	ActionURL string                    `json:"action_url"`
	Metadata  *models.ActionGetResponse `json:"metadata"`
}

// ResolverService resolves action URLs with last-request-wins semantics.
// Starting a resolution cancels the one in flight, and a result that arrives
// after a newer request started is discarded.
type ResolverService interface {
	Resolve(ctx context.Context, actionURL string) (*Resolution, error)
	// Invalidate discards the in-flight resolution without starting a new one
	Invalidate()
}

type resolverService struct {
	fetcher ActionFetcher
	metrics *metrics.Metrics

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewResolverService creates a resolver. m may be nil.
func NewResolverService(fetcher ActionFetcher, m *metrics.Metrics) ResolverService {
	return &resolverService{fetcher: fetcher, metrics: m}
}

func (r *resolverService) Resolve(ctx context.Context, actionURL string) (*Resolution, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	r.seq++
	seq := r.seq
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ResolutionsStarted.Inc()
	}

	metadata, err := r.fetcher.FetchAction(ctx, actionURL)

	r.mu.Lock()
	current := seq == r.seq
	if current {
		r.cancel = nil
	}
	r.mu.Unlock()

	if !current {
		if r.metrics != nil {
			r.metrics.ResolutionsStale.Inc()
		}
		return nil, fmt.Errorf("%w: request %d", ErrStaleResolution, seq)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve action: %w", err)
	}

	return &Resolution{Seq: seq, ActionURL: actionURL, Metadata: metadata}, nil
}

func (r *resolverService) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
