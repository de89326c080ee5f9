package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	FacetPollTimeout  = 1 * time.Second
	FacetBatchTimeout = 2 * time.Second
	FacetErrorBackoff = 1 * time.Second
)

// FacetQueue delivers queued facet refresh jobs.
type FacetQueue interface {
	Pop(ctx context.Context, timeout time.Duration) (facet string, ok bool, err error)
}

// FacetRefresher reloads one facet into the cache.
type FacetRefresher interface {
	Refresh(ctx context.Context, facet string) error
}

// FacetWorker drains the refresh queue. Jobs arriving within one batch window
// are deduplicated so a burst of refresh requests reloads each facet once.
type FacetWorker struct {
	queue     FacetQueue
	refresher FacetRefresher
	log       zerolog.Logger
}

func NewFacetWorker(queue FacetQueue, refresher FacetRefresher, log zerolog.Logger) *FacetWorker {
	return &FacetWorker{
		queue:     queue,
		refresher: refresher,
		log:       log.With().Str("component", "facet_worker").Logger(),
	}
}

// Start runs until ctx is cancelled.
func (w *FacetWorker) Start(ctx context.Context) {
	w.log.Info().Msg("FacetWorker started")

	pending := make(map[string]struct{})
	var order []string
	lastFlush := time.Now()

	for {
		if len(order) > 0 && time.Since(lastFlush) >= FacetBatchTimeout {
			w.flush(ctx, order)
			pending = make(map[string]struct{})
			order = order[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("dropped", len(order)).Msg("FacetWorker stopped")
			return
		default:
		}

		facet, ok, err := w.queue.Pop(ctx, FacetPollTimeout)
		if err != nil {
			if ctx.Err() == nil {
				w.log.Error().Err(err).Msg("Queue pop failed")
				sleep(ctx, FacetErrorBackoff)
			}
			continue
		}
		if !ok {
			continue
		}

		if len(order) == 0 {
			lastFlush = time.Now()
		}
		if _, dup := pending[facet]; !dup {
			pending[facet] = struct{}{}
			order = append(order, facet)
		}
	}
}

func (w *FacetWorker) flush(ctx context.Context, facets []string) {
	for _, f := range facets {
		start := time.Now()
		if err := w.refresher.Refresh(ctx, f); err != nil {
			w.log.Error().Err(err).Str("facet", f).Msg("Facet refresh failed")
			continue
		}
		w.log.Info().Str("facet", f).Dur("took", time.Since(start)).Msg("Facet refreshed")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
