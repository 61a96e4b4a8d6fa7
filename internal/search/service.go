// Package search runs source queries requested on the event bus.
package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"typeahead/internal/eventbus"
	"typeahead/internal/source"
)

// Service answers SearchRequested events. A newer request cancels the one
// in flight and only the newest request publishes a result.
type Service struct {
	bus     eventbus.EventBus
	src     source.Source
	timeout time.Duration

	mu      sync.Mutex
	latest  uint64
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup

	unsubscribe func()
}

// NewService subscribes a search service to the bus. timeout <= 0 means
// searches never time out.
func NewService(bus eventbus.EventBus, src source.Source, timeout time.Duration) *Service {
	s := &Service{
		bus:     bus,
		src:     src,
		timeout: timeout,
	}

	s.unsubscribe = bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchRequestedEvent); ok {
			s.start(event)
		}
	})

	return s
}

func (s *Service) start(req eventbus.SearchRequestedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || req.Seq <= s.latest {
		log.Debug().Uint64("seq", req.Seq).Msg("search: ignoring stale request")
		return
	}
	s.latest = req.Seq

	if s.cancel != nil {
		s.cancel()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx, cancel, req)
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, req eventbus.SearchRequestedEvent) {
	defer s.wg.Done()
	defer cancel()

	started := time.Now()
	entries, err := s.src.Search(ctx, req.Query)

	s.mu.Lock()
	live := !s.stopped && req.Seq == s.latest
	s.mu.Unlock()

	if !live {
		log.Debug().Uint64("seq", req.Seq).Str("query", req.Query).Msg("search: superseded")
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	if err != nil {
		log.Warn().Err(err).Uint64("seq", req.Seq).Str("query", req.Query).Msg("search: failed")
		s.bus.Publish(eventbus.SearchFailedEvent{Seq: req.Seq, Query: req.Query, Err: err})
		return
	}

	log.Debug().
		Uint64("seq", req.Seq).
		Str("query", req.Query).
		Int("results", len(entries)).
		Dur("took", time.Since(started)).
		Msg("search: completed")
	s.bus.Publish(eventbus.SearchCompletedEvent{Seq: req.Seq, Query: req.Query, Entries: entries})
}

// Stop unsubscribes, cancels the search in flight and waits for it
func (s *Service) Stop() {
	s.unsubscribe()

	s.mu.Lock()
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
