package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"espejo-admin/internal/domain"
	"espejo-admin/internal/metrics"
	"espejo-admin/internal/service"
	"espejo-admin/internal/store"
)

// DefaultInterval is the periodic refresh cadence.
const DefaultInterval = 15 * time.Second

// SnapshotCache is the optional warm-start cache for the last good snapshot.
type SnapshotCache interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, bool, error)
}

// Syncer keeps the store's mirror snapshot in step with the backend. It
// exposes an on-demand Refresh plus a managed periodic poller, and it is the
// store's only writer.
type Syncer struct {
	fetcher  service.SnapshotFetcher
	store    *store.Store
	cache    SnapshotCache
	interval time.Duration

	mu           sync.Mutex
	pending      chan struct{}
	lastErr      error
	nextSeq      uint64
	installedSeq uint64

	stop chan struct{}
	done chan struct{}
}

type Option func(*Syncer)

func WithInterval(d time.Duration) Option { return func(s *Syncer) { s.interval = d } }
func WithCache(cache SnapshotCache) Option { return func(s *Syncer) { s.cache = cache } }

func New(fetcher service.SnapshotFetcher, st *store.Store, opts ...Option) *Syncer {
	s := &Syncer{
		fetcher:  fetcher,
		store:    st,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches a fresh snapshot and installs it wholesale. When a refresh
// is already in flight the caller attaches to it and shares its outcome
// instead of starting a second fetch, so the periodic timer and manual
// triggers can race freely without overlapping requests.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.pending != nil {
		ch := s.pending
		s.mu.Unlock()
		select {
		case <-ch:
			s.mu.Lock()
			err := s.lastErr
			s.mu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ch := make(chan struct{})
	s.pending = ch
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	err := s.doRefresh(ctx, seq)

	s.mu.Lock()
	s.lastErr = err
	s.pending = nil
	s.mu.Unlock()
	close(ch)
	return err
}

func (s *Syncer) doRefresh(ctx context.Context, seq uint64) error {
	s.store.SetLoading(true)

	start := time.Now()
	snapshot, err := s.fetcher.FetchSnapshot(ctx)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// The previous snapshot is retained; stale beats blank.
		s.store.Fail(err)
		metrics.RefreshTotal.WithLabelValues("failure").Inc()
		log.Printf("Warning: mirror refresh failed: %v", err)
		return err
	}

	// An older refresh must never overwrite a newer one's snapshot.
	s.mu.Lock()
	if seq <= s.installedSeq {
		s.mu.Unlock()
		s.store.SetLoading(false)
		return nil
	}
	s.installedSeq = seq
	s.mu.Unlock()

	s.store.Install(*snapshot)
	metrics.RefreshTotal.WithLabelValues("success").Inc()

	if s.cache != nil {
		if err := s.cache.Save(ctx, *snapshot); err != nil {
			log.Printf("Warning: failed to cache snapshot: %v", err)
		}
	}
	return nil
}

// WarmFromCache seeds an empty store from the snapshot cache so a restarted
// instance renders something before its first fetch lands. The cached copy
// keeps its original FetchedAt, so it shows up as stale until then.
func (s *Syncer) WarmFromCache(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	if _, ok := s.store.Snapshot(); ok {
		return false
	}
	snapshot, ok, err := s.cache.Load(ctx)
	if err != nil {
		log.Printf("Warning: failed to load cached snapshot: %v", err)
		return false
	}
	if !ok {
		return false
	}
	s.store.Install(snapshot)
	log.Printf("Seeded store from cached snapshot (fetched %s)", snapshot.FetchedAt.Format(time.RFC3339))
	return true
}

// Start launches the periodic poller. It re-arms on a fixed interval and is
// a no-op when already running.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop = stop
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = s.Refresh(ctx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the poller and waits for its goroutine to exit. No timers or
// goroutines survive it.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return
	}
	close(s.stop)
	s.stop = nil
	done := s.done
	s.done = nil
	s.mu.Unlock()
	<-done
}
