package occupancy

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"hostel-portal-backend/internal/model"
)

// Source supplies the allocation records an index is built from. The
// store is the only production implementation; the backing table is the
// single source of truth and everything here is a disposable cache.
type Source interface {
	ActiveAllocations(ctx context.Context) ([]model.Allocation, error)
	ConfirmedAllocations(ctx context.Context) ([]model.Allocation, error)
}

const (
	keyConfirmed = "confirmed"
	keyActive    = "active"
)

// Snapshot is a read-through cache over the occupancy index. Writers
// call Invalidate after every claim or decision; the generation counter
// makes sure a fetch that was already in flight when the invalidation
// happened is handed to its caller but never cached.
type Snapshot struct {
	src      Source
	capacity int
	ttl      time.Duration
	cache    *cache.Cache
	gen      atomic.Uint64
}

// NewSnapshot creates a snapshot cache with the given TTL.
func NewSnapshot(src Source, capacity int, ttl time.Duration) *Snapshot {
	return &Snapshot{
		src:      src,
		capacity: capacity,
		ttl:      ttl,
		cache:    cache.New(ttl, 2*ttl),
	}
}

// Index returns the current occupancy index, fetching from the source
// on a cache miss. includePending selects the student-facing view that
// also blocks beds held by undecided requests.
func (s *Snapshot) Index(ctx context.Context, includePending bool) (*Index, error) {
	key := keyConfirmed
	if includePending {
		key = keyActive
	}

	if v, found := s.cache.Get(key); found {
		return v.(*Index), nil
	}

	gen := s.gen.Load()

	var (
		records []model.Allocation
		err     error
	)
	if includePending {
		records, err = s.src.ActiveAllocations(ctx)
	} else {
		records, err = s.src.ConfirmedAllocations(ctx)
	}
	if err != nil {
		return nil, err
	}

	ix := BuildIndex(records, s.capacity, includePending)

	// A concurrent Invalidate means this fill raced a write; the data
	// is still good enough for the caller's read but must not linger.
	if s.gen.Load() == gen {
		s.cache.Set(key, ix, s.ttl)
	}
	return ix, nil
}

// Invalidate drops all cached indexes and marks in-flight fills stale.
func (s *Snapshot) Invalidate() {
	s.gen.Add(1)
	s.cache.Flush()
}

// Refresh rebuilds both index variants and returns the warnings from
// the active view, for the background refresher to log.
func (s *Snapshot) Refresh(ctx context.Context) ([]string, error) {
	s.Invalidate()
	if _, err := s.Index(ctx, false); err != nil {
		return nil, err
	}
	ix, err := s.Index(ctx, true)
	if err != nil {
		return nil, err
	}
	return ix.Warnings(), nil
}
