package refresher

import (
	"context"
	"log"
	"time"

	"hostel-portal-backend/internal/occupancy"
)

// Service periodically rebuilds the occupancy snapshot from the
// allocation table so the cached views converge on the authoritative
// state even if an invalidation was missed, and surfaces data problems
// (duplicate beds, unmapped floors) in the logs.
type Service struct {
	snapshot *occupancy.Snapshot
	interval time.Duration
}

// NewService creates a new refresher.
func NewService(snapshot *occupancy.Snapshot, interval time.Duration) *Service {
	return &Service{snapshot: snapshot, interval: interval}
}

// Run refreshes the snapshot on a fixed interval until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) {
	log.Printf("Occupancy refresher started (interval %s)", s.interval)

	s.RefreshOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshOnce(ctx)
		case <-ctx.Done():
			log.Println("Occupancy refresher shutting down")
			return
		}
	}
}

// RefreshOnce rebuilds the snapshot a single time and logs warnings.
func (s *Service) RefreshOnce(ctx context.Context) {
	warnings, err := s.snapshot.Refresh(ctx)
	if err != nil {
		log.Printf("Occupancy refresh failed: %v", err)
		return
	}
	for _, w := range warnings {
		log.Printf("Occupancy warning: %s", w)
	}
}
