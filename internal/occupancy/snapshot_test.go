package occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-portal-backend/internal/model"
)

// fakeSource counts fetches and can run a hook mid-fetch to simulate a
// write racing an in-flight fill.
type fakeSource struct {
	records []model.Allocation
	calls   int
	onFetch func()
}

func (f *fakeSource) ActiveAllocations(ctx context.Context) ([]model.Allocation, error) {
	f.calls++
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.records, nil
}

func (f *fakeSource) ConfirmedAllocations(ctx context.Context) ([]model.Allocation, error) {
	return f.ActiveAllocations(ctx)
}

func TestSnapshotReadThrough(t *testing.T) {
	src := &fakeSource{records: []model.Allocation{
		alloc("H", "1", "101", 1, model.AllocationConfirmed),
	}}
	snap := NewSnapshot(src, 4, time.Minute)

	ix, err := snap.Index(context.Background(), false)
	require.NoError(t, err)
	key, _ := NewRoomKey("H", "First", "101")
	assert.False(t, ix.Eligible(key, 0))
	assert.Equal(t, 1, src.calls)

	// Second read is served from cache.
	_, err = snap.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	// The pending-inclusive view is a separate entry.
	_, err = snap.Index(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestSnapshotInvalidate(t *testing.T) {
	src := &fakeSource{}
	snap := NewSnapshot(src, 4, time.Minute)

	_, err := snap.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	snap.Invalidate()

	_, err = snap.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "invalidation must force a refetch")
}

func TestSnapshotStaleFillNotCached(t *testing.T) {
	src := &fakeSource{}
	snap := NewSnapshot(src, 4, time.Minute)

	// A write lands while the fill is in flight.
	src.onFetch = func() { snap.Invalidate() }

	_, err := snap.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	src.onFetch = nil

	// The raced fill must not have been cached.
	_, err = snap.Index(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestSnapshotRefreshReturnsWarnings(t *testing.T) {
	src := &fakeSource{records: []model.Allocation{
		alloc("H", "Dining First", "12", 1, model.AllocationConfirmed),
	}}
	snap := NewSnapshot(src, 4, time.Minute)

	warnings, err := snap.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Dining First")
}
