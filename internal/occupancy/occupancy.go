package occupancy

import (
	"fmt"
	"strconv"
	"strings"

	"hostel-portal-backend/internal/model"
)

// Canonical floor names. Incoming floor strings are folded onto this set;
// anything that does not match passes through unchanged and is reported
// as a warning so upstream data problems stay visible.
const (
	FloorGround = "Ground"
	FloorFirst  = "First"
	FloorSecond = "Second"
	FloorThird  = "Third"
)

// NormalizeFloor folds a raw floor string onto the canonical set.
// The second return value is false when the input did not match any
// bucket and was passed through unchanged.
func NormalizeFloor(raw string) (string, bool) {
	f := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case f == "0" || strings.Contains(f, "ground"):
		return FloorGround, true
	case strings.HasPrefix(f, "1"):
		return FloorFirst, true
	case strings.HasPrefix(f, "2"):
		return FloorSecond, true
	case strings.HasPrefix(f, "3"):
		return FloorThird, true
	case f == "first":
		return FloorFirst, true
	case f == "second":
		return FloorSecond, true
	case f == "third":
		return FloorThird, true
	}
	return strings.TrimSpace(raw), false
}

// NormalizeRoom strips leading zeros from numeric room numbers so that
// "007" and "7" address the same room. Non-numeric values pass through.
func NormalizeRoom(raw string) string {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}

// RoomKey uniquely identifies a room for occupancy lookups. Build it
// through NewRoomKey so floor and room number are normalized.
type RoomKey struct {
	Hostel string
	Floor  string
	Room   string
}

// NewRoomKey normalizes the floor and room number into a lookup key.
// ok is false when the floor string did not match a canonical bucket.
func NewRoomKey(hostel, floor, room string) (RoomKey, bool) {
	nf, ok := NormalizeFloor(floor)
	return RoomKey{Hostel: strings.TrimSpace(hostel), Floor: nf, Room: NormalizeRoom(room)}, ok
}

func (k RoomKey) String() string {
	return k.Hostel + "-" + k.Floor + "-" + k.Room
}

// Index maps rooms to per-bed occupied flags, derived from a flat list
// of allocation records.
type Index struct {
	capacity int
	rooms    map[RoomKey][]bool
	warnings []string
}

// BuildIndex derives the occupancy index from allocation records.
// Confirmed records always occupy a bed; pending records are included
// when includePending is set (student-facing views use this so a bed
// reserved by an undecided request cannot be picked again). Rejected
// records never count. Beds outside [1, capacity] are skipped, and a
// second record for an already-occupied bed is ignored first-seen-wins;
// both cases are reported as warnings rather than errors.
func BuildIndex(records []model.Allocation, capacity int, includePending bool) *Index {
	ix := &Index{
		capacity: capacity,
		rooms:    make(map[RoomKey][]bool),
	}

	for _, rec := range records {
		switch rec.Status {
		case model.AllocationConfirmed:
		case model.AllocationPending:
			if !includePending {
				continue
			}
		default:
			continue
		}

		key, ok := NewRoomKey(rec.Hostel, rec.Floor, rec.RoomNumber)
		if !ok {
			ix.warnings = append(ix.warnings, fmt.Sprintf("unmapped floor %q for room %s", rec.Floor, key))
		}

		if rec.BedNumber < 1 || rec.BedNumber > capacity {
			ix.warnings = append(ix.warnings, fmt.Sprintf("bed %d out of range for room %s", rec.BedNumber, key))
			continue
		}

		beds, exists := ix.rooms[key]
		if !exists {
			beds = make([]bool, capacity)
			ix.rooms[key] = beds
		}
		if beds[rec.BedNumber-1] {
			ix.warnings = append(ix.warnings, fmt.Sprintf("duplicate allocation for room %s bed %d", key, rec.BedNumber))
			continue
		}
		beds[rec.BedNumber-1] = true
	}

	return ix
}

// Capacity returns the configured beds-per-room count.
func (ix *Index) Capacity() int { return ix.capacity }

// Beds returns a copy of the room's bed states. Rooms absent from the
// index are fully vacant.
func (ix *Index) Beds(key RoomKey) []bool {
	beds := make([]bool, ix.capacity)
	copy(beds, ix.rooms[key])
	return beds
}

// Eligible reports whether the zero-based bed index may be newly
// selected. It is a pure check over the snapshot; the authoritative
// re-check happens inside the claim transaction.
func (ix *Index) Eligible(key RoomKey, bedIndex int) bool {
	if bedIndex < 0 || bedIndex >= ix.capacity {
		return false
	}
	beds, ok := ix.rooms[key]
	if !ok {
		return true
	}
	return !beds[bedIndex]
}

// Warnings lists the data-integrity problems observed while building
// the index (duplicates, out-of-range beds, unmapped floors).
func (ix *Index) Warnings() []string { return ix.warnings }
