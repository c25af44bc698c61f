package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-portal-backend/internal/model"
	"hostel-portal-backend/internal/occupancy"
)

// Errors surfaced by the store. Handlers map these onto HTTP statuses;
// anything else is an upstream failure and reported as such.
var (
	// ErrBedTaken means another pending or confirmed allocation already
	// holds the requested bed; the caller should pick another one.
	ErrBedTaken = errors.New("bed already taken")
	// ErrNotEligible means the user already holds a confirmed allocation.
	ErrNotEligible = errors.New("user is not eligible to apply")
	// ErrUnmappedFloor means the floor string matched no canonical floor.
	ErrUnmappedFloor = errors.New("floor does not match any known floor")
	// ErrInvalidBed means the bed number is outside [1, bed capacity].
	ErrInvalidBed = errors.New("bed number out of range")
	// ErrInvalidTransition means the record is not pending anymore.
	ErrInvalidTransition = errors.New("only pending records can be decided")
	// ErrInvalidStatus means the target status is not a decision.
	ErrInvalidStatus = errors.New("invalid target status")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Allocations
	ClaimAllocation(ctx context.Context, alloc *model.Allocation) error
	AllocationForUser(ctx context.Context, userID uuid.UUID) (*model.Allocation, error)
	ListAllocations(ctx context.Context, status string) ([]model.Allocation, error)
	DecideAllocation(ctx context.Context, id uuid.UUID, status string) (*model.Allocation, error)
	ActiveAllocations(ctx context.Context) ([]model.Allocation, error)
	ConfirmedAllocations(ctx context.Context) ([]model.Allocation, error)

	// Student profiles
	UpsertProfile(ctx context.Context, profile *model.StudentProfile) error
	ProfileForUser(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error)
	ListProfiles(ctx context.Context, search string) ([]model.StudentProfile, error)

	// Leave applications
	CreateLeave(ctx context.Context, leave *model.LeaveApplication) error
	LeavesForUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveApplication, error)
	ListLeaves(ctx context.Context, status string) ([]model.LeaveApplication, error)
	DecideLeave(ctx context.Context, id uuid.UUID, status, adminSignatureURL string) (*model.LeaveApplication, error)

	// Feedback
	CreateFeedback(ctx context.Context, fb *model.Feedback) error
	ListFeedbacks(ctx context.Context, fbType string, resolved *bool) ([]model.Feedback, error)
	SetFeedbackResolved(ctx context.Context, id uuid.UUID, resolved bool) error
	DeleteFeedback(ctx context.Context, id uuid.UUID) error

	// Weekly menu
	WeeklyMenu(ctx context.Context) ([]model.MenuDay, error)
	ReplaceWeeklyMenu(ctx context.Context, days []model.MenuDay) error

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	SubscriptionByEndpoint(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForUser(ctx context.Context, userID uuid.UUID) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db          *gorm.DB
	bedCapacity int
}

// NewGormStore creates a new GORM-backed store. bedCapacity comes from
// deployment configuration (3 or 4 beds per room).
func NewGormStore(db *gorm.DB, bedCapacity int) Store {
	return &gormStore{db: db, bedCapacity: bedCapacity}
}

// DB exposes the underlying connection for the router and workers.
func (s *gormStore) DB() *gorm.DB { return s.db }

// ClaimAllocation performs the authoritative check-and-claim for a bed.
// Inside one transaction it re-checks the live table for a competing
// pending/confirmed claim on the same normalized (hostel, floor, room,
// bed), refuses users who already hold a confirmed allocation, and then
// upserts on the user_id key so a resubmission after rejection replaces
// the old row. The stored row always starts out pending.
func (s *gormStore) ClaimAllocation(ctx context.Context, alloc *model.Allocation) error {
	floor, ok := occupancy.NormalizeFloor(alloc.Floor)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnmappedFloor, alloc.Floor)
	}
	if alloc.BedNumber < 1 || alloc.BedNumber > s.bedCapacity {
		return fmt.Errorf("%w: %d", ErrInvalidBed, alloc.BedNumber)
	}
	alloc.Floor = floor
	alloc.RoomNumber = occupancy.NormalizeRoom(alloc.RoomNumber)
	alloc.Status = model.AllocationPending
	if alloc.ID == uuid.Nil {
		alloc.ID = uuid.New()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Allocation
		err := tx.Where("user_id = ?", alloc.UserID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Status == model.AllocationConfirmed {
				return ErrNotEligible
			}
			// Replacing the prior pending/rejected row keeps its identity.
			alloc.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("failed to look up existing allocation: %w", err)
		}

		var taken int64
		err = tx.Model(&model.Allocation{}).
			Where("hostel = ? AND floor = ? AND room_number = ? AND bed_number = ?",
				alloc.Hostel, alloc.Floor, alloc.RoomNumber, alloc.BedNumber).
			Where("status IN ?", []string{model.AllocationPending, model.AllocationConfirmed}).
			Where("user_id <> ?", alloc.UserID).
			Count(&taken).Error
		if err != nil {
			return fmt.Errorf("failed to check bed availability: %w", err)
		}
		if taken > 0 {
			return ErrBedTaken
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "name", "reg_no", "department", "fees_status",
				"receipt_url", "transaction_id", "payment_date",
				"hostel", "floor", "room_number", "bed_number", "status", "updated_at",
			}),
		}).Create(alloc).Error
	})
}

// AllocationForUser finds the user's own allocation, if any.
func (s *gormStore) AllocationForUser(ctx context.Context, userID uuid.UUID) (*model.Allocation, error) {
	var alloc model.Allocation
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&alloc).Error; err != nil {
		return nil, err
	}
	return &alloc, nil
}

// ListAllocations returns allocations newest first, optionally filtered
// by status.
func (s *gormStore) ListAllocations(ctx context.Context, status string) ([]model.Allocation, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var allocs []model.Allocation
	if err := q.Find(&allocs).Error; err != nil {
		return nil, err
	}
	return allocs, nil
}

// DecideAllocation moves a pending allocation to confirmed or rejected
// and, as part of the same transaction, flips the student's can_apply
// eligibility flag (false on confirmed, true on rejected).
func (s *gormStore) DecideAllocation(ctx context.Context, id uuid.UUID, status string) (*model.Allocation, error) {
	if status != model.AllocationConfirmed && status != model.AllocationRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var alloc model.Allocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alloc, "id = ?", id).Error; err != nil {
			return err
		}
		if alloc.Status != model.AllocationPending {
			return fmt.Errorf("%w: allocation is %s", ErrInvalidTransition, alloc.Status)
		}

		if err := tx.Model(&alloc).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update allocation status: %w", err)
		}

		canApply := status != model.AllocationConfirmed
		if err := tx.Model(&model.StudentProfile{}).
			Where("roll_no = ?", alloc.RegNo).
			Update("can_apply", canApply).Error; err != nil {
			return fmt.Errorf("failed to update student eligibility: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

// ActiveAllocations returns pending and confirmed records, the input
// for the student-facing occupancy index.
func (s *gormStore) ActiveAllocations(ctx context.Context) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := s.db.WithContext(ctx).
		Where("status IN ?", []string{model.AllocationPending, model.AllocationConfirmed}).
		Find(&allocs).Error
	if err != nil {
		return nil, err
	}
	return allocs, nil
}

// ConfirmedAllocations returns only confirmed records, the input for
// the authoritative vacancy view.
func (s *gormStore) ConfirmedAllocations(ctx context.Context) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := s.db.WithContext(ctx).
		Where("status = ?", model.AllocationConfirmed).
		Find(&allocs).Error
	if err != nil {
		return nil, err
	}
	return allocs, nil
}
