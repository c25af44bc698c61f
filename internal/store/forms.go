package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-portal-backend/internal/model"
)

// UpsertProfile creates or replaces the student's profile, keyed on
// user_id. The can_apply flag is owned by the allocation decision
// transaction and is deliberately left out of the update set.
func (s *gormStore) UpsertProfile(ctx context.Context, profile *model.StudentProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"roll_no", "name", "email", "department", "year", "section",
			"mobile", "whatsapp", "blood_group", "dob", "address", "district",
			"father_name", "father_contact", "father_occupation",
			"mother_name", "mother_contact", "mother_occupation",
			"admission_mode", "fee_mode", "floor", "room_no",
			"passport_photo_url", "id_card_photo_url", "fees_receipt_url", "updated_at",
		}),
	}).Create(profile).Error
}

// ProfileForUser returns the user's own profile.
func (s *gormStore) ProfileForUser(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns all profiles, optionally filtered by a search
// term matched against roll number and name.
func (s *gormStore) ListProfiles(ctx context.Context, search string) ([]model.StudentProfile, error) {
	q := s.db.WithContext(ctx).Order("roll_no")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("roll_no LIKE ? OR name LIKE ?", like, like)
	}
	var profiles []model.StudentProfile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// CreateLeave stores a new leave application in pending state.
func (s *gormStore) CreateLeave(ctx context.Context, leave *model.LeaveApplication) error {
	if leave.ID == uuid.Nil {
		leave.ID = uuid.New()
	}
	leave.Status = model.LeavePending
	return s.db.WithContext(ctx).Create(leave).Error
}

// LeavesForUser returns the user's own leave applications, newest first.
func (s *gormStore) LeavesForUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveApplication, error) {
	var leaves []model.LeaveApplication
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListLeaves returns leave applications newest first, optionally
// filtered by status.
func (s *gormStore) ListLeaves(ctx context.Context, status string) ([]model.LeaveApplication, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var leaves []model.LeaveApplication
	if err := q.Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// DecideLeave moves a pending leave application to approved or
// rejected. An approval records the admin's signature URL.
func (s *gormStore) DecideLeave(ctx context.Context, id uuid.UUID, status, adminSignatureURL string) (*model.LeaveApplication, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var leave model.LeaveApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&leave, "id = ?", id).Error; err != nil {
			return err
		}
		if leave.Status != model.LeavePending {
			return fmt.Errorf("%w: leave is %s", ErrInvalidTransition, leave.Status)
		}

		updates := map[string]any{"status": status}
		if status == model.LeaveApproved {
			updates["admin_signature_url"] = adminSignatureURL
		}
		return tx.Model(&leave).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// CreateFeedback stores a new feedback entry.
func (s *gormStore) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(fb).Error
}

// ListFeedbacks returns feedback entries newest first, with optional
// type and resolved filters.
func (s *gormStore) ListFeedbacks(ctx context.Context, fbType string, resolved *bool) ([]model.Feedback, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if fbType != "" {
		q = q.Where("feedback_type = ?", fbType)
	}
	if resolved != nil {
		q = q.Where("resolved = ?", *resolved)
	}
	var fbs []model.Feedback
	if err := q.Find(&fbs).Error; err != nil {
		return nil, err
	}
	return fbs, nil
}

// SetFeedbackResolved marks a feedback entry resolved or reopens it.
func (s *gormStore) SetFeedbackResolved(ctx context.Context, id uuid.UUID, resolved bool) error {
	res := s.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("id = ?", id).
		Update("resolved", resolved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFeedback removes a feedback entry.
func (s *gormStore) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
