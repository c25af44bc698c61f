package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback categories and urgency levels accepted from the form.
const (
	FeedbackTypeFeedback   = "feedback"
	FeedbackTypeComplaint  = "complaint"
	FeedbackTypeSuggestion = "suggestion"
)

// Feedback is a student-submitted feedback, complaint, or suggestion.
type Feedback struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name         string     `gorm:"size:256;not null" json:"name"`
	RollNo       string     `gorm:"size:64;not null" json:"roll_no"`
	Department   string     `gorm:"size:128" json:"department"`
	RoomNo       string     `gorm:"size:16" json:"room_no"`
	FeedbackType string     `gorm:"size:32;index;not null" json:"feedback_type"`
	Message      string     `gorm:"size:2048;not null" json:"message"`
	Urgency      string     `gorm:"size:16;not null;default:medium" json:"urgency"`
	Resolved     bool       `gorm:"not null;default:false" json:"resolved"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
