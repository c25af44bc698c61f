package model

import (
	"time"

	"github.com/google/uuid"
)

// Leave application statuses.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveApplication is a permission request to stay in the hostel during
// college hours. Decided by an administrator.
type LeaveApplication struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name                string    `gorm:"size:256;not null" json:"name"`
	RollNumber          string    `gorm:"size:64;index;not null" json:"roll_number"`
	Branch              string    `gorm:"size:128" json:"branch"`
	Year                string    `gorm:"size:8" json:"year"`
	Semester            string    `gorm:"size:8" json:"semester"`
	HostelName          string    `gorm:"size:64" json:"hostel_name"`
	RoomNumber          string    `gorm:"size:16" json:"room_number"`
	DateOfStay          string    `gorm:"size:16;not null" json:"date_of_stay"`
	Time                string    `gorm:"size:16" json:"time"`
	Reason              string    `gorm:"size:1024;not null" json:"reason"`
	StudentMobile       string    `gorm:"size:20" json:"student_mobile"`
	ParentMobile        string    `gorm:"size:20" json:"parent_mobile"`
	InformedAdvisor     string    `gorm:"size:8" json:"informed_advisor"`
	AdvisorName         string    `gorm:"size:256" json:"advisor_name"`
	AdvisorMobile       string    `gorm:"size:20" json:"advisor_mobile"`
	StudentSignatureURL string    `gorm:"size:512" json:"student_signature_url"`
	AdminSignatureURL   string    `gorm:"size:512" json:"admin_signature_url"`
	Status              string    `gorm:"size:16;index;not null;default:pending" json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
