package model

import (
	"time"

	"github.com/google/uuid"
)

// Allocation statuses. A rejected allocation may be replaced by a fresh
// pending submission from the same user (same user_id key).
const (
	AllocationPending   = "pending"
	AllocationConfirmed = "confirmed"
	AllocationRejected  = "rejected"
)

// Allocation is a student's claim on a specific hostel/floor/room/bed.
// user_id is the upsert conflict key: at most one row per user.
type Allocation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Email         string    `gorm:"size:256;not null" json:"email"`
	Name          string    `gorm:"size:256;not null" json:"name"`
	RegNo         string    `gorm:"size:64;index;not null" json:"reg_no"`
	Department    string    `gorm:"size:128" json:"department"`
	FeesStatus    string    `gorm:"size:32" json:"fees_status"`
	ReceiptURL    string    `gorm:"size:512" json:"receipt_url"`
	TransactionID string    `gorm:"size:128" json:"transaction_id"`
	PaymentDate   string    `gorm:"size:32" json:"payment_date"`
	Hostel        string    `gorm:"size:64;index;not null" json:"hostel"`
	Floor         string    `gorm:"size:32;index;not null" json:"floor"`
	RoomNumber    string    `gorm:"size:16;not null" json:"room_number"`
	BedNumber     int       `gorm:"not null" json:"bed_number"`
	Status        string    `gorm:"size:16;index;not null;default:pending" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
