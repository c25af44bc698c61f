package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile holds the hosteller's registration details.
// CanApply gates new room requests: it is flipped false when an
// allocation is confirmed and back to true on rejection.
type StudentProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	RollNo           string    `gorm:"size:64;uniqueIndex;not null" json:"roll_no"`
	Name             string    `gorm:"size:256;not null" json:"name"`
	Email            string    `gorm:"size:256" json:"email"`
	Department       string    `gorm:"size:128" json:"department"`
	Year             string    `gorm:"size:8" json:"year"`
	Section          string    `gorm:"size:8" json:"section"`
	Mobile           string    `gorm:"size:20" json:"mobile"`
	Whatsapp         string    `gorm:"size:20" json:"whatsapp"`
	BloodGroup       string    `gorm:"size:8" json:"blood_group"`
	DOB              string    `gorm:"size:16" json:"dob"`
	Address          string    `gorm:"size:512" json:"address"`
	District         string    `gorm:"size:128" json:"district"`
	FatherName       string    `gorm:"size:256" json:"father_name"`
	FatherContact    string    `gorm:"size:20" json:"father_contact"`
	FatherOccupation string    `gorm:"size:128" json:"father_occupation"`
	MotherName       string    `gorm:"size:256" json:"mother_name"`
	MotherContact    string    `gorm:"size:20" json:"mother_contact"`
	MotherOccupation string    `gorm:"size:128" json:"mother_occupation"`
	AdmissionMode    string    `gorm:"size:32" json:"admission_mode"`
	FeeMode          string    `gorm:"size:32" json:"fee_mode"`
	Floor            string    `gorm:"size:32" json:"floor"`
	RoomNo           string    `gorm:"size:16" json:"room_no"`
	PassportPhotoURL string    `gorm:"size:512" json:"passport_photo_url"`
	IDCardPhotoURL   string    `gorm:"size:512" json:"id_card_photo_url"`
	FeesReceiptURL   string    `gorm:"size:512" json:"fees_receipt_url"`
	CanApply         bool      `gorm:"not null;default:true" json:"can_apply"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
