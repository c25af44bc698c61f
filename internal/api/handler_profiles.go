package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-portal-backend/internal/model"
	"hostel-portal-backend/internal/mw"
)

type profileRequest struct {
	RollNo           string `json:"roll_no" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Department       string `json:"department"`
	Year             string `json:"year"`
	Section          string `json:"section"`
	Mobile           string `json:"mobile"`
	Whatsapp         string `json:"whatsapp"`
	BloodGroup       string `json:"blood_group"`
	DOB              string `json:"dob"`
	Address          string `json:"address"`
	District         string `json:"district"`
	FatherName       string `json:"father_name"`
	FatherContact    string `json:"father_contact"`
	FatherOccupation string `json:"father_occupation"`
	MotherName       string `json:"mother_name"`
	MotherContact    string `json:"mother_contact"`
	MotherOccupation string `json:"mother_occupation"`
	AdmissionMode    string `json:"admission_mode"`
	FeeMode          string `json:"fee_mode"`
	Floor            string `json:"floor"`
	RoomNo           string `json:"room_no"`
	PassportPhotoURL string `json:"passport_photo_url"`
	IDCardPhotoURL   string `json:"id_card_photo_url"`
	FeesReceiptURL   string `json:"fees_receipt_url"`
}

// PutProfile handles PUT /api/profile: create or replace the caller's
// profile. The can_apply flag is untouched here; only allocation
// decisions move it.
func (h *Handler) PutProfile(c *gin.Context) {
	identity := mw.Identity(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := model.StudentProfile{
		UserID:           identity.UserID,
		RollNo:           req.RollNo,
		Name:             req.Name,
		Email:            identity.Email,
		Department:       req.Department,
		Year:             req.Year,
		Section:          req.Section,
		Mobile:           req.Mobile,
		Whatsapp:         req.Whatsapp,
		BloodGroup:       req.BloodGroup,
		DOB:              req.DOB,
		Address:          req.Address,
		District:         req.District,
		FatherName:       req.FatherName,
		FatherContact:    req.FatherContact,
		FatherOccupation: req.FatherOccupation,
		MotherName:       req.MotherName,
		MotherContact:    req.MotherContact,
		MotherOccupation: req.MotherOccupation,
		AdmissionMode:    req.AdmissionMode,
		FeeMode:          req.FeeMode,
		Floor:            req.Floor,
		RoomNo:           req.RoomNo,
		PassportPhotoURL: req.PassportPhotoURL,
		IDCardPhotoURL:   req.IDCardPhotoURL,
		FeesReceiptURL:   req.FeesReceiptURL,
		CanApply:         true,
	}

	if err := h.store.UpsertProfile(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMyProfile handles GET /api/profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	identity := mw.Identity(c)

	profile, err := h.store.ProfileForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListStudents handles GET /api/admin/students?search=.
func (h *Handler) ListStudents(c *gin.Context) {
	profiles, err := h.store.ListProfiles(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
