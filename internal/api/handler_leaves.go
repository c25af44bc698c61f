package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostel-portal-backend/internal/model"
	"hostel-portal-backend/internal/mw"
	"hostel-portal-backend/internal/notification"
	"hostel-portal-backend/internal/store"
)

type leaveRequest struct {
	Name                string `json:"name" binding:"required"`
	RollNumber          string `json:"roll_number" binding:"required"`
	Branch              string `json:"branch"`
	Year                string `json:"year"`
	Semester            string `json:"semester"`
	HostelName          string `json:"hostel_name"`
	RoomNumber          string `json:"room_number"`
	DateOfStay          string `json:"date_of_stay" binding:"required"`
	Time                string `json:"time"`
	Reason              string `json:"reason" binding:"required"`
	StudentMobile       string `json:"student_mobile"`
	ParentMobile        string `json:"parent_mobile"`
	InformedAdvisor     string `json:"informed_advisor"`
	AdvisorName         string `json:"advisor_name"`
	AdvisorMobile       string `json:"advisor_mobile"`
	StudentSignatureURL string `json:"student_signature_url"`
}

// CreateLeave handles POST /api/leaves.
func (h *Handler) CreateLeave(c *gin.Context) {
	identity := mw.Identity(c)

	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leave := model.LeaveApplication{
		UserID:              identity.UserID,
		Name:                req.Name,
		RollNumber:          req.RollNumber,
		Branch:              req.Branch,
		Year:                req.Year,
		Semester:            req.Semester,
		HostelName:          req.HostelName,
		RoomNumber:          req.RoomNumber,
		DateOfStay:          req.DateOfStay,
		Time:                req.Time,
		Reason:              req.Reason,
		StudentMobile:       req.StudentMobile,
		ParentMobile:        req.ParentMobile,
		InformedAdvisor:     req.InformedAdvisor,
		AdvisorName:         req.AdvisorName,
		AdvisorMobile:       req.AdvisorMobile,
		StudentSignatureURL: req.StudentSignatureURL,
	}

	if err := h.store.CreateLeave(c.Request.Context(), &leave); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, leave)
}

// GetMyLeaves handles GET /api/leaves/mine.
func (h *Handler) GetMyLeaves(c *gin.Context) {
	identity := mw.Identity(c)

	leaves, err := h.store.LeavesForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// ListLeaves handles GET /api/admin/leaves?status=.
func (h *Handler) ListLeaves(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", model.LeavePending, model.LeaveApproved, model.LeaveRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	leaves, err := h.store.ListLeaves(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

type decideLeaveRequest struct {
	Status            string `json:"status" binding:"required"`
	AdminSignatureURL string `json:"admin_signature_url"`
}

// DecideLeave handles PATCH /api/admin/leaves/:id.
func (h *Handler) DecideLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave ID"})
		return
	}

	var req decideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leave, err := h.store.DecideLeave(c.Request.Context(), id, req.Status, req.AdminSignatureURL)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "leave application not found"})
		return
	case errors.Is(err, store.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.pool != nil {
		h.pool.Dispatch(notification.Decision{
			UserID:  leave.UserID,
			Message: fmt.Sprintf("Your leave application for %s has been %s.", leave.DateOfStay, req.Status),
		})
	}

	c.JSON(http.StatusOK, leave)
}
