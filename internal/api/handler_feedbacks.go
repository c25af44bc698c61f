package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostel-portal-backend/internal/model"
	"hostel-portal-backend/internal/mw"
)

type feedbackRequest struct {
	Name         string `json:"name" binding:"required"`
	RollNo       string `json:"roll_no" binding:"required"`
	Department   string `json:"department"`
	RoomNo       string `json:"room_no"`
	FeedbackType string `json:"feedback_type" binding:"required,oneof=feedback complaint suggestion"`
	Message      string `json:"message" binding:"required"`
	Urgency      string `json:"urgency" binding:"omitempty,oneof=low medium high"`
}

// CreateFeedback handles POST /api/feedbacks.
func (h *Handler) CreateFeedback(c *gin.Context) {
	identity := mw.Identity(c)

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Urgency == "" {
		req.Urgency = "medium"
	}

	fb := model.Feedback{
		UserID:       &identity.UserID,
		Name:         req.Name,
		RollNo:       req.RollNo,
		Department:   req.Department,
		RoomNo:       req.RoomNo,
		FeedbackType: req.FeedbackType,
		Message:      req.Message,
		Urgency:      req.Urgency,
	}

	if err := h.store.CreateFeedback(c.Request.Context(), &fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// ListFeedbacks handles GET /api/admin/feedbacks?type=&resolved=.
func (h *Handler) ListFeedbacks(c *gin.Context) {
	var resolved *bool
	switch c.Query("resolved") {
	case "":
	case "true", "1":
		v := true
		resolved = &v
	case "false", "0":
		v := false
		resolved = &v
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resolved filter"})
		return
	}

	fbs, err := h.store.ListFeedbacks(c.Request.Context(), c.Query("type"), resolved)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fbs)
}

type resolveFeedbackRequest struct {
	Resolved *bool `json:"resolved" binding:"required"`
}

// SetFeedbackResolved handles PATCH /api/admin/feedbacks/:id.
func (h *Handler) SetFeedbackResolved(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	var req resolveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetFeedbackResolved(c.Request.Context(), id, *req.Resolved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteFeedback handles DELETE /api/admin/feedbacks/:id.
func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	if err := h.store.DeleteFeedback(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
