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

type claimRequest struct {
	Name          string `json:"name" binding:"required"`
	RegNo         string `json:"reg_no" binding:"required"`
	Department    string `json:"department" binding:"required"`
	FeesStatus    string `json:"fees_status"`
	ReceiptURL    string `json:"receipt_url" binding:"required"`
	TransactionID string `json:"transaction_id"`
	PaymentDate   string `json:"payment_date"`
	Hostel        string `json:"hostel" binding:"required"`
	Floor         string `json:"floor" binding:"required"`
	RoomNumber    string `json:"room_number" binding:"required"`
	BedNumber     int    `json:"bed_number" binding:"required,min=1"`
}

// ClaimAllocation handles POST /api/allocations: the authoritative
// check-and-claim for a bed. A stale client snapshot is irrelevant
// here; the claim transaction re-checks the live table.
func (h *Handler) ClaimAllocation(c *gin.Context) {
	identity := mw.Identity(c)

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.knownHostel(req.Hostel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown hostel"})
		return
	}

	alloc := model.Allocation{
		UserID:        identity.UserID,
		Email:         identity.Email,
		Name:          req.Name,
		RegNo:         req.RegNo,
		Department:    req.Department,
		FeesStatus:    req.FeesStatus,
		ReceiptURL:    req.ReceiptURL,
		TransactionID: req.TransactionID,
		PaymentDate:   req.PaymentDate,
		Hostel:        req.Hostel,
		Floor:         req.Floor,
		RoomNumber:    req.RoomNumber,
		BedNumber:     req.BedNumber,
	}

	err := h.store.ClaimAllocation(c.Request.Context(), &alloc)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrBedTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "bed already taken, please select another bed"})
		return
	case errors.Is(err, store.ErrNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": "you already have a confirmed allocation"})
		return
	case errors.Is(err, store.ErrUnmappedFloor), errors.Is(err, store.ErrInvalidBed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The claim changed occupancy; the next vacancy read must see it.
	h.snapshot.Invalidate()

	c.JSON(http.StatusCreated, alloc)
}

// GetMyAllocation handles GET /api/allocations/mine.
func (h *Handler) GetMyAllocation(c *gin.Context) {
	identity := mw.Identity(c)

	alloc, err := h.store.AllocationForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no allocation found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, alloc)
}

// ListAllocations handles GET /api/admin/allocations?status=.
func (h *Handler) ListAllocations(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", model.AllocationPending, model.AllocationConfirmed, model.AllocationRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	allocs, err := h.store.ListAllocations(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, allocs)
}

type decideAllocationRequest struct {
	Status string `json:"status" binding:"required"`
}

// DecideAllocation handles PATCH /api/admin/allocations/:id. Confirming
// an allocation also flips the student's eligibility flag inside the
// same store transaction, then notifies the requester.
func (h *Handler) DecideAllocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allocation ID"})
		return
	}

	var req decideAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alloc, err := h.store.DecideAllocation(c.Request.Context(), id, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "allocation not found"})
		return
	case errors.Is(err, store.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.snapshot.Invalidate()

	if h.pool != nil {
		h.pool.Dispatch(notification.Decision{
			UserID: alloc.UserID,
			Message: fmt.Sprintf("Your room request for %s %s floor, room %s bed %d has been %s.",
				alloc.Hostel, alloc.Floor, alloc.RoomNumber, alloc.BedNumber, req.Status),
		})
	}

	c.JSON(http.StatusOK, alloc)
}
