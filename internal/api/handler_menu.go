package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-portal-backend/internal/model"
)

// GetMenu handles GET /api/menu.
func (h *Handler) GetMenu(c *gin.Context) {
	days, err := h.store.WeeklyMenu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}

type menuDayRequest struct {
	Day       string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Morning   string `json:"morning"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Evening   string `json:"evening"`
	Dinner    string `json:"dinner"`
}

// PutMenu handles PUT /api/admin/menu: replaces the whole week.
func (h *Handler) PutMenu(c *gin.Context) {
	var req []menuDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days := make([]model.MenuDay, 0, len(req))
	seen := make(map[string]bool, len(req))
	for _, d := range req {
		if seen[d.Day] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate day " + d.Day})
			return
		}
		seen[d.Day] = true
		days = append(days, model.MenuDay{
			Day:       d.Day,
			Morning:   d.Morning,
			Breakfast: d.Breakfast,
			Lunch:     d.Lunch,
			Evening:   d.Evening,
			Dinner:    d.Dinner,
		})
	}

	if err := h.store.ReplaceWeeklyMenu(c.Request.Context(), days); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
