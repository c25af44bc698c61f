package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-portal-backend/internal/files"
)

// Upload handles POST /api/uploads: multipart receipt/signature upload.
// The returned URL is stored opaquely on allocation, profile, and leave
// records; nothing downstream interprets the file contents.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	url, err := h.uploads.Save(fh)
	if err != nil {
		if errors.Is(err, files.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
