package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/cvparse"
	"ats-backend/internal/uploader"
)

// UploadFile pushes a file (CV or project image) to the storage endpoint
// configured in settings and returns its URL.
func (h *Handler) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	settings, err := h.Store.GetSettings()
	if err != nil {
		writeError(c, err)
		return
	}

	url, err := h.Uploader.Upload(settings.EndpointUpload, header.Filename, f)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, uploader.ErrNoEndpoint) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ParseCV extracts candidate fields from an uploaded CV for form prefill.
// A parse failure is an error response and nothing else, no state changes.
func (h *Handler) ParseCV(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	parsed, err := cvparse.Parse(f, header.Filename)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, parsed)
}
