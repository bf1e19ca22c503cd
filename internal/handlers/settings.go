package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/store"
)

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.Store.GetSettings()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var in store.SettingsUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.Store.UpdateSettings(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) Dashboard(c *gin.Context) {
	data, err := h.Store.Dashboard()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) Report(c *gin.Context) {
	timeRange := c.DefaultQuery("timeRange", "week")
	data, err := h.Store.Report(timeRange, c.Query("projectId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
