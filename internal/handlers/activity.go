package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/store"
)

func (h *Handler) ListActivityLogs(c *gin.Context) {
	page, limit := pageParams(c)
	f := store.ActivityFilter{
		Actor:  c.Query("actor"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}
	if t, err := time.ParseInLocation("2006-01-02", c.Query("startDate"), time.Local); err == nil {
		f.StartDate = &t
	}
	if t, err := time.ParseInLocation("2006-01-02", c.Query("endDate"), time.Local); err == nil {
		f.EndDate = &t
	}

	result, err := h.Store.ListActivityLogs(f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListLogActors(c *gin.Context) {
	actors, err := h.Store.LogActors()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, actors)
}
