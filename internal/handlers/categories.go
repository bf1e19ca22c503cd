package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/middleware"
	"ats-backend/internal/models"
)

// Category routes are registered once per lookup kind; the kind is bound at
// registration time.

func (h *Handler) ListCategory(kind models.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.Store.ListLookups(kind)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *Handler) CreateCategory(kind models.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := h.Store.CreateLookup(middleware.Actor(c), kind, in.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func (h *Handler) UpdateCategory(kind models.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := h.Store.UpdateLookup(middleware.Actor(c), kind, c.Param("id"), in.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func (h *Handler) DeleteCategory(kind models.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Store.DeleteLookup(middleware.Actor(c), kind, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	}
}
