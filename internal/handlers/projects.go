package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/middleware"
	"ats-backend/internal/store"
)

func (h *Handler) ListProjects(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := h.Store.ListProjects(store.ProjectFilter{
		Search:   c.Query("search"),
		Investor: c.Query("investor"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) AllProjects(c *gin.Context) {
	projects, err := h.Store.AllProjects()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) ListInvestors(c *gin.Context) {
	investors, err := h.Store.Investors()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, investors)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.Store.GetProject(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var in store.ProjectCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := h.Store.CreateProject(middleware.Actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var in store.ProjectUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := h.Store.UpdateProject(middleware.Actor(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.Store.DeleteProject(middleware.Actor(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}
