package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/middleware"
	"ats-backend/internal/store"
)

func (h *Handler) ListJobs(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := h.Store.ListJobs(store.JobFilter{
		Search:     c.Query("search"),
		ProjectID:  c.Query("projectId"),
		Department: c.Query("department"),
		Location:   c.Query("location"),
		JobType:    c.Query("jobType"),
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.Store.GetJob(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var in store.JobCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := h.Store.CreateJob(middleware.Actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) UpdateJob(c *gin.Context) {
	var in store.JobUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := h.Store.UpdateJob(middleware.Actor(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) JobCandidates(c *gin.Context) {
	if _, err := h.Store.GetJob(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	candidates, err := h.Store.CandidatesByJob(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}
