package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/middleware"
	"ats-backend/internal/models"
	"ats-backend/internal/store"
)

func candidateFilter(c *gin.Context) store.CandidateFilter {
	page, limit := pageParams(c)
	f := store.CandidateFilter{
		Search:           c.Query("search"),
		SourceID:         c.Query("sourceId"),
		ClassificationID: c.Query("classificationId"),
		PositionID:       c.Query("positionId"),
		ProjectID:        c.Query("projectId"),
		JobID:            c.Query("jobId"),
		Status:           c.Query("status"),
		Page:             page,
		Limit:            limit,
	}
	if t, err := time.ParseInLocation("2006-01-02", c.Query("startDate"), time.Local); err == nil {
		f.StartDate = &t
	}
	if t, err := time.ParseInLocation("2006-01-02", c.Query("endDate"), time.Local); err == nil {
		f.EndDate = &t
	}
	return f
}

func (h *Handler) ListCandidates(c *gin.Context) {
	result, err := h.Store.ListCandidates(candidateFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetCandidate(c *gin.Context) {
	cand, err := h.Store.GetCandidate(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *Handler) CreateCandidate(c *gin.Context) {
	var in store.CandidateCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cand, err := h.Store.CreateCandidate(middleware.Actor(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

func (h *Handler) UpdateCandidate(c *gin.Context) {
	var in store.CandidateUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cand, err := h.Store.UpdateCandidate(middleware.Actor(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *Handler) UpdateCandidateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.ParseCandidateStatus(in.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cand, err := h.Store.UpdateCandidateStatus(middleware.Actor(c), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *Handler) TodaysFollowUps(c *gin.Context) {
	candidates, err := h.Store.TodaysFollowUps()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// ExportCandidates streams the filtered candidate list as CSV.
func (h *Handler) ExportCandidates(c *gin.Context) {
	candidates, err := h.Store.ExportCandidates(candidateFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="candidates.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"Code", "Name", "Phone", "Email", "DateOfBirth", "Major",
		"Source", "Classification", "Position", "Project",
		"ProbationarySalary", "OfficialSalary",
		"OnboardingDate", "FollowUpDate", "Status", "Note",
	})
	for _, cand := range candidates {
		_ = w.Write([]string{
			cand.CandidateCode, cand.Name, cand.Phone, cand.Email,
			formatDate(cand.DateOfBirth), cand.Major,
			cand.SourceName, cand.ClassificationName, cand.PositionName, cand.ProjectName,
			strconv.FormatInt(cand.ProbationarySalary, 10),
			strconv.FormatInt(cand.OfficialSalary, 10),
			formatDate(cand.OnboardingDate), formatDate(cand.FollowUpDate),
			string(cand.Status), cand.Note,
		})
	}
	w.Flush()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
