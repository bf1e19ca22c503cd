package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/config"
	"ats-backend/internal/handlers"
	"ats-backend/internal/middleware"
	"ats-backend/internal/models"
)

func NewRouter(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.InjectActor(cfg.DefaultActor))

	api := r.Group("/api")

	// PROJECTS
	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.GET("/projects/all", h.AllProjects)
	api.GET("/projects/investors", h.ListInvestors)
	api.GET("/projects/:id", h.GetProject)
	api.PUT("/projects/:id", h.UpdateProject)
	api.DELETE("/projects/:id", h.DeleteProject)

	// JOB POSTINGS
	api.GET("/jobs", h.ListJobs)
	api.POST("/jobs", h.CreateJob)
	api.GET("/jobs/:id", h.GetJob)
	api.PUT("/jobs/:id", h.UpdateJob)
	api.GET("/jobs/:id/candidates", h.JobCandidates)

	// CANDIDATES
	api.GET("/candidates", h.ListCandidates)
	api.POST("/candidates", h.CreateCandidate)
	api.GET("/candidates/follow-ups", h.TodaysFollowUps)
	api.GET("/candidates/export", h.ExportCandidates)
	api.POST("/candidates/parse-cv", h.ParseCV)
	api.POST("/candidates/upload-cv", h.UploadFile)
	api.GET("/candidates/:id", h.GetCandidate)
	api.PUT("/candidates/:id", h.UpdateCandidate)
	api.PUT("/candidates/:id/status", h.UpdateCandidateStatus)

	// LOOKUP CATEGORIES
	registerCategory(api, "/sources", h, models.LookupSource)
	registerCategory(api, "/classifications", h, models.LookupClassification)
	registerCategory(api, "/positions", h, models.LookupPosition)

	// ACTIVITY LOG
	api.GET("/activity-logs", h.ListActivityLogs)
	api.GET("/activity-logs/actors", h.ListLogActors)

	// SETTINGS, DASHBOARD, REPORTS
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.GET("/dashboard", h.Dashboard)
	api.GET("/reports", h.Report)

	// UPLOADS
	api.POST("/uploads", h.UploadFile)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

func registerCategory(g *gin.RouterGroup, path string, h *handlers.Handler, kind models.LookupKind) {
	g.GET(path, h.ListCategory(kind))
	g.POST(path, h.CreateCategory(kind))
	g.PUT(path+"/:id", h.UpdateCategory(kind))
	g.DELETE(path+"/:id", h.DeleteCategory(kind))
}
