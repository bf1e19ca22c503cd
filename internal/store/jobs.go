package store

import (
	"errors"
	"regexp"
	"strings"

	"ats-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// jobCodePattern matches codes like "XD.045" or "VP.012": an upper-case
// prefix, a dot, then digits.
var jobCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\.[0-9]{2,4}$`)

type JobFilter struct {
	Search     string // substring match on title and jobCode
	ProjectID  string
	Department string
	Location   string
	JobType    string
	Status     string
	Page       int
	Limit      int
}

type JobCreate struct {
	JobCode      string `json:"jobCode"`
	Title        string `json:"title"`
	Department   string `json:"department"`
	ProjectID    string `json:"projectId"`
	Location     string `json:"location"`
	JobType      string `json:"jobType"`
	Status       string `json:"status"`
	Deadline     string `json:"deadline"` // YYYY-MM-DD
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

// JobUpdate is a partial update: nil fields are left unchanged. JobCode is
// deliberately absent because codes are immutable once assigned.
type JobUpdate struct {
	Title        *string `json:"title"`
	Department   *string `json:"department"`
	ProjectID    *string `json:"projectId"`
	Location     *string `json:"location"`
	JobType      *string `json:"jobType"`
	Status       *string `json:"status"`
	Deadline     *string `json:"deadline"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Benefits     *string `json:"benefits"`
}

func (s *Store) ListJobs(f JobFilter) (*Paginated[models.JobPosting], error) {
	page, limit := normalizePage(f.Page, f.Limit, 10)

	q := s.db.Model(&models.JobPosting{})
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(job_code) LIKE ?", p, p)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	jobs := []models.JobPosting{}
	if err := q.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	if err := s.denormalizeJobs(jobs); err != nil {
		return nil, err
	}

	return &Paginated[models.JobPosting]{Data: jobs, Total: total, Page: page, Limit: limit}, nil
}

func (s *Store) GetJob(id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	jobs := []models.JobPosting{job}
	if err := s.denormalizeJobs(jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (s *Store) CreateJob(actor string, in JobCreate) (*models.JobPosting, error) {
	in.JobCode = strings.TrimSpace(in.JobCode)
	if in.JobCode == "" {
		return nil, invalid("jobCode", "is required")
	}
	if !jobCodePattern.MatchString(in.JobCode) {
		return nil, invalid("jobCode", "must match the XX.NNN format")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title", "is required")
	}
	if in.ProjectID == "" {
		return nil, invalid("projectId", "is required")
	}
	if _, err := s.GetProject(in.ProjectID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("projectId", "references an unknown project")
		}
		return nil, err
	}
	if !models.ValidJobType(models.JobType(in.JobType)) {
		return nil, invalid("jobType", "unknown job type")
	}
	if !models.ValidJobStatus(models.JobStatus(in.Status)) {
		return nil, invalid("status", "unknown job status")
	}
	deadline, err := parseDate("deadline", in.Deadline)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.JobPosting{}).Where("job_code = ?", in.JobCode).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	now := s.now()
	job := models.JobPosting{
		ID:           uuid.NewString(),
		JobCode:      in.JobCode,
		Title:        strings.TrimSpace(in.Title),
		Department:   in.Department,
		ProjectID:    in.ProjectID,
		Location:     in.Location,
		JobType:      models.JobType(in.JobType),
		Status:       models.JobStatus(in.Status),
		Deadline:     deadline,
		Description:  in.Description,
		Requirements: in.Requirements,
		Benefits:     in.Benefits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionCreate, models.EntityJobPosting, job.ID, job.JobCode+" - "+job.Title, nil, job)
	s.notifySync("job_posting", job.JobCode+" - "+job.Title)
	return s.GetJob(job.ID)
}

func (s *Store) UpdateJob(actor, id string, in JobUpdate) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	before := job

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, invalid("title", "is required")
		}
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Department != nil {
		job.Department = *in.Department
	}
	if in.ProjectID != nil {
		if _, err := s.GetProject(*in.ProjectID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, invalid("projectId", "references an unknown project")
			}
			return nil, err
		}
		job.ProjectID = *in.ProjectID
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.JobType != nil {
		if !models.ValidJobType(models.JobType(*in.JobType)) {
			return nil, invalid("jobType", "unknown job type")
		}
		job.JobType = models.JobType(*in.JobType)
	}
	if in.Status != nil {
		if !models.ValidJobStatus(models.JobStatus(*in.Status)) {
			return nil, invalid("status", "unknown job status")
		}
		job.Status = models.JobStatus(*in.Status)
	}
	if in.Deadline != nil {
		deadline, err := parseDate("deadline", *in.Deadline)
		if err != nil {
			return nil, err
		}
		job.Deadline = deadline
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Requirements != nil {
		job.Requirements = *in.Requirements
	}
	if in.Benefits != nil {
		job.Benefits = *in.Benefits
	}
	job.UpdatedAt = s.now()

	if err := s.db.Save(&job).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionUpdate, models.EntityJobPosting, job.ID, job.JobCode+" - "+job.Title, before, job)
	s.notifySync("job_posting", job.JobCode+" - "+job.Title)
	return s.GetJob(job.ID)
}

// denormalizeJobs fills ProjectName and CandidateCount from the current
// project and candidate tables. Always recomputed, never persisted.
func (s *Store) denormalizeJobs(jobs []models.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}
	projects, err := s.projectNames()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	type row struct {
		JobID string
		N     int64
	}
	var rows []row
	if err := s.db.Model(&models.Candidate{}).
		Select("job_id as job_id, COUNT(*) as n").
		Where("job_id IN ?", ids).
		Group("job_id").Scan(&rows).Error; err != nil {
		return err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.JobID] = r.N
	}

	for i := range jobs {
		jobs[i].ProjectName = projects[jobs[i].ProjectID]
		jobs[i].CandidateCount = counts[jobs[i].ID]
	}
	return nil
}
