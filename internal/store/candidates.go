package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ats-backend/internal/database"
	"ats-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 .\-]{7,14}$`)
)

type CandidateFilter struct {
	Search           string // substring match on name, phone, email
	SourceID         string
	ClassificationID string
	PositionID       string
	ProjectID        string
	JobID            string
	Status           string
	StartDate        *time.Time // inclusive bounds on CreatedAt
	EndDate          *time.Time
	Page             int
	Limit            int
}

// CandidateCreate carries the caller-supplied fields. Code, status, logs and
// timestamps are store-assigned.
type CandidateCreate struct {
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	DateOfBirth        string  `json:"dateOfBirth"`
	Major              string  `json:"major"`
	SourceID           *string `json:"sourceId"`
	ClassificationID   *string `json:"classificationId"`
	PositionID         *string `json:"positionId"`
	JobID              *string `json:"jobId"`
	ProjectID          *string `json:"projectId"`
	ProbationarySalary int64   `json:"probationarySalary"`
	OfficialSalary     int64   `json:"officialSalary"`
	OnboardingDate     string  `json:"onboardingDate"`
	FollowUpDate       string  `json:"followUpDate"`
	CVURL              string  `json:"cvUrl"`
	AISummary          string  `json:"aiSummary"`
	AIScore            int     `json:"aiScore"`
	Note               string  `json:"note"`
}

// CandidateUpdate is a partial update: nil fields are left unchanged. Date
// fields take "" to clear and a YYYY-MM-DD value to set. Status is not
// updatable here: status changes go through UpdateCandidateStatus only.
type CandidateUpdate struct {
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	DateOfBirth        *string `json:"dateOfBirth"`
	Major              *string `json:"major"`
	SourceID           *string `json:"sourceId"`
	ClassificationID   *string `json:"classificationId"`
	PositionID         *string `json:"positionId"`
	JobID              *string `json:"jobId"`
	ProjectID          *string `json:"projectId"`
	ProbationarySalary *int64  `json:"probationarySalary"`
	OfficialSalary     *int64  `json:"officialSalary"`
	OnboardingDate     *string `json:"onboardingDate"`
	FollowUpDate       *string `json:"followUpDate"`
	CVURL              *string `json:"cvUrl"`
	AISummary          *string `json:"aiSummary"`
	AIScore            *int    `json:"aiScore"`
	Note               *string `json:"note"`
}

func (f CandidateFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}
	if f.SourceID != "" {
		q = q.Where("source_id = ?", f.SourceID)
	}
	if f.ClassificationID != "" {
		q = q.Where("classification_id = ?", f.ClassificationID)
	}
	if f.PositionID != "" {
		q = q.Where("position_id = ?", f.PositionID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.JobID != "" {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", endOfDay(*f.EndDate))
	}
	return q
}

func (s *Store) ListCandidates(f CandidateFilter) (*Paginated[models.Candidate], error) {
	page, limit := normalizePage(f.Page, f.Limit, 10)

	q := f.apply(s.db.Model(&models.Candidate{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	candidates := []models.Candidate{}
	if err := q.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Preload("StatusLogs", statusLogsNewestFirst).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if err := s.denormalizeCandidates(candidates); err != nil {
		return nil, err
	}

	return &Paginated[models.Candidate]{Data: candidates, Total: total, Page: page, Limit: limit}, nil
}

// ExportCandidates runs the same filtered query with no page cap, for CSV
// export.
func (s *Store) ExportCandidates(f CandidateFilter) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	if err := f.apply(s.db.Model(&models.Candidate{})).
		Order("created_at desc").
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if err := s.denormalizeCandidates(candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func statusLogsNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("status_logs.id DESC")
}

func (s *Store) GetCandidate(id string) (*models.Candidate, error) {
	var cand models.Candidate
	if err := s.db.Preload("StatusLogs", statusLogsNewestFirst).
		First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	list := []models.Candidate{cand}
	if err := s.denormalizeCandidates(list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CandidatesByJob returns all candidates linked to a job posting.
func (s *Store) CandidatesByJob(jobID string) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	if err := s.db.Where("job_id = ?", jobID).
		Order("created_at desc").
		Preload("StatusLogs", statusLogsNewestFirst).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if err := s.denormalizeCandidates(candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// TodaysFollowUps returns candidates whose follow-up date falls on the
// current day.
func (s *Store) TodaysFollowUps() ([]models.Candidate, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := endOfDay(start)

	candidates := []models.Candidate{}
	if err := s.db.Where("follow_up_date >= ? AND follow_up_date <= ?", start, end).
		Order("name asc").
		Preload("StatusLogs", statusLogsNewestFirst).
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if err := s.denormalizeCandidates(candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func validateCandidateContact(name, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "is required")
	}
	if !phonePattern.MatchString(phone) {
		return invalid("phone", "must be a valid phone number")
	}
	if !emailPattern.MatchString(email) {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

// nextCandidateCode advances the persistent counter and formats the new
// code. Codes strictly increase and are never reused.
func (s *Store) nextCandidateCode(tx *gorm.DB) (string, error) {
	if err := tx.Model(&models.Counter{}).
		Where("name = ?", database.CandidateCodeCounter).
		Update("value", gorm.Expr("value + 1")).Error; err != nil {
		return "", err
	}
	var counter models.Counter
	if err := tx.First(&counter, "name = ?", database.CandidateCodeCounter).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("XD.%d", counter.Value), nil
}

func (s *Store) CreateCandidate(actor string, in CandidateCreate) (*models.Candidate, error) {
	if err := validateCandidateContact(in.Name, in.Phone, in.Email); err != nil {
		return nil, err
	}
	if in.ProbationarySalary < 0 {
		return nil, invalid("probationarySalary", "must not be negative")
	}
	if in.OfficialSalary < 0 {
		return nil, invalid("officialSalary", "must not be negative")
	}
	dob, err := parseDate("dateOfBirth", in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	onboarding, err := parseDate("onboardingDate", in.OnboardingDate)
	if err != nil {
		return nil, err
	}
	followUp, err := parseDate("followUpDate", in.FollowUpDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cand := models.Candidate{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(in.Name),
		Phone:              in.Phone,
		Email:              in.Email,
		DateOfBirth:        dob,
		Major:              in.Major,
		SourceID:           in.SourceID,
		ClassificationID:   in.ClassificationID,
		PositionID:         in.PositionID,
		JobID:              in.JobID,
		ProjectID:          in.ProjectID,
		ProbationarySalary: in.ProbationarySalary,
		OfficialSalary:     in.OfficialSalary,
		OnboardingDate:     onboarding,
		FollowUpDate:       followUp,
		Status:             models.StatusApplied,
		CVURL:              in.CVURL,
		AISummary:          in.AISummary,
		AIScore:            in.AIScore,
		Note:               in.Note,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := s.nextCandidateCode(tx)
		if err != nil {
			return err
		}
		cand.CandidateCode = code

		// rename an uploaded CV after the assigned code, as the intake flow does
		if cand.CVURL != "" {
			cand.CVURL = renameCV(cand.CVURL, code, cand.Name)
		}

		if err := tx.Create(&cand).Error; err != nil {
			return err
		}
		// seed the history so statusLogs is never empty and its head matches
		// the initial status
		return tx.Create(&models.StatusLog{
			CandidateID: cand.ID,
			Status:      models.StatusApplied,
			UpdatedBy:   actor,
			UpdatedAt:   now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.record(actor, models.ActionCreate, models.EntityCandidate, cand.ID, cand.Name, nil, cand)
	s.notifySync("candidate", cand.Name)
	return s.GetCandidate(cand.ID)
}

// renameCV replaces the file segment of a CV URL with "<code> - <name>.pdf".
func renameCV(url, code, name string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return url
	}
	return url[:idx+1] + code + " - " + name + ".pdf"
}

func (s *Store) UpdateCandidate(actor, id string, in CandidateUpdate) (*models.Candidate, error) {
	var cand models.Candidate
	if err := s.db.First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	before := cand

	name, phone, email := cand.Name, cand.Phone, cand.Email
	if in.Name != nil {
		name = *in.Name
	}
	if in.Phone != nil {
		phone = *in.Phone
	}
	if in.Email != nil {
		email = *in.Email
	}
	if err := validateCandidateContact(name, phone, email); err != nil {
		return nil, err
	}
	cand.Name, cand.Phone, cand.Email = strings.TrimSpace(name), phone, email

	if in.DateOfBirth != nil {
		dob, err := parseDate("dateOfBirth", *in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		cand.DateOfBirth = dob
	}
	if in.Major != nil {
		cand.Major = *in.Major
	}
	if in.SourceID != nil {
		cand.SourceID = emptyAsNil(in.SourceID)
	}
	if in.ClassificationID != nil {
		cand.ClassificationID = emptyAsNil(in.ClassificationID)
	}
	if in.PositionID != nil {
		cand.PositionID = emptyAsNil(in.PositionID)
	}
	if in.JobID != nil {
		cand.JobID = emptyAsNil(in.JobID)
	}
	if in.ProjectID != nil {
		cand.ProjectID = emptyAsNil(in.ProjectID)
	}
	if in.ProbationarySalary != nil {
		if *in.ProbationarySalary < 0 {
			return nil, invalid("probationarySalary", "must not be negative")
		}
		cand.ProbationarySalary = *in.ProbationarySalary
	}
	if in.OfficialSalary != nil {
		if *in.OfficialSalary < 0 {
			return nil, invalid("officialSalary", "must not be negative")
		}
		cand.OfficialSalary = *in.OfficialSalary
	}
	if in.OnboardingDate != nil {
		onboarding, err := parseDate("onboardingDate", *in.OnboardingDate)
		if err != nil {
			return nil, err
		}
		cand.OnboardingDate = onboarding
	}
	if in.FollowUpDate != nil {
		// "" clears the follow-up date
		followUp, err := parseDate("followUpDate", *in.FollowUpDate)
		if err != nil {
			return nil, err
		}
		cand.FollowUpDate = followUp
	}
	if in.CVURL != nil {
		cand.CVURL = *in.CVURL
	}
	if in.AISummary != nil {
		cand.AISummary = *in.AISummary
	}
	if in.AIScore != nil {
		cand.AIScore = *in.AIScore
	}
	if in.Note != nil {
		cand.Note = *in.Note
	}
	cand.UpdatedAt = s.now()

	// Select("*") so cleared nullable fields are written back as NULL
	if err := s.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Select("*").Omit("id", "candidate_code", "created_at").
		Updates(&cand).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionUpdate, models.EntityCandidate, cand.ID, cand.Name, before, cand)
	s.notifySync("candidate", cand.Name)
	return s.GetCandidate(id)
}

// UpdateCandidateStatus applies one pipeline transition: it validates the
// move, prepends a status log entry and records a status_change audit entry
// holding only the status on each side.
func (s *Store) UpdateCandidateStatus(actor, id string, status models.CandidateStatus) (*models.Candidate, error) {
	var cand models.Candidate
	if err := s.db.First(&cand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !models.IsTransitionAllowed(cand.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cand.Status, status)
	}

	oldStatus := cand.Status
	now := s.now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Candidate{}).Where("id = ?", id).
			Updates(map[string]any{"status": status, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusLog{
			CandidateID: id,
			Status:      status,
			UpdatedBy:   actor,
			UpdatedAt:   now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.record(actor, models.ActionStatusChange, models.EntityCandidate, cand.ID, cand.Name,
		map[string]any{"status": oldStatus},
		map[string]any{"status": status})
	return s.GetCandidate(id)
}

func emptyAsNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// denormalizeCandidates resolves display names from the current lookup and
// project tables. Renaming a lookup item propagates to all future reads.
func (s *Store) denormalizeCandidates(candidates []models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	lookups, err := s.lookupNames()
	if err != nil {
		return err
	}
	projects, err := s.projectNames()
	if err != nil {
		return err
	}

	for i := range candidates {
		c := &candidates[i]
		if c.SourceID != nil {
			c.SourceName = lookups[*c.SourceID]
		}
		if c.ClassificationID != nil {
			c.ClassificationName = lookups[*c.ClassificationID]
		}
		if c.PositionID != nil {
			c.PositionName = lookups[*c.PositionID]
		}
		if c.ProjectID != nil {
			c.ProjectName = projects[*c.ProjectID]
		}
	}
	return nil
}
