package store

import (
	"errors"
	"fmt"
	"strings"

	"ats-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectFilter struct {
	Search   string // substring match on name, address, investor
	Investor string // exact match
	Page     int
	Limit    int
}

type ProjectCreate struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Investor string   `json:"investor"`
	Manager  string   `json:"manager"`
	Phone    string   `json:"phone"`
	Images   []string `json:"images"`
}

// ProjectUpdate is a partial update: nil fields are left unchanged.
type ProjectUpdate struct {
	Name     *string   `json:"name"`
	Address  *string   `json:"address"`
	Investor *string   `json:"investor"`
	Manager  *string   `json:"manager"`
	Phone    *string   `json:"phone"`
	Images   *[]string `json:"images"`
}

func (s *Store) ListProjects(f ProjectFilter) (*Paginated[models.Project], error) {
	page, limit := normalizePage(f.Page, f.Limit, 10)

	q := s.db.Model(&models.Project{})
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(investor) LIKE ?", p, p, p)
	}
	if f.Investor != "" {
		q = q.Where("investor = ?", f.Investor)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	projects := []models.Project{}
	if err := q.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return &Paginated[models.Project]{Data: projects, Total: total, Page: page, Limit: limit}, nil
}

// AllProjects returns every project, for selection lists.
func (s *Store) AllProjects() ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.Order("name asc").Find(&projects).Error
	return projects, err
}

// Investors returns the distinct investor names, sorted.
func (s *Store) Investors() ([]string, error) {
	var investors []string
	err := s.db.Model(&models.Project{}).
		Where("investor <> ''").
		Distinct("investor").Order("investor asc").
		Pluck("investor", &investors).Error
	return investors, err
}

func (s *Store) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func validateProjectImages(images []string) error {
	if len(images) > models.MaxProjectImages {
		return invalid("images", fmt.Sprintf("at most %d images are allowed", models.MaxProjectImages))
	}
	return nil
}

func (s *Store) CreateProject(actor string, in ProjectCreate) (*models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name", "is required")
	}
	if err := validateProjectImages(in.Images); err != nil {
		return nil, err
	}

	now := s.now()
	project := models.Project{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Investor:  in.Investor,
		Manager:   in.Manager,
		Phone:     in.Phone,
		Images:    in.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionCreate, models.EntityProject, project.ID, project.Name, nil, project)
	s.notifySync("project", project.Name)
	return &project, nil
}

func (s *Store) UpdateProject(actor, id string, in ProjectUpdate) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	before := *project

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, invalid("name", "is required")
		}
		project.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		project.Address = *in.Address
	}
	if in.Investor != nil {
		project.Investor = *in.Investor
	}
	if in.Manager != nil {
		project.Manager = *in.Manager
	}
	if in.Phone != nil {
		project.Phone = *in.Phone
	}
	if in.Images != nil {
		if err := validateProjectImages(*in.Images); err != nil {
			return nil, err
		}
		project.Images = *in.Images
	}
	project.UpdatedAt = s.now()

	if err := s.db.Save(project).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionUpdate, models.EntityProject, project.ID, project.Name, before, *project)
	s.notifySync("project", project.Name)
	return project, nil
}

// DeleteProject hard-deletes a project. Deleting a project that jobs or
// candidates still reference is rejected; there is no cascade.
func (s *Store) DeleteProject(actor, id string) error {
	project, err := s.GetProject(id)
	if err != nil {
		return err
	}

	var jobs, candidates int64
	if err := s.db.Model(&models.JobPosting{}).Where("project_id = ?", id).Count(&jobs).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.Candidate{}).Where("project_id = ?", id).Count(&candidates).Error; err != nil {
		return err
	}
	if jobs+candidates > 0 {
		return invalid("id", fmt.Sprintf("project is referenced by %d job(s) and %d candidate(s)", jobs, candidates))
	}

	if err := s.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.record(actor, models.ActionDelete, models.EntityProject, project.ID, project.Name, *project, nil)
	return nil
}

// projectNames maps project id -> name for read-time denormalization.
func (s *Store) projectNames() (map[string]string, error) {
	type row struct {
		ID   string
		Name string
	}
	var rows []row
	if err := s.db.Model(&models.Project{}).Select("id", "name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
