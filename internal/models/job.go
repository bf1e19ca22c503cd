package models

import "time"

type JobStatus string
type JobType string

const (
	JobStatusPosting JobStatus = "posting"
	JobStatusPaused  JobStatus = "paused"
	JobStatusFilled  JobStatus = "filled"
	JobStatusDraft   JobStatus = "draft"

	JobTypeFullTime JobType = "full_time"
	JobTypePartTime JobType = "part_time"
	JobTypeIntern   JobType = "intern"
)

// ValidJobStatus reports whether s is a known job posting status.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPosting, JobStatusPaused, JobStatusFilled, JobStatusDraft:
		return true
	}
	return false
}

// ValidJobType reports whether t is a known employment type.
func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeIntern:
		return true
	}
	return false
}

type JobPosting struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	JobCode string `gorm:"size:20;uniqueIndex;not null" json:"jobCode"` // e.g. "XD.045"

	Title      string `gorm:"size:255;not null" json:"title"`
	Department string `gorm:"size:255" json:"department"`
	ProjectID  string `gorm:"size:36;index;not null" json:"projectId"`
	Location   string `gorm:"size:255" json:"location"`

	JobType  JobType    `gorm:"size:20;not null" json:"jobType"`
	Status   JobStatus  `gorm:"size:20;not null;index" json:"status"`
	Deadline *time.Time `json:"deadline,omitempty"`

	Description  string `gorm:"type:text" json:"description"`
	Requirements string `gorm:"type:text" json:"requirements"`
	Benefits     string `gorm:"type:text" json:"benefits"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Resolved at read time from the project and candidate tables.
	ProjectName    string `gorm:"-" json:"projectName,omitempty"`
	CandidateCount int64  `gorm:"-" json:"candidateCount"`
}
