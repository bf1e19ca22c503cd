package models

import "time"

// StatusLog is one entry of a candidate's status history. Entries are
// append-only; reads return them newest first and the head always matches
// Candidate.Status.
type StatusLog struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	CandidateID string          `gorm:"size:36;index;not null" json:"-"`
	Status      CandidateStatus `gorm:"size:30;not null" json:"status"`
	UpdatedBy   string          `gorm:"size:255;not null" json:"updatedBy"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Candidate struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	CandidateCode string `gorm:"size:20;uniqueIndex;not null" json:"candidateCode"` // "XD.<n>", assigned at creation, immutable

	Name  string `gorm:"size:255;not null" json:"name"`
	Phone string `gorm:"size:50;not null" json:"phone"`
	Email string `gorm:"size:255;not null" json:"email"`

	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Major       string     `gorm:"size:255" json:"major,omitempty"`

	SourceID         *string `gorm:"size:36;index" json:"sourceId,omitempty"`
	ClassificationID *string `gorm:"size:36;index" json:"classificationId,omitempty"`
	PositionID       *string `gorm:"size:36;index" json:"positionId,omitempty"`
	JobID            *string `gorm:"size:36;index" json:"jobId,omitempty"`
	ProjectID        *string `gorm:"size:36;index" json:"projectId,omitempty"`

	ProbationarySalary int64 `json:"probationarySalary"`
	OfficialSalary     int64 `json:"officialSalary"`

	OnboardingDate *time.Time `json:"onboardingDate,omitempty"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`

	Status     CandidateStatus `gorm:"size:30;not null;index" json:"status"`
	StatusLogs []StatusLog     `gorm:"foreignKey:CandidateID" json:"statusLogs"`

	CVURL     string `gorm:"size:512" json:"cvUrl,omitempty"`
	AISummary string `gorm:"type:text" json:"aiSummary,omitempty"`
	AIScore   int    `json:"aiScore,omitempty"`
	Note      string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Display-only fields resolved from the lookup tables at read time,
	// never persisted.
	SourceName         string `gorm:"-" json:"sourceName,omitempty"`
	ClassificationName string `gorm:"-" json:"classificationName,omitempty"`
	PositionName       string `gorm:"-" json:"positionName,omitempty"`
	ProjectName        string `gorm:"-" json:"projectName,omitempty"`
}
