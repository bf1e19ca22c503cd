package models

import (
	"encoding/json"
	"time"
)

type ActivityAction string
type ActivityEntity string

const (
	ActionCreate       ActivityAction = "create"
	ActionUpdate       ActivityAction = "update"
	ActionDelete       ActivityAction = "delete"
	ActionStatusChange ActivityAction = "status_change"

	EntityProject        ActivityEntity = "project"
	EntityJobPosting     ActivityEntity = "job_posting"
	EntityCandidate      ActivityEntity = "candidate"
	EntitySource         ActivityEntity = "source"
	EntityClassification ActivityEntity = "classification"
	EntityPosition       ActivityEntity = "position"
)

// LogDetails carries the before/after snapshots of a mutation. A nil side
// marshals as JSON null (create has no before, delete has no after).
type LogDetails struct {
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

// ActivityLog is an immutable audit record. Rows are only ever appended and
// are served newest first. Before/After hold JSON snapshots taken by value at
// the moment of the mutation.
type ActivityLog struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Actor      string         `gorm:"size:255;not null;index" json:"actor"`
	Action     ActivityAction `gorm:"size:30;not null" json:"action"`
	Entity     ActivityEntity `gorm:"size:30;not null;index" json:"entity"`
	EntityID   string         `gorm:"size:36;index" json:"entityId"`
	EntityName string         `gorm:"size:255" json:"entityName"`
	Timestamp  time.Time      `gorm:"index" json:"timestamp"`

	Before *string `gorm:"type:text" json:"-"`
	After  *string `gorm:"type:text" json:"-"`

	Details LogDetails `gorm:"-" json:"details"`
}

// FillDetails populates Details from the stored snapshot columns.
func (l *ActivityLog) FillDetails() {
	if l.Before != nil {
		l.Details.Before = json.RawMessage(*l.Before)
	}
	if l.After != nil {
		l.Details.After = json.RawMessage(*l.After)
	}
}
