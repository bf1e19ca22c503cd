package store

import (
	"encoding/json"
	"log"
	"time"

	"ats-backend/internal/models"

	"github.com/google/uuid"
)

// record appends an audit entry. It is best effort: a failure here is logged
// and never rolls back or fails the primary mutation.
func (s *Store) record(actor string, action models.ActivityAction, entity models.ActivityEntity, entityID, entityName string, before, after any) {
	entry := models.ActivityLog{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		EntityName: entityName,
		Timestamp:  s.now(),
		Before:     snapshot(before),
		After:      snapshot(after),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s %s %s: %v", action, entity, entityID, err)
	}
}

// snapshot serializes v by value at the moment of the mutation, so later
// changes to the live entity cannot leak into the stored log.
func snapshot(v any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("audit: failed to snapshot %T: %v", v, err)
		return nil
	}
	s := string(b)
	return &s
}

// ActivityFilter narrows the audit trail. Date bounds are inclusive and
// apply to Timestamp.
type ActivityFilter struct {
	Actor     string
	Entity    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ListActivityLogs returns audit entries newest first.
func (s *Store) ListActivityLogs(f ActivityFilter) (*Paginated[models.ActivityLog], error) {
	page, limit := normalizePage(f.Page, f.Limit, 15)

	q := s.db.Model(&models.ActivityLog{})
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.StartDate != nil {
		q = q.Where("timestamp >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("timestamp <= ?", endOfDay(*f.EndDate))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	logs := []models.ActivityLog{}
	if err := q.Order("timestamp desc, id desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].FillDetails()
	}

	return &Paginated[models.ActivityLog]{Data: logs, Total: total, Page: page, Limit: limit}, nil
}

// LogActors returns the distinct audit actors, sorted.
func (s *Store) LogActors() ([]string, error) {
	var actors []string
	err := s.db.Model(&models.ActivityLog{}).
		Distinct("actor").Order("actor asc").Pluck("actor", &actors).Error
	return actors, err
}
