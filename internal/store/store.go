// Package store owns the authoritative entity collections and every write
// path into them. All reads are filtered, paginated and denormalized here;
// all mutations stamp timestamps, validate before touching state and record
// an audit entry. Nothing outside this package mutates entities directly.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicate         = errors.New("duplicate key")
)

// ValidationError rejects a mutation before any state change.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Syncer receives fire-and-forget entity-changed notifications. It must
// never block for long and its failures never fail the primary mutation.
type Syncer interface {
	EntityChanged(entity, name string)
}

// Store is the single owner of all entity collections. Construct one per
// application (or per test, for isolation) and pass it by reference.
type Store struct {
	db   *gorm.DB
	sync Syncer
	now  func() time.Time
}

// New returns a Store over db. sync may be nil.
func New(db *gorm.DB, sync Syncer) *Store {
	return &Store{db: db, sync: sync, now: time.Now}
}

// Paginated is the envelope every list operation returns. Total counts all
// matches before slicing; Page is 1-indexed.
type Paginated[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// normalizePage applies the defaults shared by every list operation.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE.
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

const dateLayout = "2006-01-02"

// parseDate turns a YYYY-MM-DD string into a date. Empty input is nil, not
// an error; malformed input is a validation error naming the field.
func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

// endOfDay pushes an inclusive end-date bound to the last instant of its day.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// notifySync forwards an entity-changed event when sync is both wired and
// enabled in settings. Best effort only.
func (s *Store) notifySync(entity, name string) {
	if s.sync == nil {
		return
	}
	settings, err := s.GetSettings()
	if err != nil || !settings.EnableSync {
		return
	}
	s.sync.EntityChanged(entity, name)
}
