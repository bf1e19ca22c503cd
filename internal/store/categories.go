package store

import (
	"errors"
	"strings"

	"ats-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListLookups returns all items of one lookup collection, sorted by name.
func (s *Store) ListLookups(kind models.LookupKind) ([]models.SettingItem, error) {
	if !models.ValidLookupKind(kind) {
		return nil, invalid("kind", "unknown lookup collection")
	}
	items := []models.SettingItem{}
	err := s.db.Where("kind = ?", kind).Order("name asc").Find(&items).Error
	return items, err
}

func (s *Store) getLookup(kind models.LookupKind, id string) (*models.SettingItem, error) {
	var item models.SettingItem
	if err := s.db.First(&item, "kind = ? AND id = ?", kind, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateLookup(actor string, kind models.LookupKind, name string) (*models.SettingItem, error) {
	if !models.ValidLookupKind(kind) {
		return nil, invalid("kind", "unknown lookup collection")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	item := models.SettingItem{ID: uuid.NewString(), Kind: kind, Name: name}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionCreate, kind.ActivityEntity(), item.ID, item.Name, nil, item)
	return &item, nil
}

func (s *Store) UpdateLookup(actor string, kind models.LookupKind, id, name string) (*models.SettingItem, error) {
	item, err := s.getLookup(kind, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	before := *item
	item.Name = name
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	s.record(actor, models.ActionUpdate, kind.ActivityEntity(), item.ID, item.Name, before, *item)
	return item, nil
}

func (s *Store) DeleteLookup(actor string, kind models.LookupKind, id string) error {
	item, err := s.getLookup(kind, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.SettingItem{}, "kind = ? AND id = ?", kind, id).Error; err != nil {
		return err
	}

	s.record(actor, models.ActionDelete, kind.ActivityEntity(), item.ID, item.Name, *item, nil)
	return nil
}

// lookupNames maps item id -> name across all lookup collections, for
// read-time denormalization.
func (s *Store) lookupNames() (map[string]string, error) {
	var items []models.SettingItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return names, nil
}
