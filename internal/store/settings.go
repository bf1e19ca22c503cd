package store

import "ats-backend/internal/models"

// GetSettings returns the single settings row, creating it on first access.
func (s *Store) GetSettings() (*models.AppSettings, error) {
	var settings models.AppSettings
	if err := s.db.FirstOrCreate(&settings, models.AppSettings{ID: 1}).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

type SettingsUpdate struct {
	EndpointUpload *string `json:"endpointUpload"`
	EnableSync     *bool   `json:"enableSync"`
}

// UpdateSettings applies a partial update to the settings row.
func (s *Store) UpdateSettings(in SettingsUpdate) (*models.AppSettings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	if in.EndpointUpload != nil {
		settings.EndpointUpload = *in.EndpointUpload
	}
	if in.EnableSync != nil {
		settings.EnableSync = *in.EnableSync
	}
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
