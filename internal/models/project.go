package models

import "time"

// MaxProjectImages bounds the image gallery of a project.
const MaxProjectImages = 10

type Project struct {
	ID       string   `gorm:"primaryKey;size:36" json:"id"`
	Name     string   `gorm:"size:255;not null" json:"name"`
	Address  string   `gorm:"size:255" json:"address"`
	Investor string   `gorm:"size:255" json:"investor"`
	Manager  string   `gorm:"size:255" json:"manager"`
	Phone    string   `gorm:"size:50" json:"phone"`
	Images   []string `gorm:"serializer:json;type:text" json:"images"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
