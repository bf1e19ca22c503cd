package models

// LookupKind selects one of the three settings-managed lookup collections.
type LookupKind string

const (
	LookupSource         LookupKind = "source"
	LookupClassification LookupKind = "classification"
	LookupPosition       LookupKind = "position"
)

// ValidLookupKind reports whether k names a known lookup collection.
func ValidLookupKind(k LookupKind) bool {
	switch k {
	case LookupSource, LookupClassification, LookupPosition:
		return true
	}
	return false
}

// ActivityEntity returns the audit entity name for the lookup kind. The kinds
// are chosen to match the audit vocabulary one to one.
func (k LookupKind) ActivityEntity() ActivityEntity {
	return ActivityEntity(k)
}

// SettingItem is a {id, name} lookup entity (candidate source,
// classification or position) referenced by id from candidates.
type SettingItem struct {
	ID   string     `gorm:"primaryKey;size:36" json:"id"`
	Kind LookupKind `gorm:"size:20;index;not null" json:"-"`
	Name string     `gorm:"size:255;not null" json:"name"`
}

// AppSettings is a single-row table of runtime switches consulted before any
// upload or sync side effect.
type AppSettings struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	EndpointUpload string `gorm:"size:512" json:"endpointUpload"`
	EnableSync     bool   `json:"enableSync"`
}

// Counter backs server-generated monotonic codes (candidate codes). Values
// are never reused.
type Counter struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null"`
}
