package database

import (
	"log"
	"time"

	"ats-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to Postgres when dsn is set; with an empty dsn it opens an
// embedded in-memory SQLite database, which is the mock mode the API was
// designed around (and what tests use for isolation).
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Println("DB_DSN not set, using in-memory database")
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	var (
		db  *gorm.DB
		err error
	)

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			return db, nil
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

// Migrate creates or updates the schema for all entity tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.JobPosting{},
		&models.Candidate{},
		&models.StatusLog{},
		&models.ActivityLog{},
		&models.SettingItem{},
		&models.AppSettings{},
		&models.Counter{},
	)
}

// CandidateCodeCounter names the sequence behind server-generated candidate
// codes.
const CandidateCodeCounter = "candidate_code"

// Seed inserts the rows every fresh installation needs: the settings row,
// the candidate-code counter and a starter set of lookup items. Existing
// rows are left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&models.AppSettings{ID: 1}).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Counter{}).
		Where("name = ?", CandidateCodeCounter).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&models.Counter{Name: CandidateCodeCounter, Value: 1000}).Error; err != nil {
			return err
		}
	}

	return seedLookups(db)
}

func seedLookups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SettingItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := map[models.LookupKind][]string{
		models.LookupSource:         {"TopCV", "VietnamWorks", "LinkedIn", "Facebook", "Referral"},
		models.LookupClassification: {"Priority", "Potential", "Reserve"},
		models.LookupPosition:       {"Site Engineer", "Project Manager", "Accountant", "HR Officer"},
	}

	for kind, names := range defaults {
		for _, name := range names {
			item := models.SettingItem{ID: uuid.NewString(), Kind: kind, Name: name}
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		}
	}

	log.Println("seeded default lookup items")
	return nil
}
