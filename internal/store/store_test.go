package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ats-backend/internal/database"
	"ats-backend/internal/models"
	"ats-backend/internal/store"
)

// newTestStore opens a fresh in-memory database per test so tests are fully
// isolated from one another.
func newTestStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	return store.New(db, nil), db
}

func timeNowDate() string {
	return time.Now().Format("2006-01-02")
}

// recordingSyncer captures entity-changed notifications for assertions.
type recordingSyncer struct {
	events []string
}

func (r *recordingSyncer) EntityChanged(entity, name string) {
	r.events = append(r.events, entity+":"+name)
}

func validCandidate(name string) store.CandidateCreate {
	return store.CandidateCreate{
		Name:  name,
		Phone: "0987654321",
		Email: "candidate@example.com",
	}
}

func createProject(t *testing.T, s *store.Store, name string) *models.Project {
	t.Helper()
	p, err := s.CreateProject("hr@test", store.ProjectCreate{Name: name, Investor: "ACME Group"})
	require.NoError(t, err)
	return p
}

func createJob(t *testing.T, s *store.Store, code, projectID string) *models.JobPosting {
	t.Helper()
	j, err := s.CreateJob("hr@test", store.JobCreate{
		JobCode:   code,
		Title:     "Site Engineer",
		ProjectID: projectID,
		JobType:   string(models.JobTypeFullTime),
		Status:    string(models.JobStatusPosting),
	})
	require.NoError(t, err)
	return j
}

// newestLog returns the most recent audit entry.
func newestLog(t *testing.T, s *store.Store) models.ActivityLog {
	t.Helper()
	logs, err := s.ListActivityLogs(store.ActivityFilter{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, logs.Data)
	return logs.Data[0]
}

func TestSettings_PartialUpdate(t *testing.T) {
	s, _ := newTestStore(t)

	settings, err := s.GetSettings()
	require.NoError(t, err)
	require.False(t, settings.EnableSync)

	endpoint := "https://storage.example.com/upload"
	settings, err = s.UpdateSettings(store.SettingsUpdate{EndpointUpload: &endpoint})
	require.NoError(t, err)
	require.Equal(t, endpoint, settings.EndpointUpload)
	require.False(t, settings.EnableSync)

	enable := true
	settings, err = s.UpdateSettings(store.SettingsUpdate{EnableSync: &enable})
	require.NoError(t, err)
	require.Equal(t, endpoint, settings.EndpointUpload)
	require.True(t, settings.EnableSync)
}

func TestSync_OnlyWhenEnabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	rec := &recordingSyncer{}
	s := store.New(db, rec)

	createProject(t, s, "Quiet Tower")
	require.Empty(t, rec.events, "sync disabled by default")

	enable := true
	_, err = s.UpdateSettings(store.SettingsUpdate{EnableSync: &enable})
	require.NoError(t, err)

	createProject(t, s, "Loud Tower")
	require.Equal(t, []string{"project:Loud Tower"}, rec.events)
}

// Audit writes are best effort: breaking the audit table must not fail the
// primary mutation.
func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	s, db := newTestStore(t)
	require.NoError(t, db.Migrator().DropTable(&models.ActivityLog{}))

	p, err := s.CreateProject("hr@test", store.ProjectCreate{Name: "Orphan Audit"})
	require.NoError(t, err)

	got, err := s.GetProject(p.ID)
	require.NoError(t, err)
	require.Equal(t, "Orphan Audit", got.Name)
}

func TestPaginationContract(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 25; i++ {
		_, err := s.CreateCandidate("hr@test", validCandidate(fmt.Sprintf("Candidate %02d", i)))
		require.NoError(t, err)
	}

	page3, err := s.ListCandidates(store.CandidateFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page3.Data, 5)
	require.EqualValues(t, 25, page3.Total)
	require.Equal(t, 3, page3.Page)
	require.Equal(t, 10, page3.Limit)

	// out-of-range pages are empty, never an error
	page4, err := s.ListCandidates(store.CandidateFilter{Page: 4, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, page4.Data)
	require.EqualValues(t, 25, page4.Total)
}
