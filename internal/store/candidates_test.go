package store_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ats-backend/internal/models"
	"ats-backend/internal/store"
)

func TestCreateCandidate_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := store.CandidateCreate{
		Name:               "Tran Thi Binh",
		Phone:              "0912345678",
		Email:              "binh.tt@example.com",
		DateOfBirth:        "1995-10-20",
		Major:              "Civil Engineering",
		ProbationarySalary: 12000000,
		OfficialSalary:     15000000,
		FollowUpDate:       "2026-09-15",
		Note:               "strong portfolio",
	}
	created, err := s.CreateCandidate("hr@test", in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "XD.1001", created.CandidateCode)
	require.Equal(t, models.StatusApplied, created.Status)

	got, err := s.GetCandidate(created.ID)
	require.NoError(t, err)
	require.Equal(t, in.Name, got.Name)
	require.Equal(t, in.Phone, got.Phone)
	require.Equal(t, in.Email, got.Email)
	require.Equal(t, in.Major, got.Major)
	require.Equal(t, in.ProbationarySalary, got.ProbationarySalary)
	require.Equal(t, in.OfficialSalary, got.OfficialSalary)
	require.Equal(t, in.Note, got.Note)
	require.NotNil(t, got.DateOfBirth)
	require.Equal(t, "1995-10-20", got.DateOfBirth.Format("2006-01-02"))

	// the history is seeded at creation: never empty, head matches status
	require.Len(t, got.StatusLogs, 1)
	require.Equal(t, got.Status, got.StatusLogs[0].Status)
	require.Equal(t, "hr@test", got.StatusLogs[0].UpdatedBy)
}

func TestCreateCandidate_CodesMonotonic(t *testing.T) {
	s, _ := newTestStore(t)

	first, err := s.CreateCandidate("hr@test", validCandidate("First"))
	require.NoError(t, err)
	second, err := s.CreateCandidate("hr@test", validCandidate("Second"))
	require.NoError(t, err)

	require.Equal(t, "XD.1001", first.CandidateCode)
	require.Equal(t, "XD.1002", second.CandidateCode)
	require.NotEqual(t, first.CandidateCode, second.CandidateCode)
}

func TestCreateCandidate_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	cases := []struct {
		name string
		in   store.CandidateCreate
	}{
		{"missing name", store.CandidateCreate{Phone: "0912345678", Email: "a@b.com"}},
		{"bad phone", store.CandidateCreate{Name: "X", Phone: "abc", Email: "a@b.com"}},
		{"bad email", store.CandidateCreate{Name: "X", Phone: "0912345678", Email: "not-an-email"}},
		{"negative salary", func() store.CandidateCreate {
			c := validCandidate("X")
			c.OfficialSalary = -1
			return c
		}()},
		{"bad date", func() store.CandidateCreate {
			c := validCandidate("X")
			c.FollowUpDate = "15/09/2026"
			return c
		}()},
	}
	for _, tc := range cases {
		_, err := s.CreateCandidate("hr@test", tc.in)
		var ve *store.ValidationError
		require.ErrorAs(t, err, &ve, tc.name)
	}

	// a rejected create leaves no state behind: no candidates, no audit rows
	list, err := s.ListCandidates(store.CandidateFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 0, list.Total)
	logs, err := s.ListActivityLogs(store.ActivityFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 0, logs.Total)
}

func TestUpdateCandidate_PartialAndClearFollowUp(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.CreateCandidate("hr@test", store.CandidateCreate{
		Name:         "Le Van Cuong",
		Phone:        "0987654321",
		Email:        "cuong@example.com",
		Major:        "Architecture",
		FollowUpDate: "2026-09-10",
	})
	require.NoError(t, err)

	newName := "Le Van Cuong (updated)"
	updated, err := s.UpdateCandidate("hr@test", created.ID, store.CandidateUpdate{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, updated.Name)
	// unspecified fields are unchanged
	require.Equal(t, created.Phone, updated.Phone)
	require.Equal(t, created.Major, updated.Major)
	require.NotNil(t, updated.FollowUpDate)
	require.Equal(t, created.CandidateCode, updated.CandidateCode)

	// empty string clears the follow-up date
	empty := ""
	updated, err = s.UpdateCandidate("hr@test", created.ID, store.CandidateUpdate{FollowUpDate: &empty})
	require.NoError(t, err)
	require.Nil(t, updated.FollowUpDate)

	_, err = s.UpdateCandidate("hr@test", "no-such-id", store.CandidateUpdate{Name: &newName})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateCandidateStatus(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.CreateCandidate("hr@test", validCandidate("Pipeline"))
	require.NoError(t, err)

	// forward move
	cand, err := s.UpdateCandidateStatus("hr@test", created.ID, models.StatusScreened)
	require.NoError(t, err)
	require.Equal(t, models.StatusScreened, cand.Status)
	require.Len(t, cand.StatusLogs, 2)
	require.Equal(t, models.StatusScreened, cand.StatusLogs[0].Status)

	// backward move is rejected and changes nothing
	_, err = s.UpdateCandidateStatus("hr@test", created.ID, models.StatusApplied)
	require.ErrorIs(t, err, store.ErrInvalidTransition)
	cand, err = s.GetCandidate(created.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusScreened, cand.Status)
	require.Len(t, cand.StatusLogs, 2)

	// skipping forward is allowed
	cand, err = s.UpdateCandidateStatus("hr@test", created.ID, models.StatusHired)
	require.NoError(t, err)
	require.Equal(t, models.StatusHired, cand.Status)
	require.Equal(t, cand.Status, cand.StatusLogs[0].Status)

	// rejected is reachable from anywhere
	cand, err = s.UpdateCandidateStatus("hr@test", created.ID, models.StatusRejected)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, cand.Status)

	_, err = s.UpdateCandidateStatus("hr@test", "no-such-id", models.StatusScreened)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateCandidateStatus_AuditEntry(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.CreateCandidate("hr@test", validCandidate("Audited"))
	require.NoError(t, err)

	_, err = s.UpdateCandidateStatus("hr@test", created.ID, models.StatusScreened)
	require.NoError(t, err)

	entry := newestLog(t, s)
	require.Equal(t, models.ActionStatusChange, entry.Action)
	require.Equal(t, models.EntityCandidate, entry.Entity)
	require.Equal(t, created.ID, entry.EntityID)

	var before, after map[string]string
	require.NoError(t, json.Unmarshal(entry.Details.Before, &before))
	require.NoError(t, json.Unmarshal(entry.Details.After, &after))
	require.Equal(t, "applied", before["status"])
	require.Equal(t, "screened", after["status"])
}

func TestListCandidates_FilterConjunction(t *testing.T) {
	s, _ := newTestStore(t)

	hired, err := s.CreateCandidate("hr@test", validCandidate("An Hired"))
	require.NoError(t, err)
	_, err = s.UpdateCandidateStatus("hr@test", hired.ID, models.StatusHired)
	require.NoError(t, err)

	_, err = s.CreateCandidate("hr@test", validCandidate("An Applied"))
	require.NoError(t, err)
	_, err = s.CreateCandidate("hr@test", validCandidate("Someone Else"))
	require.NoError(t, err)

	// search alone matches both "An ..." candidates
	bySearch, err := s.ListCandidates(store.CandidateFilter{Search: "an "})
	require.NoError(t, err)
	require.EqualValues(t, 2, bySearch.Total)

	// conjunction with the status filter narrows to one
	both, err := s.ListCandidates(store.CandidateFilter{Search: "an ", Status: "hired"})
	require.NoError(t, err)
	require.EqualValues(t, 1, both.Total)
	require.Equal(t, "An Hired", both.Data[0].Name)
}

func TestListCandidates_SearchIsCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.CreateCandidate("hr@test", validCandidate("NGUYEN Van Anh"))
	require.NoError(t, err)

	result, err := s.ListCandidates(store.CandidateFilter{Search: "nguyen"})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
}

func TestDenormalizedNamesFollowRenames(t *testing.T) {
	s, _ := newTestStore(t)

	src, err := s.CreateLookup("hr@test", models.LookupSource, "JobBoard")
	require.NoError(t, err)

	in := validCandidate("Sourced")
	in.SourceID = &src.ID
	created, err := s.CreateCandidate("hr@test", in)
	require.NoError(t, err)
	require.Equal(t, "JobBoard", created.SourceName)

	// renames propagate to all future reads without migration
	_, err = s.UpdateLookup("hr@test", models.LookupSource, src.ID, "MegaJobBoard")
	require.NoError(t, err)

	got, err := s.GetCandidate(created.ID)
	require.NoError(t, err)
	require.Equal(t, "MegaJobBoard", got.SourceName)
}

func TestAuditSnapshotIsImmutable(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.CreateCandidate("hr@test", validCandidate("Y"))
	require.NoError(t, err)

	x := "X"
	_, err = s.UpdateCandidate("hr@test", created.ID, store.CandidateUpdate{Name: &x})
	require.NoError(t, err)

	entry := newestLog(t, s)
	require.Equal(t, models.ActionUpdate, entry.Action)
	var before, after models.Candidate
	require.NoError(t, json.Unmarshal(entry.Details.Before, &before))
	require.NoError(t, json.Unmarshal(entry.Details.After, &after))
	require.Equal(t, "Y", before.Name)
	require.Equal(t, "X", after.Name)

	// mutating the entity afterwards must not change the stored snapshot
	z := "Z"
	_, err = s.UpdateCandidate("hr@test", created.ID, store.CandidateUpdate{Name: &z})
	require.NoError(t, err)

	logs, err := s.ListActivityLogs(store.ActivityFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	var sameEntry *models.ActivityLog
	for i := range logs.Data {
		if logs.Data[i].ID == entry.ID {
			sameEntry = &logs.Data[i]
		}
	}
	require.NotNil(t, sameEntry)
	require.NoError(t, json.Unmarshal(sameEntry.Details.After, &after))
	require.Equal(t, "X", after.Name)
}

func TestTodaysFollowUps(t *testing.T) {
	s, _ := newTestStore(t)

	today := validCandidate("Due Today")
	today.FollowUpDate = timeNowDate()
	_, err := s.CreateCandidate("hr@test", today)
	require.NoError(t, err)

	later := validCandidate("Due Later")
	later.FollowUpDate = "2099-01-01"
	_, err = s.CreateCandidate("hr@test", later)
	require.NoError(t, err)

	due, err := s.TodaysFollowUps()
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "Due Today", due[0].Name)
}

func TestExportCandidates_IgnoresPaging(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 15; i++ {
		_, err := s.CreateCandidate("hr@test", validCandidate("Export"))
		require.NoError(t, err)
	}
	all, err := s.ExportCandidates(store.CandidateFilter{Search: "export"})
	require.NoError(t, err)
	require.Len(t, all, 15)
}

func TestGetCandidate_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetCandidate("missing")
	require.True(t, errors.Is(err, store.ErrNotFound))
}
