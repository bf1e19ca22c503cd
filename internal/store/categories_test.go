package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ats-backend/internal/models"
	"ats-backend/internal/store"
)

func TestLookup_CRUD(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.CreateLookup("hr@test", models.LookupSource, "Referral Program")
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	entry := newestLog(t, s)
	require.Equal(t, models.ActionCreate, entry.Action)
	require.Equal(t, models.EntitySource, entry.Entity)
	require.Equal(t, "Referral Program", entry.EntityName)

	updated, err := s.UpdateLookup("hr@test", models.LookupSource, item.ID, "Employee Referral")
	require.NoError(t, err)
	require.Equal(t, "Employee Referral", updated.Name)

	entry = newestLog(t, s)
	require.Equal(t, models.ActionUpdate, entry.Action)
	require.Contains(t, string(entry.Details.Before), "Referral Program")
	require.Contains(t, string(entry.Details.After), "Employee Referral")

	require.NoError(t, s.DeleteLookup("hr@test", models.LookupSource, item.ID))
	_, err = s.UpdateLookup("hr@test", models.LookupSource, item.ID, "Gone")
	require.ErrorIs(t, err, store.ErrNotFound)

	entry = newestLog(t, s)
	require.Equal(t, models.ActionDelete, entry.Action)
}

func TestLookup_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	var ve *store.ValidationError
	_, err := s.CreateLookup("hr@test", models.LookupSource, "  ")
	require.ErrorAs(t, err, &ve)

	_, err = s.CreateLookup("hr@test", models.LookupKind("departments"), "Engineering")
	require.ErrorAs(t, err, &ve)

	_, err = s.ListLookups(models.LookupKind("departments"))
	require.ErrorAs(t, err, &ve)
}

func TestLookup_KindsAreIsolated(t *testing.T) {
	s, _ := newTestStore(t)

	item, err := s.CreateLookup("hr@test", models.LookupPosition, "Foreman")
	require.NoError(t, err)

	// the id belongs to positions, not sources
	_, err = s.UpdateLookup("hr@test", models.LookupSource, item.ID, "Renamed")
	require.ErrorIs(t, err, store.ErrNotFound)
	err = s.DeleteLookup("hr@test", models.LookupSource, item.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	positions, err := s.ListLookups(models.LookupPosition)
	require.NoError(t, err)
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.Name)
	}
	require.Contains(t, names, "Foreman")
}

func TestListLookups_SortedByName(t *testing.T) {
	s, _ := newTestStore(t)

	for _, n := range []string{"Zalo", "Agency", "Mploy"} {
		_, err := s.CreateLookup("hr@test", models.LookupClassification, n)
		require.NoError(t, err)
	}

	items, err := s.ListLookups(models.LookupClassification)
	require.NoError(t, err)
	for i := 1; i < len(items); i++ {
		require.LessOrEqual(t, items[i-1].Name, items[i].Name)
	}
}
