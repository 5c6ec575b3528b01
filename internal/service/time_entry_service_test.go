package service

import (
	"testing"
	"time"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDerivesDurationFromRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTimeEntryService(repository.NewTimeEntryRepo(db))
	user := createTestUser(t, db, "worker@example.com", model.RoleUser)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	entry, err := svc.Log(&LogTimeRequest{
		StartTime: &start,
		EndTime:   &end,
		Note:      "sprint planning",
	}, user)
	require.NoError(t, err)

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 90, *entry.DurationMinutes)
	assert.Equal(t, user.ID, entry.UserID)
}

func TestLogKeepsExplicitDurationOverride(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTimeEntryService(repository.NewTimeEntryRepo(db))
	user := createTestUser(t, db, "worker@example.com", model.RoleUser)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	override := 45

	entry, err := svc.Log(&LogTimeRequest{
		StartTime:       &start,
		EndTime:         &end,
		DurationMinutes: &override,
	}, user)
	require.NoError(t, err)

	require.NotNil(t, entry.DurationMinutes)
	assert.Equal(t, 45, *entry.DurationMinutes)
}

func TestLogRejectsEndBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTimeEntryService(repository.NewTimeEntryRepo(db))
	user := createTestUser(t, db, "worker@example.com", model.RoleUser)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)

	_, err := svc.Log(&LogTimeRequest{StartTime: &start, EndTime: &end}, user)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestListForUserScopesToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTimeEntryService(repository.NewTimeEntryRepo(db))
	alice := createTestUser(t, db, "alice@example.com", model.RoleUser)
	bob := createTestUser(t, db, "bob@example.com", model.RoleUser)

	_, err := svc.Log(&LogTimeRequest{Note: "alice work"}, alice)
	require.NoError(t, err)
	_, err = svc.Log(&LogTimeRequest{Note: "bob work"}, bob)
	require.NoError(t, err)

	entries, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice work", entries[0].Note)
}
