package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/careconnect/internal/db"
	"github.com/careconnect/careconnect/internal/model"
)

// newTestDB opens a migrated in-memory sqlite database. The shared cache
// keeps every pooled connection on the same store, and the DSN pragma
// turns foreign keys on so the schema's cascades actually fire.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func TestDeleteCauseCascades(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	causes := NewCauseRepository(database)
	tasks := NewTaskRepository(database)
	donations := NewDonationRepository(database)

	now := time.Now()
	require.NoError(t, users.Create(&model.User{ID: "ngo-1", Email: "ngo@example.org", Role: model.RoleNGO, CreatedAt: now}))
	require.NoError(t, users.Create(&model.User{ID: "vol-1", Email: "vol@example.com", Role: model.RoleVolunteer, CreatedAt: now}))

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "River Cleanup", Status: model.CauseStatusOpen, CreatedAt: now}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-2", NGOID: "ngo-1", Title: "Food Pantry", Status: model.CauseStatusOpen, CreatedAt: now}))

	require.NoError(t, tasks.Create(&model.Task{ID: "t-1", CauseID: "c-1", VolunteerID: "vol-1", Status: model.TaskStatusPending, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, tasks.Create(&model.Task{ID: "t-2", CauseID: "c-2", VolunteerID: "vol-1", Status: model.TaskStatusPending, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, donations.Create(&model.Donation{ID: "d-1", CauseID: "c-1", VolunteerID: "vol-1", Amount: 2500, CreatedAt: now}))

	require.NoError(t, causes.Delete("c-1"))

	// No orphaned task may reference the removed cause.
	_, err := tasks.ByID("t-1")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	exists, err := tasks.Exists("c-1", "vol-1")
	require.NoError(t, err)
	assert.False(t, exists)

	// The ledger rows hanging off the cause go with it.
	total, err := donations.TotalAmount()
	require.NoError(t, err)
	assert.Zero(t, total)

	// Tasks on other causes are untouched.
	survivor, err := tasks.ByID("t-2")
	require.NoError(t, err)
	assert.Equal(t, "c-2", survivor.CauseID)
}

func TestDeleteTaskLeavesCause(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	causes := NewCauseRepository(database)
	tasks := NewTaskRepository(database)

	now := time.Now()
	require.NoError(t, users.Create(&model.User{ID: "ngo-1", Email: "ngo@example.org", Role: model.RoleNGO, CreatedAt: now}))
	require.NoError(t, users.Create(&model.User{ID: "vol-1", Email: "vol@example.com", Role: model.RoleVolunteer, CreatedAt: now}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "River Cleanup", Status: model.CauseStatusOpen, CreatedAt: now}))
	require.NoError(t, tasks.Create(&model.Task{ID: "t-1", CauseID: "c-1", VolunteerID: "vol-1", Status: model.TaskStatusPending, CreatedAt: now, UpdatedAt: now}))

	// Opting out deletes only the application, never the cause.
	require.NoError(t, tasks.Delete("t-1"))

	cause, err := causes.ByID("c-1")
	require.NoError(t, err)
	assert.Equal(t, "River Cleanup", cause.Title)
}
