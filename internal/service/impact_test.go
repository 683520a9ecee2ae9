package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/careconnect/internal/model"
)

func date(s string) time.Time {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func newImpactFixture() (*ImpactService, *fakeTaskRepo, *fakeDonationRepo, *fakeCauseRepo, *fakeUserRepo) {
	causes := &fakeCauseRepo{}
	tasks := &fakeTaskRepo{causes: causes}
	donations := &fakeDonationRepo{causes: causes}
	users := &fakeUserRepo{}
	return NewImpactService(tasks, donations, causes, users), tasks, donations, causes, users
}

func TestVolunteerImpact(t *testing.T) {
	service, tasks, donations, causes, _ := newImpactFixture()

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "Cleanup", Category: "environment"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-2", NGOID: "ngo-1", Title: "Pantry", Category: "food"}))

	// Verified three-day engagement: 12 hours, verified in March.
	require.NoError(t, tasks.Create(&model.Task{
		ID: "t-1", CauseID: "c-1", VolunteerID: "vol-1",
		Status: model.TaskStatusCompleted, Approved: true,
		StartDate: datePtr("2026-03-01"), EndDate: datePtr("2026-03-04"),
		CreatedAt: date("2026-02-20"), UpdatedAt: date("2026-03-05"),
	}))

	// Completed but unverified: contributes nothing.
	require.NoError(t, tasks.Create(&model.Task{
		ID: "t-2", CauseID: "c-2", VolunteerID: "vol-1",
		Status:    model.TaskStatusCompleted,
		CreatedAt: date("2026-03-10"),
	}))

	// A donation to the cause already worked on must not double-count it.
	require.NoError(t, donations.Create(&model.Donation{
		ID: "d-1", CauseID: "c-1", VolunteerID: "vol-1",
		Amount: 2500, CreatedAt: date("2026-04-02"),
	}))
	require.NoError(t, donations.Create(&model.Donation{
		ID: "d-2", CauseID: "c-1", VolunteerID: "vol-1",
		Amount: 1000, CreatedAt: date("2026-04-15"),
	}))

	impact, err := service.VolunteerImpact("vol-1")
	require.NoError(t, err)

	assert.Equal(t, 12, impact.TotalHours)
	assert.Equal(t, int64(3500), impact.TotalDonated)
	assert.Equal(t, 1, impact.CausesSupported)
	assert.Equal(t, []CategoryCount{{Category: "environment", Count: 1}}, impact.Categories)

	require.Len(t, impact.Timeline, 2)
	assert.Equal(t, TimelineEntry{Month: "2026-03", Hours: 12}, impact.Timeline[0])
	assert.Equal(t, TimelineEntry{Month: "2026-04", Donated: 3500}, impact.Timeline[1])
}

func TestVolunteerImpactCountsCategories(t *testing.T) {
	service, tasks, _, causes, _ := newImpactFixture()

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "Cleanup", Category: "environment"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-2", NGOID: "ngo-1", Title: "Planting", Category: "environment"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-3", NGOID: "ngo-1", Title: "Pantry", Category: "food"}))

	for i, causeID := range []string{"c-1", "c-2", "c-3"} {
		require.NoError(t, tasks.Create(&model.Task{
			ID: "t-" + causeID, CauseID: causeID, VolunteerID: "vol-1",
			Status: model.TaskStatusCompleted, Approved: true,
			UpdatedAt: date("2026-06-01").AddDate(0, 0, i),
		}))
	}

	impact, err := service.VolunteerImpact("vol-1")
	require.NoError(t, err)

	assert.Equal(t, []CategoryCount{
		{Category: "environment", Count: 2},
		{Category: "food", Count: 1},
	}, impact.Categories)
}

func TestVolunteerImpactTimelineFallbacks(t *testing.T) {
	service, tasks, _, causes, _ := newImpactFixture()

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "Cleanup", Category: "environment"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-2", NGOID: "ngo-1", Title: "Pantry", Category: "food"}))

	// No updated_at on record: the window's end decides the month.
	require.NoError(t, tasks.Create(&model.Task{
		ID: "t-1", CauseID: "c-1", VolunteerID: "vol-1",
		Status: model.TaskStatusCompleted, Approved: true,
		EndDate: datePtr("2026-01-15"),
	}))

	// No dates at all: the entry still shows up, in the current month.
	require.NoError(t, tasks.Create(&model.Task{
		ID: "t-2", CauseID: "c-2", VolunteerID: "vol-1",
		Status: model.TaskStatusCompleted, Approved: true,
	}))

	impact, err := service.VolunteerImpact("vol-1")
	require.NoError(t, err)
	assert.Equal(t, 8, impact.TotalHours)

	months := make([]string, 0, len(impact.Timeline))
	for _, entry := range impact.Timeline {
		months = append(months, entry.Month)
	}
	assert.Contains(t, months, "2026-01")
	assert.Contains(t, months, time.Now().Format("2006-01"))
}

func TestVolunteerImpactEmpty(t *testing.T) {
	service, _, _, _, _ := newImpactFixture()

	impact, err := service.VolunteerImpact("vol-1")
	require.NoError(t, err)

	assert.Zero(t, impact.TotalHours)
	assert.Zero(t, impact.TotalDonated)
	assert.Zero(t, impact.CausesSupported)
	assert.Empty(t, impact.Categories)
	assert.Empty(t, impact.Timeline)
}

func TestDonationAnalytics(t *testing.T) {
	service, _, donations, causes, _ := newImpactFixture()

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1", Title: "Cleanup"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-2", NGOID: "ngo-1", Title: "Pantry"}))
	require.NoError(t, causes.Create(&model.Cause{ID: "c-3", NGOID: "ngo-2", Title: "Other NGO"}))

	require.NoError(t, donations.Create(&model.Donation{ID: "d-1", CauseID: "c-1", VolunteerID: "v1", Amount: 500, CreatedAt: date("2026-05-01")}))
	require.NoError(t, donations.Create(&model.Donation{ID: "d-2", CauseID: "c-2", VolunteerID: "v1", Amount: 3000, CreatedAt: date("2026-05-01")}))
	require.NoError(t, donations.Create(&model.Donation{ID: "d-3", CauseID: "c-2", VolunteerID: "v2", Amount: 1500, CreatedAt: date("2026-05-03")}))
	// Donations to another NGO's cause stay out of the analytics.
	require.NoError(t, donations.Create(&model.Donation{ID: "d-4", CauseID: "c-3", VolunteerID: "v1", Amount: 9999, CreatedAt: date("2026-05-01")}))

	analytics, err := service.DonationAnalytics("ngo-1")
	require.NoError(t, err)

	assert.Equal(t, int64(5000), analytics.TotalDonations)

	require.Len(t, analytics.ByCause, 2)
	assert.Equal(t, CauseDonationTotal{CauseID: "c-2", CauseTitle: "Pantry", Total: 4500}, analytics.ByCause[0])
	assert.Equal(t, CauseDonationTotal{CauseID: "c-1", CauseTitle: "Cleanup", Total: 500}, analytics.ByCause[1])

	require.Len(t, analytics.Trends, 2)
	assert.Equal(t, DailyDonationTotal{Date: "2026-05-01", Total: 3500}, analytics.Trends[0])
	assert.Equal(t, DailyDonationTotal{Date: "2026-05-03", Total: 1500}, analytics.Trends[1])
}

func TestPlatformStats(t *testing.T) {
	service, tasks, donations, causes, users := newImpactFixture()

	require.NoError(t, users.Create(&model.User{ID: "ngo-1", Role: model.RoleNGO}))
	require.NoError(t, users.Create(&model.User{ID: "vol-1", Role: model.RoleVolunteer}))
	require.NoError(t, users.Create(&model.User{ID: "vol-2", Role: model.RoleVolunteer}))

	require.NoError(t, causes.Create(&model.Cause{ID: "c-1", NGOID: "ngo-1"}))

	require.NoError(t, tasks.Create(&model.Task{ID: "t-1", CauseID: "c-1", VolunteerID: "vol-1", Status: model.TaskStatusCompleted, Approved: true}))
	require.NoError(t, tasks.Create(&model.Task{ID: "t-2", CauseID: "c-1", VolunteerID: "vol-2", Status: model.TaskStatusInProgress}))

	require.NoError(t, donations.Create(&model.Donation{ID: "d-1", CauseID: "c-1", VolunteerID: "vol-1", Amount: 1200}))

	stats, err := service.PlatformStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalVolunteers)
	assert.Equal(t, 1, stats.TotalNGOs)
	assert.Equal(t, 1, stats.TotalCauses)
	assert.Equal(t, int64(1200), stats.TotalDonated)
	// Hours here are the flat per-engagement figure, not the window math.
	assert.Equal(t, model.HoursPerDay, stats.TotalHours)
}
