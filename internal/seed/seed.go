package seed

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/careconnect/careconnect/internal/app"
	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/service"
)

// Run populates the database with a small demo dataset for local
// development. It goes through the services so every record passes the
// same validation as real traffic, and it is a no-op when the demo
// accounts already exist.
func Run(a *app.App) error {
	ngo, err := a.AuthService.Register("hope@example.org", "river-cleanup-demo", "Hope Foundation", model.RoleNGO)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			slog.Info("demo data already seeded, skipping")
			return nil
		}
		return err
	}

	volunteer, err := a.AuthService.Register("jordan@example.com", "pantry-shift-demo", "Jordan Lee", model.RoleVolunteer)
	if err != nil {
		return err
	}

	ngoPrincipal := &authz.Principal{ID: ngo.ID, Role: ngo.Role}
	volunteerPrincipal := &authz.Principal{ID: volunteer.ID, Role: volunteer.Role}

	ctx := context.Background()
	start := time.Now().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)

	cleanup, err := a.CauseService.Create(ctx, ngoPrincipal, service.CauseInput{
		Title:       "River Cleanup Weekend",
		Description: "Help us clear plastic waste from the riverbank before the rainy season.",
		Category:    "environment",
		Location:    "Portland, OR",
		Urgency:     4,
		StartDate:   &start,
		EndDate:     &end,
	})
	if err != nil {
		return err
	}

	pantry, err := a.CauseService.Create(ctx, ngoPrincipal, service.CauseInput{
		Title:       "Community Food Pantry",
		Description: "Weekly sorting and distribution shifts at the downtown pantry.",
		Category:    "food-security",
		Location:    "Portland, OR",
		Urgency:     3,
	})
	if err != nil {
		return err
	}

	if _, err := a.TaskService.Apply(volunteerPrincipal, cleanup.ID, &start, &end); err != nil {
		return err
	}

	if _, err := a.DonationService.Record(volunteerPrincipal, pantry.ID, 2500); err != nil {
		return err
	}

	_, err = a.FeedService.CreatePost(ngoPrincipal, "We just posted two new causes for the fall. Come lend a hand!", nil)
	if err != nil {
		return err
	}

	slog.Info("demo data seeded",
		"ngo", ngo.Email,
		"volunteer", volunteer.Email,
	)
	return nil
}
