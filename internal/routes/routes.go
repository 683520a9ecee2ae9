package routes

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/app"
	"github.com/careconnect/careconnect/internal/handler"
	"github.com/careconnect/careconnect/internal/middleware"
	"github.com/careconnect/careconnect/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.Cfg)
	cause := handler.NewCauseHandler(app.CauseService)
	task := handler.NewTaskHandler(app.TaskService, app.CertificateService)
	donation := handler.NewDonationHandler(app.DonationService, app.CauseService, app.PaymentProvider)
	post := handler.NewPostHandler(app.FeedService)
	user := handler.NewUserHandler(app.UserService, app.FeedService)
	impact := handler.NewImpactHandler(app.ImpactService)
	upload := handler.NewUploadHandler(app.FileService)
	legal := handler.NewLegalHandler(app.LegalService)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Auth (register/login rate limited per IP)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))

	// OAuth
	mux.HandleFunc("GET /api/auth/google", rateLimiter(auth.GoogleAuth))
	mux.HandleFunc("GET /api/auth/google/callback", rateLimiter(auth.GoogleCallback))

	// Causes (browsing is public, management is NGO-only)
	mux.HandleFunc("GET /api/causes", cause.List)
	mux.HandleFunc("POST /api/causes", middleware.RequireRole(model.RoleNGO, cause.Create))
	mux.HandleFunc("GET /api/causes/{id}", cause.Show)
	mux.HandleFunc("PATCH /api/causes/{id}", middleware.RequireRole(model.RoleNGO, cause.Update))
	mux.HandleFunc("DELETE /api/causes/{id}", middleware.RequireRole(model.RoleNGO, cause.Delete))
	mux.HandleFunc("POST /api/causes/{id}/apply", middleware.RequireRole(model.RoleVolunteer, task.Apply))

	// NGO directory
	mux.HandleFunc("GET /api/ngos", user.NGODirectory)
	mux.HandleFunc("GET /api/ngos/{id}/causes", cause.ListByNGO)

	// Tasks. Status updates come from both sides of the funnel (NGOs
	// triage, volunteers start and finish work), so the destination-based
	// actor check lives in the service, not here.
	mux.HandleFunc("GET /api/tasks", middleware.RequireAuth(task.List))
	mux.HandleFunc("PATCH /api/tasks/{id}/status", middleware.RequireAuth(task.UpdateStatus))
	mux.HandleFunc("POST /api/tasks/{id}/proof", middleware.RequireRole(model.RoleVolunteer, task.SubmitProof))
	mux.HandleFunc("POST /api/tasks/{id}/approve", middleware.RequireRole(model.RoleNGO, task.Approve))
	mux.HandleFunc("DELETE /api/tasks/{id}", middleware.RequireRole(model.RoleVolunteer, task.OptOut))
	mux.HandleFunc("GET /api/tasks/{id}/certificate", middleware.RequireRole(model.RoleVolunteer, task.Certificate))

	// Donations
	mux.HandleFunc("GET /api/donations", middleware.RequireAuth(donation.List))
	mux.HandleFunc("POST /api/donations", middleware.RequireRole(model.RoleVolunteer, donation.Create))
	mux.HandleFunc("POST /api/donations/checkout", middleware.RequireAuth(donation.Checkout))

	// Social feed (reading is public)
	mux.HandleFunc("GET /api/posts", post.Feed)
	mux.HandleFunc("POST /api/posts", middleware.RequireAuth(post.Create))
	mux.HandleFunc("POST /api/posts/{id}/like", middleware.RequireAuth(post.ToggleLike))
	mux.HandleFunc("GET /api/posts/{id}/comments", post.Comments)
	mux.HandleFunc("POST /api/posts/{id}/comments", middleware.RequireAuth(post.AddComment))

	// Users & profiles
	mux.HandleFunc("GET /api/users/{id}", user.Show)
	mux.HandleFunc("GET /api/users/{id}/posts", post.ListByAuthor)
	mux.HandleFunc("POST /api/users/{id}/follow", middleware.RequireAuth(user.ToggleFollow))
	mux.HandleFunc("PATCH /api/user", middleware.RequireAuth(user.Update))

	// Impact
	mux.HandleFunc("GET /api/impact/me", middleware.RequireRole(model.RoleVolunteer, impact.Me))
	mux.HandleFunc("GET /api/impact/stats", impact.Stats)
	mux.HandleFunc("GET /api/impact/donations", middleware.RequireRole(model.RoleNGO, impact.Donations))

	// Uploads
	mux.HandleFunc("POST /api/upload", middleware.RequireAuth(upload.Upload))

	// Static content
	mux.HandleFunc("GET /api/legal/{page}", legal.ShowPage)

	// Webhooks (signature-verified, no session)
	mux.HandleFunc("POST /api/webhooks/stripe", donation.Webhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.SecurityHeaders,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.RequestLogging,
	)

	return handler
}
