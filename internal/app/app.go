package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/db"
	"github.com/careconnect/careconnect/internal/geocode"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/service"
	"github.com/careconnect/careconnect/internal/service/payment"
	"github.com/careconnect/careconnect/internal/storage"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	AuthService        *service.AuthService
	UserService        *service.UserService
	CauseService       *service.CauseService
	TaskService        *service.TaskService
	DonationService    *service.DonationService
	FeedService        *service.FeedService
	ImpactService      *service.ImpactService
	FileService        *service.FileService
	CertificateService *service.CertificateService
	EmailService       *service.EmailService
	LegalService       *service.LegalService
	PaymentProvider    payment.Provider
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	causeRepository := repository.NewCauseRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	donationRepository := repository.NewDonationRepository(database)
	postRepository := repository.NewPostRepository(database)
	followRepository := repository.NewFollowRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	geocoder := geocode.NewClient(cfg.GeocodeURL, cfg.GeocodeUserAgent)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository, profileRepository)
	causeService := service.NewCauseService(causeRepository, geocoder)
	taskService := service.NewTaskService(taskRepository, causeRepository, userRepository, profileRepository, emailService)
	donationService := service.NewDonationService(donationRepository, causeRepository, userRepository, profileRepository, emailService)
	feedService := service.NewFeedService(postRepository, followRepository, userRepository)
	impactService := service.NewImpactService(taskRepository, donationRepository, causeRepository, userRepository)
	fileService := service.NewFileService(fileRepository, fileStorage)
	certificateService := service.NewCertificateService(taskRepository, causeRepository, profileRepository, cfg.AppName)
	legalService := service.NewLegalService(cfg.ContentPath)

	// The donation service doubles as the webhook recorder so paid
	// checkouts land in the same ledger as direct donations.
	paymentProvider := payment.NewProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.AppURL, donationService)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        authService,
		UserService:        userService,
		CauseService:       causeService,
		TaskService:        taskService,
		DonationService:    donationService,
		FeedService:        feedService,
		ImpactService:      impactService,
		FileService:        fileService,
		CertificateService: certificateService,
		EmailService:       emailService,
		LegalService:       legalService,
		PaymentProvider:    paymentProvider,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
