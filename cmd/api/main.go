package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"
	"conferencecentral/migrations"
)

const serviceTimeout = 5 * time.Second

// @title           Conference Central API
// @version         1.0
// @description     Conference management backend: conferences, sessions, registrations and wishlists.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := runMigrations(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	registrationLedger := postgres.NewRegistrationLedger(db)
	sessionRepo := postgres.NewSessionRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	memCache := cache.NewMemoryCache()
	renderer := email.NewTemplateRenderer()
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	// Services and background dispatcher. The dispatcher is built before
	// the session service because the session service enqueues through it.
	emailService := services.NewEmailService(mailer, renderer)
	dispatcher := tasks.NewDispatcher(emailService, logger, cfg.TaskQueueSize, cfg.TaskWorkers)
	defer dispatcher.Close()

	authService := services.NewAuthService(accountRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	profileService := services.NewProfileService(profileRepo, wishlistRepo, accountRepo)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, profileService, dispatcher, memCache, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationLedger, conferenceRepo, profileRepo, profileService, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, dispatcher, memCache, serviceTimeout)
	wishlistService := services.NewWishlistService(wishlistRepo, sessionRepo)
	dispatcher.BindSessionService(sessionService)

	cronCtx, cronCancel := context.WithCancel(context.Background())
	defer cronCancel()
	tasks.StartAnnouncementCron(cronCtx, conferenceService, cfg.AnnouncementRefresh, logger)

	// Controllers
	authController := controllers.NewAuthController(logger, authService)
	profileController := controllers.NewProfileController(logger, profileService)
	conferenceController := controllers.NewConferenceController(logger, conferenceService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	sessionController := controllers.NewSessionController(logger, sessionService)
	wishlistController := controllers.NewWishlistController(logger, wishlistService)

	mux := delivery.NewRouter(
		authController,
		profileController,
		conferenceController,
		registrationController,
		sessionController,
		wishlistController,
		tokenVerifier,
		logger,
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migration source: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
