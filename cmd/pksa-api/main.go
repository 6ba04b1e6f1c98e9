package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	authuc "github.com/pksaconstruction/pksa-api/internal/application/auth"
	"github.com/pksaconstruction/pksa-api/internal/application/contact"
	"github.com/pksaconstruction/pksa-api/internal/application/ports"
	"github.com/pksaconstruction/pksa-api/internal/application/project"
	"github.com/pksaconstruction/pksa-api/internal/config"
	infraauth "github.com/pksaconstruction/pksa-api/internal/infrastructure/auth"
	httprouter "github.com/pksaconstruction/pksa-api/internal/infrastructure/http"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/handlers"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/http/middleware"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/mailer"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/persistence/postgres"
	"github.com/pksaconstruction/pksa-api/internal/infrastructure/storage"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	messageRepo := postgres.NewContactMessageRepository(pool)
	projectRepo := postgres.NewProjectSubmissionRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	if !cfg.StorageConfigured() {
		log.Fatal().Msg("object storage is not configured; set STORAGE_ENDPOINT, STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY")
	}
	fileStore, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("create storage client")
	}

	var notifier ports.Notifier
	if cfg.MailConfigured() {
		smtp, err := mailer.NewSMTPNotifier(cfg.SMTP, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create smtp notifier")
		}
		notifier = smtp
	} else {
		notifier = mailer.NewNoopNotifier(log)
	}

	sessions := infraauth.NewSessions(!cfg.Secure.IsDevelopment)
	loginUC := authuc.NewLogin(cfg.Admin.Email, cfg.Admin.Password)
	submitUC := contact.NewSubmit(messageRepo, notifier, log)
	uploadUC := project.NewUpload(projectRepo, fileStore, log)
	deleteUC := project.NewDelete(projectRepo, fileStore, log)

	contactHandler := handlers.NewContactHandler(submitUC, cfg.Secure.IsDevelopment, log)
	adminHandler := handlers.NewAdminHandler(loginUC, sessions, messageRepo, log)
	projectHandler := handlers.NewProjectHandler(projectRepo, uploadUC, deleteUC, log)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, log)
	healthHandler := handlers.NewHealthHandler(pool)

	contactLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.ContactRatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create contact rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		ContactHandler:   contactHandler,
		AdminHandler:     adminHandler,
		ProjectHandler:   projectHandler,
		SettingsHandler:  settingsHandler,
		HealthHandler:    healthHandler,
		RequireAdmin:     middleware.RequireAdminSession(sessions),
		ContactRateLimit: contactLimit,
		Secure:           secureMiddleware,
		CORS:             corsMiddleware,
		Log:              log,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
