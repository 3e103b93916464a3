package main

import (
	"log/slog"
	"os"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
	authUsecase "vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	// Load configuration
	cfg := config.Load()
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		slog.Error("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
		os.Exit(1)
	}

	// Initialize the user directory. Without DATABASE_URL the server runs
	// on the in-memory store (useful for local development only).
	var userRepo authRepo.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			slog.Error("failed to connect to database", "err", err)
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(db); err != nil {
				slog.Error("failed to close database", "err", err)
			}
		}()

		// Auto-migrate database schemas
		if err := db.AutoMigrate(&authdomain.User{}); err != nil {
			slog.Error("failed to migrate database", "err", err)
			os.Exit(1)
		}

		userRepo = authRepo.NewUserRepository(db)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory user store")
		userRepo = authRepo.NewMemoryUserRepository()
	}

	// Dependency injection: repository -> signer -> usecase -> handler
	signer := token.NewSigner(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, signer)

	handler := api.NewHandler(authUsecaseInstance, cfg)

	slog.Info("server starting", "port", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
