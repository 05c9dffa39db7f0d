// swiss-tournament-engine/cmd/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dosada05/swiss-tournament-engine/config"
	"github.com/dosada05/swiss-tournament-engine/db"
	"github.com/dosada05/swiss-tournament-engine/handlers"
	api "github.com/dosada05/swiss-tournament-engine/routes"
	"github.com/dosada05/swiss-tournament-engine/storage"
	"github.com/dosada05/swiss-tournament-engine/tournament"
	"github.com/dosada05/swiss-tournament-engine/utils"
	"github.com/dosada05/swiss-tournament-engine/ws"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))
	utils.SetJWTSecret(cfg.JWTSecretKey)

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var backupUploader *storage.BackupUploader
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Warn("snapshot backup uploader disabled: R2 configuration incomplete", slog.Any("error", err))
	} else {
		backupUploader = storage.NewBackupUploader(cloudflareUploader)
	}

	tournamentRepo := storage.NewPostgresTournamentStore(dbConn)
	organizerRepo := storage.NewPostgresOrganizerStore(dbConn)

	engineConfig := tournament.Config{
		WinScore:         cfg.WinScore,
		DrawScore:        cfg.DrawScore,
		LossScore:        cfg.LossScore,
		ByeScore:         cfg.ByeScore,
		InactiveByeScore: cfg.InactiveByeScore,
	}

	hub := ws.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(organizerRepo)
	tournamentHandler := handlers.NewTournamentHandler(tournamentRepo, backupUploader, hub, engineConfig, logger)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := chi.NewRouter()
	api.SetupRoutes(router, authHandler, tournamentHandler, webSocketHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("server exited")
}
