package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"studentcontrol/internal/admin"
	"studentcontrol/internal/auth"
	"studentcontrol/internal/grading"
	"studentcontrol/internal/logger"
	"studentcontrol/internal/report"
	"studentcontrol/internal/roster"
	"studentcontrol/internal/server"
	"studentcontrol/internal/shared"
)

func main() {
	if err := shared.LoadEnv(""); err != nil {
		log.Warn().Msg("no .env file found, using process environment")
	}

	cfg, err := shared.LoadConfig("studentcontrol")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logFormat := ""
	if cfg.IsDevelopment() {
		logFormat = "console"
	}
	logger.Init(cfg.LogLevel, logFormat)

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := shared.DisconnectMongoDB(client); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	router := server.NewRouter(cfg, server.Services{
		Auth:    auth.NewService(db, cfg),
		Admin:   admin.NewService(db),
		Roster:  roster.NewService(db),
		Grading: grading.NewService(db),
		Report:  report.NewService(db),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
