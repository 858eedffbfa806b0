// @title           Noteboard API
// @version         1.0
// @description     Multi-tenant todos, posts and comments with ownership-gated updates.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"Noteboard/internal/app"
	"Noteboard/internal/config"
	"Noteboard/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "Noteboard/docs"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}
	log.WithFields(logrus.Fields{
		"env":     cfg.App.Env,
		"version": cfg.App.Version,
		"storage": cfg.Storage.Driver,
	}).Info("config loaded, connecting backends")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("app init")
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		log.WithError(err).Error("HTTP server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown")
	}
	if err := application.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("close backends")
	}
}
