package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-tracker/internal/adapters/storage"
	"pet-tracker/internal/config"
	"pet-tracker/internal/notify"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/router"
)

// @title Pet Tracker API
// @version 1.0
// @description Registro de mascotas del refugio: alta, consulta, edición y baja, con stream de cambios.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("invalid config", logger.Fields{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("open store", logger.Fields{"driver": cfg.DBDriver, "error": err})
		os.Exit(1)
	}
	defer closer.Close()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Store:     store,
			Authority: cfg.Authority,
			Hub:       notify.NewHub(),
			Logger:    log,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", logger.Fields{"error": err})
		}
	}()

	log.Info("starting server", logger.Fields{"addr": srv.Addr, "driver": cfg.DBDriver})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", logger.Fields{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
