package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lotepos/internal/config"
	"lotepos/internal/infra"
	"lotepos/internal/repository"
	"lotepos/internal/router"
	"lotepos/internal/service"
	"lotepos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// La tabla de IVA se precarga al arranque; el agregador de líneas resuelve
	// porcentajes de memoria, sin tocar la base por venta.
	ivaSvc := service.NewIVAService(repository.NewTipoIVARepository(db))
	if err := ivaSvc.Cargar(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to preload IVA rates")
	}

	loteRepo := repository.NewLoteRepository(db)
	worker.StartAlertPoller(ctx, worker.AlertPollerConfig{
		LoteRepo:   loteRepo,
		RDB:        rdb,
		UmbralDias: cfg.UmbralAlertaDias,
		Interval:   time.Duration(cfg.AlertaPollSegundos) * time.Second,
	})

	r := router.New(cfg, db, rdb, ivaSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Apagado ordenado con SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("lotepos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
