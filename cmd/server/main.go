package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchday-hq/matchday-service/internal/config"
	"github.com/matchday-hq/matchday-service/internal/handler"
	"github.com/matchday-hq/matchday-service/internal/live"
	"github.com/matchday-hq/matchday-service/internal/logger"
	"github.com/matchday-hq/matchday-service/internal/repository"
	"github.com/matchday-hq/matchday-service/internal/repository/postgres"
	"github.com/matchday-hq/matchday-service/internal/service"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Postgres connection failed: %v", err)
	}
	defer repo.Close()

	pool := repo.Pool()
	teams := postgres.NewTeamRepository(pool)
	players := postgres.NewPlayerRepository(pool)
	games := postgres.NewGameRepository(pool)
	tx := postgres.NewTxManager(pool)
	pinger := postgres.NewPinger(pool)

	clock := service.SystemClock()
	hub := live.NewHub(appLogger)

	teamSvc := service.NewTeamService(teams, appLogger)
	playerSvc := service.NewPlayerService(players, teams, games, tx, appLogger)
	gameSvc := service.NewGameService(games, teams, players, tx, appLogger)
	liveSvc := service.NewLiveGameService(games, players, clock, hub, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, pinger, clock, teamSvc, playerSvc, gameSvc, liveSvc, live.NewWSHandler(hub, gameSvc, appLogger))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("server stopped cleanly")
}
