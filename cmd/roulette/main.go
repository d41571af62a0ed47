package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yuuhLKT/roulette-api/internal/config"
	gatewayhttp "github.com/yuuhLKT/roulette-api/internal/modules/gateway/adapter/http"
	gatewaylocal "github.com/yuuhLKT/roulette-api/internal/modules/gateway/adapter/local"
	gatewayredis "github.com/yuuhLKT/roulette-api/internal/modules/gateway/adapter/redis"
	"github.com/yuuhLKT/roulette-api/internal/modules/gateway/ws"
	roulettehttp "github.com/yuuhLKT/roulette-api/internal/modules/roulette/adapter/http"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/domain"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/machine"
	dbrepo "github.com/yuuhLKT/roulette-api/internal/modules/roulette/repository/db"
	memrepo "github.com/yuuhLKT/roulette-api/internal/modules/roulette/repository/memory"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/usecase"
	"github.com/yuuhLKT/roulette-api/internal/modules/roulette/wheel"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Log.File != "" {
		logger.InitWithFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	} else {
		logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}

	users, rounds, bets, cleanup := buildRepositories(cfg)
	defer cleanup()

	manager := ws.NewManager()
	var broadcaster domain.Broadcaster = gatewaylocal.NewBroadcaster(manager)

	var redisSink *gatewayredis.Broadcaster
	if cfg.Redis.Enabled {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.FatalGlobal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		redisSink = gatewayredis.NewBroadcaster(client)
		broadcaster = gatewaylocal.NewMulti(broadcaster, redisSink)
		logger.InfoGlobal().Str("addr", cfg.Redis.Addr).Msg("redis snapshot sink enabled")
	}

	scheduler := machine.NewScheduler()
	scheduler.BetWindow = cfg.Game.BetWindow
	scheduler.SpinTime = cfg.Game.SpinTime
	scheduler.TickInterval = cfg.Game.TickInterval

	sm := machine.NewStateMachine(wheel.New(), users, rounds, bets, broadcaster, scheduler)
	userUC := usecase.NewUserUseCase(users, bets)
	roundUC := usecase.NewRoundUseCase(rounds, bets)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware())

	gatewayHandler := gatewayhttp.NewHandler(manager)
	router.GET("/ws", func(c *gin.Context) {
		gatewayHandler.HandleWebSocket(c.Writer, c.Request)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rouletteHandler := roulettehttp.NewHandler(sm, userUC, roundUC)
	rouletteHandler.RegisterRoutes(router.Group("/api/roulette"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.InfoGlobal().Int("port", cfg.Server.Port).Str("repo", cfg.Server.RepoType).Msg("roulette server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalGlobal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.InfoGlobal().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorGlobal().Err(err).Msg("server shutdown failed")
	}

	manager.Shutdown()
	if redisSink != nil {
		redisSink.Close()
	}
}

// buildRepositories wires the configured persistence backend. The memory
// backend needs no external service and is the default for local runs.
func buildRepositories(cfg *config.Config) (domain.UserRepository, domain.RoundRepository, domain.BetRepository, func()) {
	if cfg.Server.RepoType != "postgres" {
		logger.InfoGlobal().Msg("using in-memory repositories")
		return memrepo.NewUserRepository(), memrepo.NewRoundRepository(), memrepo.NewBetRepository(), func() {}
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.FatalGlobal().Err(err).Msg("failed to access database pool")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&domain.User{}, &domain.Round{}, &domain.Bet{}); err != nil {
		logger.FatalGlobal().Err(err).Msg("failed to migrate schema")
	}

	logger.InfoGlobal().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("using postgres repositories")

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.ErrorGlobal().Err(err).Msg("failed to close database")
		}
	}
	return dbrepo.NewUserRepository(db), dbrepo.NewRoundRepository(db), dbrepo.NewBetRepository(db), cleanup
}
