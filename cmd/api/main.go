package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	httpadp "grants-approval-engine/internal/adapter/http"
	appmw "grants-approval-engine/internal/adapter/middleware"
	"grants-approval-engine/internal/adapter/repository/mysql"
	"grants-approval-engine/internal/config"
	"grants-approval-engine/internal/identity"
	"grants-approval-engine/internal/infrastructure/cache"
	"grants-approval-engine/internal/infrastructure/db"
	"grants-approval-engine/internal/infrastructure/notifier"
	"grants-approval-engine/internal/usecase/chaindef"
	"grants-approval-engine/internal/usecase/queue"
	"grants-approval-engine/internal/usecase/workflow"
)

func main() {
	bootLog := zerolog.New(os.Stderr)
	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLog.Fatal().Err(err).Msg("validate config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().
		Timestamp().
		Str("service", "approval-engine").
		Logger()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect mysql")
	}
	log.Info().Msg("mysql connected")

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	log.Info().Msg("redis connected")

	var events notifier.Publisher = notifier.Nop{}
	if cfg.NATSURL != "" {
		np, err := notifier.OpenNATS(cfg.NATSURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect nats")
		}
		defer np.Close()
		events = np
		log.Info().Str("url", cfg.NATSURL).Msg("nats connected")
	}

	roles, err := identity.NewStaticFromJSON(cfg.ApproverRolesJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("parse approver roles")
	}

	chainRepo := mysql.NewChainRepository(gdb)
	requestRepo := mysql.NewRequestRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	chainUC := chaindef.NewUsecase(chainRepo)
	workflowUC := workflow.NewUsecase(chainRepo, requestRepo, uow, roles, events)
	queueUC := queue.NewUsecase(requestRepo)

	h := httpadp.NewHandler()
	chainH := httpadp.NewChainHandler(chainUC)
	requestH := httpadp.NewRequestHandler(workflowUC)
	queueH := httpadp.NewQueueHandler(queueUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	// routes
	e.GET("/health", h.Health)

	e.POST("/chains", chainH.CreateChain)
	e.GET("/chains", chainH.ListChains)

	e.POST("/requests", requestH.CreateRequest, idemp)
	e.GET("/requests/:request_id", requestH.GetRequest)
	e.POST("/requests/:request_id/decision", requestH.Decide, idemp)
	e.POST("/requests/:request_id/cancel", requestH.Cancel, idemp)
	e.GET("/requests/:request_id/history", requestH.History)

	e.GET("/queues/:role", queueH.ListQueue)
	e.GET("/queues/:role/summary", queueH.Summary)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
