package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/noorstudy/noorstudy-backend/internal/clients/redis"
	"github.com/noorstudy/noorstudy-backend/internal/db"
	"github.com/noorstudy/noorstudy-backend/internal/observability"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
	"github.com/noorstudy/noorstudy-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *sse.SSEHub

	bus          redis.SSEBus
	cancel       context.CancelFunc
	shutdownOTel func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	shutdownOTel := observability.Init(context.Background(), log, observability.Config{
		ServiceName: "noorstudy-backend",
		Environment: logMode,
		Version:     os.Getenv("APP_VERSION"),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	hub := sse.NewSSEHub(log)

	// The Redis bus is optional. Without it notification fanout stays
	// single-instance through the local hub.
	bus, err := redis.NewSSEBus(log)
	if err != nil {
		log.Warn("redis sse bus unavailable, using local hub only", "error", err)
		bus = nil
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(log, cfg, reposet, hub, bus)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(theDB, log, serviceset, reposet, hub)
	middlewareset := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, handlerset, middlewareset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		SSEHub:   hub,
		bus:      bus,

		shutdownOTel: shutdownOTel,
	}, nil
}

// Start launches the background workers: the inbox poller and, when Redis
// is configured, the cross-instance SSE forwarder.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Services.Consultations.Start(ctx)

	if a.bus != nil {
		if err := a.bus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
			a.Log.Warn("sse forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.bus != nil {
		_ = a.bus.Close()
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.shutdownOTel(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
