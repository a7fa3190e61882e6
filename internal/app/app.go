package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/clients/redis"
	"github.com/yungbote/kazlearn-backend/internal/data/db"
	"github.com/yungbote/kazlearn-backend/internal/importer"
	"github.com/yungbote/kazlearn-backend/internal/jobs"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
	"github.com/yungbote/kazlearn-backend/internal/seed"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services

	shutdownOTel func(context.Context) error
}

// New opens the logger, tracing and the database and wires repos and
// services. HTTP and the scheduler are only built by Serve.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.NewWithOptions(logger.Options{
		Mode:  cfg.Log.Mode,
		Level: cfg.Log.Level,
		Redaction: logger.Redaction{
			Disabled: !cfg.Log.Redact,
			HashSalt: cfg.Log.HashSalt,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	shutdownOTel := observability.InitOTel(ctx, log, observability.OTelConfig{
		Enabled:     cfg.OTel.Enabled,
		ServiceName: cfg.OTel.ServiceName,
		Environment: cfg.OTel.Environment,
		Endpoint:    cfg.OTel.Endpoint,
		Headers:     cfg.OTel.Headers,
		Insecure:    cfg.OTel.Insecure,
		SampleRatio: cfg.OTel.SampleRatio,
	})

	theDB, err := db.Open(cfg.DB(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		shutdownOTel: shutdownOTel,
	}, nil
}

func (a *App) Migrate() error {
	a.Log.Info("Running migrations...")
	return db.AutoMigrateAll(a.DB)
}

func (a *App) Seeder() *seed.Seeder {
	return seed.NewSeeder(a.DB, a.Log,
		a.Repos.Course,
		a.Repos.Lesson,
		a.Repos.Word,
		a.Repos.Grammar,
		a.Repos.Question,
		a.Repos.Trophy,
		a.Repos.User,
		a.Services.Auth,
	)
}

func (a *App) WordImporter() *importer.WordImporter {
	return importer.NewWordImporter(a.DB, a.Log, a.Repos.Lesson, a.Repos.Word)
}

// Serve runs the HTTP server, the job scheduler and the metrics
// collectors until ctx is cancelled or one of them fails.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Cfg
	gin.SetMode(cfg.Server.GinMode)
	if cfg.Auth.JWTSecret == insecureDefaultSecret {
		a.Log.Warn("auth.jwt_secret is the built-in default; set AUTH_JWT_SECRET")
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	limiter, err := redis.NewLoginLimiter(a.Log, redis.LoginLimiterConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Limit:    cfg.Redis.LoginLimit,
		Window:   cfg.Redis.LoginWindow,
	})
	if err != nil {
		return fmt.Errorf("init login limiter: %w", err)
	}
	defer limiter.Close()

	handlers := wireHandlers(a.Log, a.DB, a.Services, metrics)
	middleware := wireMiddleware(a.Log, a.Services)
	server := wireServer(a.Log, cfg, handlers, middleware, metrics, limiter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, ":"+strconv.Itoa(cfg.Server.Port))
	})
	if cfg.Jobs.Enabled {
		scheduler, err := a.wireScheduler(metrics)
		if err != nil {
			return err
		}
		g.Go(func() error { return scheduler.Run(gctx) })
	}
	metrics.StartCollectors(gctx, a.Log, a.DB, cfg.Redis.Addr, cfg.Metrics.CollectInterval)

	return g.Wait()
}

func (a *App) wireScheduler(metrics *observability.Metrics) (*jobs.Scheduler, error) {
	loc, err := time.LoadLocation(a.Cfg.Jobs.Timezone)
	if err != nil {
		return nil, fmt.Errorf("jobs timezone: %w", err)
	}
	s := jobs.NewScheduler(a.Log, metrics, loc)
	s.Register(jobs.StreakRefreshJob(a.Log, a.Services.Streaks, a.Cfg.Jobs.StreakCron))
	s.Register(jobs.TokenPurgeJob(a.Log, a.Services.Auth, a.Cfg.Jobs.TokenCron))
	return s, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.shutdownOTel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOTel(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if err := db.Close(a.DB); err != nil {
		a.Log.Warn("database close failed", "error", err)
	}
	a.Log.Sync()
}
