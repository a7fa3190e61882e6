package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/clients/redis"
	"github.com/yungbote/kazlearn-backend/internal/http"
	httpH "github.com/yungbote/kazlearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/kazlearn-backend/internal/http/middleware"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Course  *httpH.CourseHandler
	Lesson  *httpH.LessonHandler
	Word    *httpH.WordHandler
	Grammar *httpH.GrammarHandler
	Trophy  *httpH.TrophyHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Auth:    httpH.NewAuthHandler(s.Auth),
		User:    httpH.NewUserHandler(s.User),
		Course:  httpH.NewCourseHandler(s.Catalog, s.Quiz, metrics),
		Lesson:  httpH.NewLessonHandler(s.Catalog, s.Progress, metrics),
		Word:    httpH.NewWordHandler(s.Progress, metrics),
		Grammar: httpH.NewGrammarHandler(s.Catalog),
		Trophy:  httpH.NewTrophyHandler(s.Catalog),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics, limiter redis.LoginLimiter) *http.Server {
	serviceName := ""
	if cfg.OTel.Enabled {
		serviceName = cfg.OTel.ServiceName
	}
	return http.NewServer(log, http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		LoginLimiter:   limiter,
		CORSOrigins:    cfg.CORSOrigins(),
		ServiceName:    serviceName,
		AuthMiddleware: mw.Auth,
		HealthHandler:  h.Health,
		AuthHandler:    h.Auth,
		UserHandler:    h.User,
		CourseHandler:  h.Course,
		LessonHandler:  h.Lesson,
		WordHandler:    h.Word,
		GrammarHandler: h.Grammar,
		TrophyHandler:  h.Trophy,
	}, cfg.Server.ShutdownTimeout)
}
