package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/kazlearn-backend/internal/clients/redis"
	httpH "github.com/yungbote/kazlearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/kazlearn-backend/internal/http/middleware"
	"github.com/yungbote/kazlearn-backend/internal/observability"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	Metrics      *observability.Metrics
	LoginLimiter redis.LoginLimiter
	CORSOrigins  []string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler  *httpH.HealthHandler
	AuthHandler    *httpH.AuthHandler
	UserHandler    *httpH.UserHandler
	CourseHandler  *httpH.CourseHandler
	LessonHandler  *httpH.LessonHandler
	WordHandler    *httpH.WordHandler
	GrammarHandler *httpH.GrammarHandler
	TrophyHandler  *httpH.TrophyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.OptionalAuth())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", httpMW.LoginLimit(cfg.Log, cfg.LoginLimiter), cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
			api.GET("/check-session", cfg.AuthHandler.CheckSession)
		}

		// Catalogue (viewer optional)
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.List)
			api.GET("/courses/:id", cfg.CourseHandler.Get)
			api.GET("/courses/:id/test", cfg.CourseHandler.ListQuestions)
		}
		if cfg.LessonHandler != nil {
			api.GET("/lessons/:id", cfg.LessonHandler.Get)
		}
		if cfg.GrammarHandler != nil {
			api.GET("/grammar", cfg.GrammarHandler.List)
			api.GET("/grammar/:id", cfg.GrammarHandler.Get)
		}
		if cfg.TrophyHandler != nil {
			api.GET("/trophies", cfg.TrophyHandler.List)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/user/profile", cfg.UserHandler.Profile)
			protected.GET("/user/stats", cfg.UserHandler.Stats)
			protected.PUT("/user/update", cfg.UserHandler.Update)
		}

		// Progress
		if cfg.LessonHandler != nil {
			protected.POST("/lessons/:id/complete", cfg.LessonHandler.Complete)
		}
		if cfg.WordHandler != nil {
			protected.POST("/words/learn", cfg.WordHandler.Learn)
			protected.GET("/words/learned", cfg.WordHandler.Learned)
		}
		if cfg.CourseHandler != nil {
			protected.POST("/courses/:id/test/submit", cfg.CourseHandler.SubmitTest)
		}
	}

	return r
}
