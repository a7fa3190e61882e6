package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
	"github.com/yungbote/kazlearn-backend/internal/services"
)

type Services struct {
	Counters     services.CounterService
	Achievements services.AchievementService
	Streaks      services.StreakService
	Progress     services.ProgressService
	Quiz         services.QuizService
	Catalog      services.CatalogService
	Auth         services.AuthService
	User         services.UserService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	counters := services.NewCounterService(log, r.User, r.Learned, r.Result, r.UserTrophy, r.Activity)
	achievements := services.NewAchievementService(db, log, r.Trophy, r.UserTrophy, counters)
	streaks := services.NewStreakService(db, log, r.User, r.Activity, counters, achievements)
	return Services{
		Counters:     counters,
		Achievements: achievements,
		Streaks:      streaks,
		Progress:     services.NewProgressService(db, log, r.Lesson, r.Word, r.Progress, r.Learned, counters, achievements, streaks),
		Quiz:         services.NewQuizService(db, log, r.Course, r.Question, r.Result, counters, achievements, streaks),
		Catalog:      services.NewCatalogService(log, r.Course, r.Lesson, r.Word, r.Grammar, r.Trophy, r.UserTrophy, r.Progress),
		Auth:         services.NewAuthService(db, log, r.User, r.UserToken, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		User:         services.NewUserService(db, log, r.User, r.UserToken, r.Course, r.Trophy, r.UserTrophy),
	}
}
