package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type harness struct {
	ctx context.Context
	db  *gorm.DB
	log *logger.Logger
	now time.Time

	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	courseRepo     repos.CourseRepo
	lessonRepo     repos.LessonRepo
	wordRepo       repos.WordRepo
	grammarRepo    repos.GrammarRuleRepo
	questionRepo   repos.QuizQuestionRepo
	resultRepo     repos.QuizResultRepo
	trophyRepo     repos.TrophyRepo
	userTrophyRepo repos.UserTrophyRepo
	progressRepo   repos.LessonProgressRepo
	learnedRepo    repos.LearnedWordRepo
	activityRepo   repos.ActivityDayRepo

	counters     CounterService
	achievements AchievementService
	streaks      StreakService
	progress     ProgressService
	quiz         QuizService
	catalog      CatalogService
	auth         AuthService
	users        UserService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		ctx: context.Background(),
		db:  db,
		log: log,
		now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),

		userRepo:       repos.NewUserRepo(db, log),
		userTokenRepo:  repos.NewUserTokenRepo(db, log),
		courseRepo:     repos.NewCourseRepo(db, log),
		lessonRepo:     repos.NewLessonRepo(db, log),
		wordRepo:       repos.NewWordRepo(db, log),
		grammarRepo:    repos.NewGrammarRuleRepo(db, log),
		questionRepo:   repos.NewQuizQuestionRepo(db, log),
		resultRepo:     repos.NewQuizResultRepo(db, log),
		trophyRepo:     repos.NewTrophyRepo(db, log),
		userTrophyRepo: repos.NewUserTrophyRepo(db, log),
		progressRepo:   repos.NewLessonProgressRepo(db, log),
		learnedRepo:    repos.NewLearnedWordRepo(db, log),
		activityRepo:   repos.NewActivityDayRepo(db, log),
	}
	clock := func() time.Time { return h.now }

	h.counters = NewCounterService(log, h.userRepo, h.learnedRepo, h.resultRepo, h.userTrophyRepo, h.activityRepo)

	ach := NewAchievementService(db, log, h.trophyRepo, h.userTrophyRepo, h.counters).(*achievementService)
	ach.now = clock
	h.achievements = ach

	st := NewStreakService(db, log, h.userRepo, h.activityRepo, h.counters, h.achievements).(*streakService)
	st.now = clock
	h.streaks = st

	ps := NewProgressService(db, log, h.lessonRepo, h.wordRepo, h.progressRepo, h.learnedRepo, h.counters, h.achievements, h.streaks).(*progressService)
	ps.now = clock
	h.progress = ps

	qs := NewQuizService(db, log, h.courseRepo, h.questionRepo, h.resultRepo, h.counters, h.achievements, h.streaks).(*quizService)
	qs.now = clock
	h.quiz = qs

	h.catalog = NewCatalogService(log, h.courseRepo, h.lessonRepo, h.wordRepo, h.grammarRepo, h.trophyRepo, h.userTrophyRepo, h.progressRepo)

	as := NewAuthService(db, log, h.userRepo, h.userTokenRepo, "test-secret", 15*time.Minute, 24*time.Hour).(*authService)
	as.bcryptCost = bcrypt.MinCost
	h.auth = as

	h.users = NewUserService(db, log, h.userRepo, h.userTokenRepo, h.courseRepo, h.trophyRepo, h.userTrophyRepo)
	return h
}
