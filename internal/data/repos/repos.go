package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos/achievement"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/auth"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/content"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/progress"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/quiz"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/user"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type CourseRepo = content.CourseRepo
type LessonRepo = content.LessonRepo
type WordRepo = content.WordRepo
type GrammarRuleRepo = content.GrammarRuleRepo

type QuizQuestionRepo = quiz.QuestionRepo
type QuizResultRepo = quiz.ResultRepo

type TrophyRepo = achievement.TrophyRepo
type UserTrophyRepo = achievement.UserTrophyRepo

type LessonProgressRepo = progress.LessonProgressRepo
type LearnedWordRepo = progress.LearnedWordRepo
type ActivityDayRepo = progress.ActivityDayRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return content.NewCourseRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return content.NewLessonRepo(db, baseLog)
}
func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	return content.NewWordRepo(db, baseLog)
}
func NewGrammarRuleRepo(db *gorm.DB, baseLog *logger.Logger) GrammarRuleRepo {
	return content.NewGrammarRuleRepo(db, baseLog)
}

func NewQuizQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuizQuestionRepo {
	return quiz.NewQuestionRepo(db, baseLog)
}
func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return quiz.NewResultRepo(db, baseLog)
}

func NewTrophyRepo(db *gorm.DB, baseLog *logger.Logger) TrophyRepo {
	return achievement.NewTrophyRepo(db, baseLog)
}
func NewUserTrophyRepo(db *gorm.DB, baseLog *logger.Logger) UserTrophyRepo {
	return achievement.NewUserTrophyRepo(db, baseLog)
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return progress.NewLessonProgressRepo(db, baseLog)
}
func NewLearnedWordRepo(db *gorm.DB, baseLog *logger.Logger) LearnedWordRepo {
	return progress.NewLearnedWordRepo(db, baseLog)
}
func NewActivityDayRepo(db *gorm.DB, baseLog *logger.Logger) ActivityDayRepo {
	return progress.NewActivityDayRepo(db, baseLog)
}
