package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	Course     repos.CourseRepo
	Lesson     repos.LessonRepo
	Word       repos.WordRepo
	Grammar    repos.GrammarRuleRepo
	Question   repos.QuizQuestionRepo
	Result     repos.QuizResultRepo
	Trophy     repos.TrophyRepo
	UserTrophy repos.UserTrophyRepo
	Progress   repos.LessonProgressRepo
	Learned    repos.LearnedWordRepo
	Activity   repos.ActivityDayRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		Course:     repos.NewCourseRepo(db, log),
		Lesson:     repos.NewLessonRepo(db, log),
		Word:       repos.NewWordRepo(db, log),
		Grammar:    repos.NewGrammarRuleRepo(db, log),
		Question:   repos.NewQuizQuestionRepo(db, log),
		Result:     repos.NewQuizResultRepo(db, log),
		Trophy:     repos.NewTrophyRepo(db, log),
		UserTrophy: repos.NewUserTrophyRepo(db, log),
		Progress:   repos.NewLessonProgressRepo(db, log),
		Learned:    repos.NewLearnedWordRepo(db, log),
		Activity:   repos.NewActivityDayRepo(db, log),
	}
}
