package domain

import (
	"github.com/yungbote/kazlearn-backend/internal/domain/achievement"
	"github.com/yungbote/kazlearn-backend/internal/domain/auth"
	"github.com/yungbote/kazlearn-backend/internal/domain/content"
	"github.com/yungbote/kazlearn-backend/internal/domain/progress"
	"github.com/yungbote/kazlearn-backend/internal/domain/quiz"
	"github.com/yungbote/kazlearn-backend/internal/domain/user"
)

const (
	DefaultTheme = user.DefaultTheme

	LevelBeginner     = content.LevelBeginner
	LevelIntermediate = content.LevelIntermediate
	LevelAdvanced     = content.LevelAdvanced

	QuestionMultipleChoice = quiz.QuestionMultipleChoice
	QuestionTranslation    = quiz.QuestionTranslation
	QuestionFillBlank      = quiz.QuestionFillBlank

	RequirementGamesWon         = achievement.RequirementGamesWon
	RequirementWordsLearned     = achievement.RequirementWordsLearned
	RequirementPerfectTests     = achievement.RequirementPerfectTests
	RequirementStreakDays       = achievement.RequirementStreakDays
	RequirementCoursesCompleted = achievement.RequirementCoursesCompleted
)

type User = user.User
type UserToken = auth.UserToken

type Level = content.Level
type Course = content.Course
type Lesson = content.Lesson
type Word = content.Word
type GrammarRule = content.GrammarRule

type QuestionType = quiz.QuestionType
type QuizQuestion = quiz.Question
type QuizResult = quiz.Result

type RequirementType = achievement.RequirementType
type Trophy = achievement.Trophy
type UserTrophy = achievement.UserTrophy

type LessonProgress = progress.LessonProgress
type LearnedWord = progress.LearnedWord
type ActivityDay = progress.ActivityDay

var (
	ParseLevel           = content.ParseLevel
	ParseQuestionType    = quiz.ParseQuestionType
	ParseRequirementType = achievement.ParseRequirementType
)

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&UserToken{},
		&Course{},
		&Lesson{},
		&Word{},
		&GrammarRule{},
		&QuizQuestion{},
		&QuizResult{},
		&Trophy{},
		&UserTrophy{},
		&LessonProgress{},
		&LearnedWord{},
		&ActivityDay{},
	}
}
