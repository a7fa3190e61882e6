package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type QuestionRepo interface {
	Upsert(dbc dbctx.Context, questions []*types.QuizQuestion) error
	GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.QuizQuestion, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (r *questionRepo) Upsert(dbc dbctx.Context, questions []*types.QuizQuestion) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"course_id", "question_text_en", "question_text_kk", "question_text_ru",
				"question_type", "correct_answer", "options", "points", "order_index",
				"updated_at", "deleted_at",
			}),
		}).
		Create(&questions).Error
}

func (r *questionRepo) GetByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.QuizQuestion, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizQuestion
	if courseID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
