package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type WordRepo interface {
	Upsert(dbc dbctx.Context, words []*types.Word) error
	GetByIDs(dbc dbctx.Context, wordIDs []uuid.UUID) ([]*types.Word, error)
	GetByLessonID(dbc dbctx.Context, lessonID uuid.UUID) ([]*types.Word, error)
}

type wordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	repoLog := baseLog.With("repo", "WordRepo")
	return &wordRepo{db: db, log: repoLog}
}

func (r *wordRepo) Upsert(dbc dbctx.Context, words []*types.Word) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(words) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lesson_id", "kazakh", "english", "russian", "pronunciation",
				"example_sentence_kk", "example_sentence_en", "example_sentence_ru",
				"word_type", "updated_at", "deleted_at",
			}),
		}).
		Create(&words).Error
}

func (r *wordRepo) GetByIDs(dbc dbctx.Context, wordIDs []uuid.UUID) ([]*types.Word, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if len(wordIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", wordIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wordRepo) GetByLessonID(dbc dbctx.Context, lessonID uuid.UUID) ([]*types.Word, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if lessonID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("lesson_id = ?", lessonID).
		Order("kazakh ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
