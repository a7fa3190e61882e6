package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type LearnedWordRepo interface {
	Upsert(dbc dbctx.Context, userID, wordID uuid.UUID, proficiency int, at time.Time) error
	CountByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearnedWord, error)
}

type learnedWordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearnedWordRepo(db *gorm.DB, baseLog *logger.Logger) LearnedWordRepo {
	repoLog := baseLog.With("repo", "LearnedWordRepo")
	return &learnedWordRepo{db: db, log: repoLog}
}

func (r *learnedWordRepo) Upsert(dbc dbctx.Context, userID, wordID uuid.UUID, proficiency int, at time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	row := &types.LearnedWord{
		UserID:      userID,
		WordID:      wordID,
		Proficiency: proficiency,
		LearnedAt:   at.UTC(),
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"proficiency", "learned_at"}),
		}).
		Create(row).Error
}

func (r *learnedWordRepo) CountByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.LearnedWord{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *learnedWordRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearnedWord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearnedWord
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("learned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
