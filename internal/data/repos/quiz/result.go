package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// ResultRepo has no update or delete: results are an append-only history.
type ResultRepo interface {
	Create(dbc dbctx.Context, results []*types.QuizResult) ([]*types.QuizResult, error)
	HasPassed(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	CountPassedCourses(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizResult, error)
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	repoLog := baseLog.With("repo", "ResultRepo")
	return &resultRepo{db: db, log: repoLog}
}

func (r *resultRepo) Create(dbc dbctx.Context, results []*types.QuizResult) ([]*types.QuizResult, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(results) == 0 {
		return []*types.QuizResult{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepo) HasPassed(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.QuizResult{}).
		Where("user_id = ? AND course_id = ? AND passed = ?", userID, courseID, true).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *resultRepo) CountPassedCourses(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.QuizResult{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Distinct("course_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *resultRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizResult, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizResult
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
