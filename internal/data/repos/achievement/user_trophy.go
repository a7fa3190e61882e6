package achievement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type UserTrophyRepo interface {
	// Grant inserts the grant unless (user, trophy) already exists and
	// reports whether a row was written.
	Grant(dbc dbctx.Context, userID, trophyID uuid.UUID, earnedAt time.Time) (bool, error)
	CountByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserTrophy, error)
}

type userTrophyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTrophyRepo(db *gorm.DB, baseLog *logger.Logger) UserTrophyRepo {
	repoLog := baseLog.With("repo", "UserTrophyRepo")
	return &userTrophyRepo{db: db, log: repoLog}
}

func (r *userTrophyRepo) Grant(dbc dbctx.Context, userID, trophyID uuid.UUID, earnedAt time.Time) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || trophyID == uuid.Nil {
		return false, nil
	}

	row := &types.UserTrophy{UserID: userID, TrophyID: trophyID, EarnedAt: earnedAt.UTC()}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "trophy_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userTrophyRepo) CountByUserID(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return 0, nil
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.UserTrophy{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetByUserID returns grants newest first.
func (r *userTrophyRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.UserTrophy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserTrophy
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
