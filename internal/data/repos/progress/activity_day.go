package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/domain/progress"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type ActivityDayRepo interface {
	Record(dbc dbctx.Context, userID uuid.UUID, at time.Time) error
	// RecentDays returns distinct days newest first, at most limit of them.
	RecentDays(dbc dbctx.Context, userID uuid.UUID, limit int) ([]string, error)
}

type activityDayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityDayRepo(db *gorm.DB, baseLog *logger.Logger) ActivityDayRepo {
	repoLog := baseLog.With("repo", "ActivityDayRepo")
	return &activityDayRepo{db: db, log: repoLog}
}

func (r *activityDayRepo) Record(dbc dbctx.Context, userID uuid.UUID, at time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(&types.ActivityDay{UserID: userID, Day: progress.DayOf(at)}).Error
}

func (r *activityDayRepo) RecentDays(dbc dbctx.Context, userID uuid.UUID, limit int) ([]string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var days []string
	if userID == uuid.Nil {
		return days, nil
	}

	q := transaction.WithContext(dbc.Ctx).
		Model(&types.ActivityDay{}).
		Where("user_id = ?", userID).
		Order("day DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("day", &days).Error; err != nil {
		return nil, err
	}
	return days, nil
}
