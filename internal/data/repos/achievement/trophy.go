package achievement

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type TrophyRepo interface {
	Upsert(dbc dbctx.Context, trophies []*types.Trophy) error
	GetByIDs(dbc dbctx.Context, trophyIDs []uuid.UUID) ([]*types.Trophy, error)
	GetByRequirementType(dbc dbctx.Context, rt types.RequirementType) ([]*types.Trophy, error)
	List(dbc dbctx.Context) ([]*types.Trophy, error)
}

type trophyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrophyRepo(db *gorm.DB, baseLog *logger.Logger) TrophyRepo {
	repoLog := baseLog.With("repo", "TrophyRepo")
	return &trophyRepo{db: db, log: repoLog}
}

func (r *trophyRepo) Upsert(dbc dbctx.Context, trophies []*types.Trophy) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(trophies) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name_en", "name_kk", "name_ru",
				"description_en", "description_kk", "description_ru",
				"icon", "requirement_type", "requirement_value",
				"updated_at", "deleted_at",
			}),
		}).
		Create(&trophies).Error
}

func (r *trophyRepo) GetByIDs(dbc dbctx.Context, trophyIDs []uuid.UUID) ([]*types.Trophy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Trophy
	if len(trophyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", trophyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *trophyRepo) GetByRequirementType(dbc dbctx.Context, rt types.RequirementType) ([]*types.Trophy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Trophy
	if err := transaction.WithContext(dbc.Ctx).
		Where("requirement_type = ?", rt).
		Order("requirement_value ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *trophyRepo) List(dbc dbctx.Context) ([]*types.Trophy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Trophy
	if err := transaction.WithContext(dbc.Ctx).
		Order("requirement_type ASC").
		Order("requirement_value ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
