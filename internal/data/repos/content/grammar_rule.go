package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type GrammarRuleRepo interface {
	Upsert(dbc dbctx.Context, rules []*types.GrammarRule) error
	GetByIDs(dbc dbctx.Context, ruleIDs []uuid.UUID) ([]*types.GrammarRule, error)
	List(dbc dbctx.Context, difficulty *types.Level) ([]*types.GrammarRule, error)
}

type grammarRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGrammarRuleRepo(db *gorm.DB, baseLog *logger.Logger) GrammarRuleRepo {
	repoLog := baseLog.With("repo", "GrammarRuleRepo")
	return &grammarRuleRepo{db: db, log: repoLog}
}

func (r *grammarRuleRepo) Upsert(dbc dbctx.Context, rules []*types.GrammarRule) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rules) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category", "title_en", "title_kk", "title_ru",
				"explanation_en", "explanation_kk", "explanation_ru",
				"examples", "difficulty", "order_index", "updated_at", "deleted_at",
			}),
		}).
		Create(&rules).Error
}

func (r *grammarRuleRepo) GetByIDs(dbc dbctx.Context, ruleIDs []uuid.UUID) ([]*types.GrammarRule, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.GrammarRule
	if len(ruleIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ruleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// List returns every rule when difficulty is nil.
func (r *grammarRuleRepo) List(dbc dbctx.Context, difficulty *types.Level) ([]*types.GrammarRule, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).Model(&types.GrammarRule{})
	if difficulty != nil {
		q = q.Where("difficulty = ?", *difficulty)
	}

	var results []*types.GrammarRule
	if err := q.Order("order_index ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
