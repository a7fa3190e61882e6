package user

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

// Counter columns a recount may write. Profile updates never touch these.
var counterColumns = map[string]bool{
	"streak_days":             true,
	"total_words_learned":     true,
	"total_courses_completed": true,
	"total_trophies":          true,
}

var profileColumns = map[string]bool{
	"username":      true,
	"email":         true,
	"current_theme": true,
	"last_login":    true,
}

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	UsernameOrEmailTaken(dbc dbctx.Context, exceptID uuid.UUID, username, email string) (bool, error)
	UpdateProfile(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error
	SetCounter(dbc dbctx.Context, userID uuid.UUID, column string, value int) error
	LockForUpdate(dbc dbctx.Context, userID uuid.UUID) error
	ListIDsWithStreak(dbc dbctx.Context) ([]uuid.UUID, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUsername returns nil, nil when no user matches.
func (ur *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}

	var results []*types.User
	if err := transaction.WithContext(dbc.Ctx).
		Where("username = ?", username).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ur *userRepo) UsernameOrEmailTaken(dbc dbctx.Context, exceptID uuid.UUID, username, email string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if username == "" && email == "" {
		return false, nil
	}

	q := transaction.WithContext(dbc.Ctx).Unscoped().Model(&types.User{})
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	default:
		q = q.Where("email = ?", email)
	}
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) UpdateProfile(dbc dbctx.Context, userID uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	clean := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if profileColumns[k] {
			clean[k] = v
		} else {
			ur.log.Warn("dropping non-profile column from update", "column", k)
		}
	}
	if userID == uuid.Nil || len(clean) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(clean).Error
}

func (ur *userRepo) SetCounter(dbc dbctx.Context, userID uuid.UUID, column string, value int) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if !counterColumns[column] {
		return gorm.ErrInvalidField
	}
	if userID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update(column, value).Error
}

// LockForUpdate row-locks the user for the rest of dbc.Tx so concurrent
// recounts for the same user run one after another. SQLite serialises
// writers on its own and has no FOR UPDATE, so the clause is postgres only.
func (ur *userRepo) LockForUpdate(dbc dbctx.Context, userID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	q := transaction.WithContext(dbc.Ctx).Model(&types.User{}).Select("id").Where("id = ?", userID)
	if transaction.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var u types.User
	return q.Take(&u).Error
}

func (ur *userRepo) ListIDsWithStreak(dbc dbctx.Context) ([]uuid.UUID, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("streak_days > 0").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
