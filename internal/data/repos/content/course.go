package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
)

type CourseRepo interface {
	Upsert(dbc dbctx.Context, courses []*types.Course) error
	GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error)
	List(dbc dbctx.Context) ([]*types.Course, error)
	Count(dbc dbctx.Context) (int64, error)
	RecountLessons(dbc dbctx.Context) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

// Upsert inserts or fully replaces courses by id. total_lessons is left to
// RecountLessons.
func (r *courseRepo) Upsert(dbc dbctx.Context, courses []*types.Course) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courses) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title_en", "title_kk", "title_ru",
				"description_en", "description_kk", "description_ru",
				"level", "order_index", "updated_at", "deleted_at",
			}),
		}).
		Create(&courses).Error
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, courseIDs []uuid.UUID) ([]*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) List(dbc dbctx.Context) ([]*types.Course, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if err := transaction.WithContext(dbc.Ctx).
		Order("order_index ASC").
		Order("title_en ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) Count(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(dbc.Ctx).Model(&types.Course{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// RecountLessons rewrites course.total_lessons from the live lesson rows.
func (r *courseRepo) RecountLessons(dbc dbctx.Context) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).Exec(`
		UPDATE course SET total_lessons = (
			SELECT COUNT(*) FROM lesson
			WHERE lesson.course_id = course.id AND lesson.deleted_at IS NULL
		)`).Error
}
