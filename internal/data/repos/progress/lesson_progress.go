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

type LessonProgressRepo interface {
	MarkCompleted(dbc dbctx.Context, userID, lessonID, courseID uuid.UUID, at time.Time) (*types.LessonProgress, error)
	CountCompletedByCourse(dbc dbctx.Context, userID uuid.UUID) (map[uuid.UUID]int, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.LessonProgress, error)
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	repoLog := baseLog.With("repo", "LessonProgressRepo")
	return &lessonProgressRepo{db: db, log: repoLog}
}

// MarkCompleted upserts on (user_id, lesson_id); repeating it refreshes the
// timestamp and never adds a row.
func (r *lessonProgressRepo) MarkCompleted(dbc dbctx.Context, userID, lessonID, courseID uuid.UUID, at time.Time) (*types.LessonProgress, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	at = at.UTC()
	row := &types.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    courseID,
		Completed:   true,
		CompletedAt: &at,
	}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"course_id", "completed", "completed_at", "updated_at"}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *lessonProgressRepo) CountCompletedByCourse(dbc dbctx.Context, userID uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	out := map[uuid.UUID]int{}
	if userID == uuid.Nil {
		return out, nil
	}

	var rows []struct {
		CourseID uuid.UUID
		N        int
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.LessonProgress{}).
		Select("course_id, COUNT(*) AS n").
		Where("user_id = ? AND completed = ?", userID, true).
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CourseID] = row.N
	}
	return out, nil
}

func (r *lessonProgressRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.LessonProgress, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LessonProgress
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
