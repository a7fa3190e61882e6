package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/kazlearn-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureQuizIndexes(db)
}

// EnsureQuizIndexes adds the partial index used by first-pass detection.
// Both supported dialects accept partial indexes.
func EnsureQuizIndexes(db *gorm.DB) error {
	stmt := `CREATE INDEX IF NOT EXISTS idx_quiz_result_passed ON quiz_result (user_id, course_id) WHERE passed`
	if db.Dialector.Name() == DriverSQLite {
		stmt = `CREATE INDEX IF NOT EXISTS idx_quiz_result_passed ON quiz_result (user_id, course_id) WHERE passed = 1`
	}
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("ensure quiz indexes: %w", err)
	}
	return nil
}
