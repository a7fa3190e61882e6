package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	"github.com/yungbote/kazlearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
)

func newImporter(t *testing.T) (*WordImporter, *gorm.DB, repos.WordRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	wordRepo := repos.NewWordRepo(db, log)
	return NewWordImporter(db, log, repos.NewLessonRepo(db, log), wordRepo), db, wordRepo
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWorkbook(t *testing.T) {
	wi, db, wordRepo := newImporter(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, ctx, db, 1)
	lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)

	path := writeWorkbook(t, [][]any{
		{"kazakh", "english", "russian", "pronunciation", "example_kk", "example_en", "example_ru", "word_type"},
		{"Кітап", "Book", "Книга", "kitap", "Бұл кітап", "This is a book", "Это книга", "noun"},
		{},
		{"Су", "", "Вода"},
		{"Үй", "House", "Дом", "ui", "", "", "", "noun"},
	})

	res, err := wi.ImportFile(ctx, path, Config{LessonID: lesson.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 2, res.Imported)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 4")

	words, err := wordRepo.GetByLessonID(dbctx.Context{Ctx: ctx}, lesson.ID)
	require.NoError(t, err)
	require.Len(t, words, 2)

	// re-import must not duplicate
	_, err = wi.ImportFile(ctx, path, Config{LessonID: lesson.ID})
	require.NoError(t, err)
	words, err = wordRepo.GetByLessonID(dbctx.Context{Ctx: ctx}, lesson.ID)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestImportReusesExistingWordIDs(t *testing.T) {
	wi, db, wordRepo := newImporter(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, ctx, db, 1)
	lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)
	seeded := testutil.SeedWord(t, ctx, db, lesson.ID, "Сәлем", "Hi")

	res, err := wi.ImportRows(ctx, [][]string{
		{"header"},
		{" сәлем ", "Hello", "Привет"},
	}, Config{LessonID: lesson.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	words, err := wordRepo.GetByLessonID(dbctx.Context{Ctx: ctx}, lesson.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, seeded.ID, words[0].ID)
	assert.Equal(t, "Hello", words[0].English)
}

func TestImportCSV(t *testing.T) {
	wi, db, _ := newImporter(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, ctx, db, 1)
	lesson := testutil.SeedLesson(t, ctx, db, course.ID, 1)

	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("kazakh,english\nАна,Mother\nӘке,Father\n"), 0o600))

	res, err := wi.ImportFile(ctx, path, Config{LessonID: lesson.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	var n int64
	require.NoError(t, db.Model(&types.Word{}).Where("lesson_id = ?", lesson.ID).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestImportUnknownLesson(t *testing.T) {
	wi, _, _ := newImporter(t)
	_, err := wi.ImportRows(context.Background(), [][]string{{"h"}, {"Кітап", "Book"}}, Config{LessonID: uuid.New()})
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "got %v", err)
}
