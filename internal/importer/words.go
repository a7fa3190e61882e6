package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yungbote/kazlearn-backend/internal/data/repos"
	types "github.com/yungbote/kazlearn-backend/internal/domain"
	"github.com/yungbote/kazlearn-backend/internal/platform/apierr"
	"github.com/yungbote/kazlearn-backend/internal/platform/dbctx"
	"github.com/yungbote/kazlearn-backend/internal/platform/logger"
	"github.com/yungbote/kazlearn-backend/internal/seed"
)

// Column order of an import sheet.
const (
	colKazakh = iota
	colEnglish
	colRussian
	colPronunciation
	colExampleKk
	colExampleEn
	colExampleRu
	colWordType
	columnCount
)

type Config struct {
	LessonID uuid.UUID
	// Sheet defaults to the first sheet of the workbook.
	Sheet string
	// StartRow is 1-based; the default of 2 skips a header row.
	StartRow int
}

type Result struct {
	Processed int
	Imported  int
	Skipped   int
	Errors    []string
}

type WordImporter struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
	wordRepo   repos.WordRepo
}

func NewWordImporter(db *gorm.DB, baseLog *logger.Logger, lessonRepo repos.LessonRepo, wordRepo repos.WordRepo) *WordImporter {
	return &WordImporter{
		db:         db,
		log:        baseLog.With("component", "WordImporter"),
		lessonRepo: lessonRepo,
		wordRepo:   wordRepo,
	}
}

// ImportFile reads .xlsx workbooks with excelize and .csv files with the
// csv reader.
func (wi *WordImporter) ImportFile(ctx context.Context, path string, cfg Config) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	default:
		rows, err = readWorkbook(path, cfg.Sheet)
	}
	if err != nil {
		return nil, err
	}
	return wi.ImportRows(ctx, rows, cfg)
}

// ImportRows upserts every usable row into the lesson in one transaction.
// Blank rows are skipped and malformed rows are reported in Result.Errors
// without aborting the import.
func (wi *WordImporter) ImportRows(ctx context.Context, rows [][]string, cfg Config) (*Result, error) {
	if cfg.LessonID == uuid.Nil {
		return nil, apierr.Validation("lesson id is required")
	}
	start := cfg.StartRow
	if start <= 0 {
		start = 2
	}

	res := &Result{Errors: []string{}}
	err := wi.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		lessons, err := wi.lessonRepo.GetByIDs(dbc, []uuid.UUID{cfg.LessonID})
		if err != nil {
			return fmt.Errorf("load lesson: %w", err)
		}
		if len(lessons) == 0 {
			return apierr.NotFound("lesson not found")
		}
		existing, err := wi.wordRepo.GetByLessonID(dbc, cfg.LessonID)
		if err != nil {
			return fmt.Errorf("load lesson words: %w", err)
		}
		ids := make(map[string]uuid.UUID, len(existing))
		for _, w := range existing {
			ids[normalize(w.Kazakh)] = w.ID
		}

		batch := map[string]*types.Word{}
		var order []string
		for i, row := range rows {
			line := i + 1
			if line < start {
				continue
			}
			if blank(row) {
				res.Skipped++
				continue
			}
			res.Processed++
			w, err := rowToWord(row)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", line, err))
				continue
			}
			key := normalize(w.Kazakh)
			if id, ok := ids[key]; ok {
				w.ID = id
			} else {
				w.ID = seed.ID("word", cfg.LessonID.String()+"/"+key)
			}
			w.LessonID = cfg.LessonID
			if _, dup := batch[key]; !dup {
				order = append(order, key)
			}
			// later rows win
			batch[key] = w
		}

		words := make([]*types.Word, 0, len(order))
		for _, k := range order {
			words = append(words, batch[k])
		}
		if err := wi.wordRepo.Upsert(dbc, words); err != nil {
			return fmt.Errorf("upsert words: %w", err)
		}
		res.Imported = len(words)
		return nil
	})
	if err != nil {
		return nil, err
	}
	wi.log.Info("Words imported",
		"lesson_id", cfg.LessonID,
		"processed", res.Processed,
		"imported", res.Imported,
		"skipped", res.Skipped,
		"errors", len(res.Errors),
	)
	return res, nil
}

func rowToWord(row []string) (*types.Word, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	w := &types.Word{
		Kazakh:            cell(colKazakh),
		English:           cell(colEnglish),
		Russian:           cell(colRussian),
		Pronunciation:     cell(colPronunciation),
		ExampleSentenceKk: cell(colExampleKk),
		ExampleSentenceEn: cell(colExampleEn),
		ExampleSentenceRu: cell(colExampleRu),
		WordType:          cell(colWordType),
	}
	switch {
	case w.Kazakh == "":
		return nil, fmt.Errorf("missing kazakh word")
	case w.English == "":
		return nil, fmt.Errorf("missing english translation for %q", w.Kazakh)
	}
	return w, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
