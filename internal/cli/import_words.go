package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/kazlearn-backend/internal/app"
	"github.com/yungbote/kazlearn-backend/internal/importer"
)

func newImportWordsCmd() *cobra.Command {
	var (
		file     string
		lesson   string
		sheet    string
		startRow int
	)
	cmd := &cobra.Command{
		Use:   "import-words",
		Short: "Import lesson vocabulary from an .xlsx or .csv file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			lessonID, err := uuid.Parse(lesson)
			if err != nil {
				return fmt.Errorf("--lesson must be a lesson id: %w", err)
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				res, err := a.WordImporter().ImportFile(cmd.Context(), file, importer.Config{
					LessonID: lessonID,
					Sheet:    sheet,
					StartRow: startRow,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "processed %d rows, imported %d words, skipped %d blank rows\n",
					res.Processed, res.Imported, res.Skipped)
				for _, e := range res.Errors {
					fmt.Fprintln(out, "  "+e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "spreadsheet to import")
	cmd.Flags().StringVar(&lesson, "lesson", "", "target lesson id")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (defaults to the first sheet)")
	cmd.Flags().IntVar(&startRow, "start-row", 2, "first data row, 1-based")
	return cmd
}
