package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/kazlearn-backend/internal/app"
	"github.com/yungbote/kazlearn-backend/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var (
		file       string
		noDemoUser bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the course catalogue, grammar rules and trophies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalogue(file)
			if err != nil {
				return err
			}
			if noDemoUser {
				cat.DemoUser = nil
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				sum, err := a.Seeder().Apply(cmd.Context(), cat)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"seeded %d courses, %d lessons, %d words, %d questions, %d grammar rules, %d trophies\n",
					sum.Courses, sum.Lessons, sum.Words, sum.Questions, sum.Grammar, sum.Trophies)
				if sum.DemoUser {
					fmt.Fprintf(cmd.OutOrStdout(), "created demo user %s\n", cat.DemoUser.Username)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalogue yaml (defaults to the built-in catalogue)")
	cmd.Flags().BoolVar(&noDemoUser, "no-demo-user", false, "skip creating the demo account")
	return cmd
}

func loadCatalogue(file string) (*seed.Catalogue, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}
