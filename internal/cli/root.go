package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/kazlearn-backend/internal/app"
)

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kazlearn",
		Short:         "Kazakh language learning backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newImportWordsCmd())
	return root
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// withApp loads config, builds the app, migrates the schema and hands it
// to fn. The app is closed on every exit path.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := app.LoadConfig(configFile)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.Migrate(); err != nil {
		return err
	}
	return fn(a)
}
