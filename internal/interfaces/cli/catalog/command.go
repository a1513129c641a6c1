// Package catalog holds the offline catalog tooling.
package catalog

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subledger/internal/infrastructure/config"
	"github.com/orris-inc/subledger/internal/infrastructure/database"
	"github.com/orris-inc/subledger/internal/infrastructure/migration"
	httpRouter "github.com/orris-inc/subledger/internal/interfaces/http"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

var (
	env        string
	configPath string
	file       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newImportCommand())
	return cmd
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Issue variants from a YAML file",
		Long: `Issue every entry of a YAML list of {cost, ttl, available} as a new
variant, in file order. Variants issued before a failing entry are kept.`,
		RunE: runImport,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the variants to issue (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open variant file: %w", err)
	}
	defer f.Close()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	ctx := cmd.Context()
	if err := migration.RequireVersion(ctx, database.Get(), cfg.Database.Driver, log); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(ctx, database.Get(), cfg, clock.SystemClock{}, log)
	if err != nil {
		return err
	}
	defer container.Shutdown()

	issued, importErr := container.ImportVariants().Execute(ctx, f)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOST\tTTL\tAVAILABLE")
	for _, v := range issued {
		fmt.Fprintf(w, "%d\t%d\t%d\t%t\n", v.ID, v.Cost, v.TimeToLive, v.Available)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if importErr != nil {
		return fmt.Errorf("import stopped after %d variants: %w", len(issued), importErr)
	}
	log.Infow("variants imported", "count", len(issued), "file", file)
	return nil
}
