package cmd

import (
	"context"
	"fmt"
	"os"

	"quote-manager/core/catalog"
	"quote-manager/core/config"
	"quote-manager/core/database"
	"quote-manager/core/logger"
	"quote-manager/core/storage"
	"quote-manager/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	exportOutput  string
	exportCompact bool
)

// exportCmd runs a single quote export from the command line.
var exportCmd = &cobra.Command{
	Use:   "export <quote-id-or-reference>",
	Short: "Export a single quote's reconciled configuration",
	Long: `Export runs the full reconciliation pipeline for one quote and writes
the assembled JSON document to stdout (or a file with --output).

Examples:
  # Export by quote id
  export 5f0c2a1e

  # Export by customer-facing reference, pretty-printed to a file
  export Q-2024-0117 --output quote.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the document to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportCompact, "compact", false, "Emit compact JSON instead of indented")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	identifier := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI runs log to the console so diagnostics stay readable.
	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	catalogClient := catalog.NewClient(cfg.Catalog)
	feature := export.NewFeature(db, store, cfg.Storage.Bucket, cfg.Storage.DraftPrefix, cfg.Database.Schema, catalogClient, logg)

	data, err := feature.Service().Export(ctx, identifier)
	if err != nil {
		return fmt.Errorf("export of %q failed: %w", identifier, err)
	}

	assembler := &export.JSONAssembler{Indent: !exportCompact}
	body, err := assembler.Assemble(ctx, data)
	if err != nil {
		return err
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		logg.Info("Export written",
			zap.String("quote", data.QuoteID),
			zap.String("file", exportOutput),
			zap.Int("chassis", len(data.Chassis)),
		)
		return nil
	}

	fmt.Println(string(body))
	return nil
}
