package cmd

import (
	"fmt"

	"storage-manager/core/config"
	"storage-manager/core/database"
	"storage-manager/core/logger"
	"storage-manager/core/storage"
	"storage-manager/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check storage and database connectivity",
	Long:  `Lists buckets with the configured credentials, checks that the default bucket exists and pings the optional activity database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fix, _ := cmd.Flags().GetBool("fix")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err == nil {
			db = conn
		}

		svc := health.NewFeature(store, cfg.Storage, logg, db).Service()

		logg.Info("Checking storage...")
		report := svc.CheckStorage(ctx)
		if report.Status == "degraded" && fix {
			logg.Info("Creating default bucket...", zap.String("bucket", report.DefaultBucket))
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to create default bucket: %w", err)
			}
			report = svc.CheckStorage(ctx)
		}

		switch report.Status {
		case "ok":
			logg.Info("Storage is reachable.", zap.Int("buckets", report.Buckets), zap.String("default_bucket", report.DefaultBucket))
		case "degraded":
			logg.Warn("Default bucket is missing. Run with --fix to create it.", zap.String("default_bucket", report.DefaultBucket))
		default:
			return fmt.Errorf("storage check failed: %s", report.Error)
		}

		dbReport := svc.CheckDatabase(ctx)
		switch dbReport.Status {
		case "ok":
			logg.Info("Activity database is reachable.")
		case "disabled":
			logg.Info("Activity database is disabled.")
		default:
			logg.Warn("Activity database check failed", zap.String("error", dbReport.Error))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
	healthCmd.Flags().Bool("fix", false, "Create the default bucket when it is missing")
}
