package cmd

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storage-manager/core/config"
	"storage-manager/core/database"
	"storage-manager/core/loader"
	"storage-manager/core/logger"
	"storage-manager/core/metrics"
	"storage-manager/core/middleware/auth"
	"storage-manager/core/middleware/rayid"
	"storage-manager/core/storage"

	"storage-manager/feature/activity"
	"storage-manager/feature/files"
	"storage-manager/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "storage-manager/docs/swagger"
)

// @title Storage Manager API
// @version 1.0
// @description API for browsing and managing buckets, folders and files in S3-compatible storage.
// @host localhost:8000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storage API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			if !errors.Is(err, database.ErrDisabled) {
				logg.Warn("Optional database connection failed", zap.Error(err))
			}
		} else {
			db = conn
			logg.Info("Connected to activity database")
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})
		m := metrics.New()

		// 5. Register Features
		mgr := loader.NewManager()
		act := activity.NewFeature(db, logg)
		mgr.Register(health.NewFeature(store, cfg.Storage, logg, db))
		mgr.Register(act)
		mgr.Register(files.NewFeature(store, cfg.Storage, logg, m, act.Recorder()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. CORS for the browser front end
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.Server.Origins(), ","),
			AllowHeaders: "Origin, Content-Type, Accept, X-API-Key, " + rayid.Header,
		}))

		// 4. Metrics
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())

		// 5. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 6. Auth
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Public: []string{"/health", "/swagger", "/metrics"},
		}))

		// 7. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("bucket", cfg.Storage.DefaultBucket))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
