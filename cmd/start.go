package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"tracking-auditor/core/config"
	"tracking-auditor/core/database"
	"tracking-auditor/core/loader"
	"tracking-auditor/core/logger"
	"tracking-auditor/core/middleware/auth"
	"tracking-auditor/core/middleware/rayid"
	"tracking-auditor/core/shopify"
	"tracking-auditor/core/storage"

	"tracking-auditor/feature/consistency"
	"tracking-auditor/feature/reconcile"
	"tracking-auditor/feature/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "tracking-auditor/docs/swagger"
)

// @title Tracking Auditor API
// @version 1.0
// @description API for auditing e-commerce conversion tracking.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tracking auditor server",
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg = logg.With(zap.String("shop", cfg.Shopify.Domain))
		logg.Info("Connected to tracking database")

		store := tracking.NewStore(db)
		if err := store.Migrate(); err != nil {
			logg.Fatal("Failed to migrate tracking tables", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Report Archive (Optional)
		// A shop without an archive endpoint still reconciles; reports are
		// just not persisted as JSON objects.
		var archive storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional report archive unavailable", zap.Error(err))
		} else {
			archive = client
		}

		// 6. Initialize Order Source
		source := shopify.NewClient(cfg.Shopify)
		creds := cfg.Shopify.Credentials()

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(reconcile.NewFeature(source, store, archive, cfg.Storage.Bucket, creds, logg))
		mgr.Register(consistency.NewFeature(source, store, creds, logg, consistency.Options{}))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
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
