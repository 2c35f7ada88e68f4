package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"item-sync/core/config"
	"item-sync/core/database"
	"item-sync/core/loader"
	"item-sync/core/logger"
	"item-sync/core/middleware/auth"
	"item-sync/core/middleware/rayid"
	"item-sync/core/storage"
	"item-sync/feature/integrity"
	"item-sync/feature/syncjob"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "item-sync/docs/swagger"
)

// @title Item Sync API
// @version 1.0
// @description API for reconciling calendar events and tasks.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the item sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

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

		// 3. Connect to Database (side A and, by default, the mapping)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (side B)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Wire the sync pass and prepare both backends
		deps := syncjob.Deps{
			DB:     db,
			Client: store,
			Bucket: cfg.Storage.Bucket,
			Region: cfg.Storage.Region,
		}
		components, err := syncjob.Build(cfg.Sync, deps, logg)
		if err != nil {
			logg.Fatal("Failed to wire sync components", zap.Error(err))
		}
		if err := components.Prepare(ctx, deps); err != nil {
			logg.Fatal("Failed to prepare backends", zap.Error(err))
		}
		service := syncjob.NewService(components.Engine, components.Store, logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 6. Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(syncjob.NewFeature(service, cfg.Sync.Enabled))
		checker := integrity.NewService(integrity.DepsFor(cfg.Sync, deps, components, service.Locker()), cfg.Integrity.Workers, logg)
		mgr.Register(integrity.NewFeature(checker, cfg.Integrity.Enabled))

		// RayID first so every later log line is traceable
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)

			ctx, cancel := context.WithTimeout(c.UserContext(), cfg.Server.RequestTimeout())
			defer cancel()
			c.SetUserContext(ctx)

			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip:   []string{"/swagger"},
		}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("address", cfg.Server.Address()),
				zap.String("strategy", service.Strategy()),
				zap.String("mapping", components.Store.Describe()),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
