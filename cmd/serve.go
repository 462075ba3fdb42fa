package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-ingest/core/bus"
	"market-ingest/core/config"
	"market-ingest/core/database"
	"market-ingest/core/docdb"
	"market-ingest/core/loader"
	"market-ingest/core/logger"
	"market-ingest/core/middleware/rayid"
	"market-ingest/core/storage"
	"market-ingest/feature/access"
	"market-ingest/feature/gamedata"
	"market-ingest/feature/upload"
	"market-ingest/feature/upload/store"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Market Ingest API
// @version 1.0
// @description Upload endpoint for market board data from trusted clients.
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload ingestion server",
	Long:  `Starts the HTTP server and initializes the upload pipeline.`,
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

		// 3. Connect to the access-control database. Without it no upload
		// can be authorized, so failure here is fatal.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to access-control database", zap.Error(err))
		}
		gate := access.NewStore(db)
		if err := gate.Migrate(); err != nil {
			logg.Fatal("Failed to migrate access-control tables", zap.Error(err))
		}

		// 4. Connect to the market data document store.
		docs, err := docdb.Connect(cfg.DocDB)
		if err != nil {
			logg.Fatal("Failed to connect to document store", zap.Error(err))
		}
		defer func() {
			if err := docdb.Disconnect(docs); err != nil {
				logg.Error("Failed to disconnect document store", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		snapshots, err := store.NewMongoSnapshotStore(ctx, docs)
		if err != nil {
			logg.Fatal("Failed to initialize snapshot store", zap.Error(err))
		}
		histories, err := store.NewMongoHistoryStore(ctx, docs)
		if err != nil {
			logg.Fatal("Failed to initialize history store", zap.Error(err))
		}

		// 5. Load game data (Optional). Bounds checks fall back to the
		// default stack size when storage is unreachable.
		var gdp gamedata.Provider = gamedata.NewTableProvider(nil, cfg.Gamedata.DefaultStackSize)
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional game-data storage unavailable", zap.Error(err))
		} else if table, err := gamedata.Load(ctx, client, cfg.Storage.Bucket, cfg.Gamedata); err != nil {
			logg.Warn("Failed to load stack-size table, using defaults", zap.Error(err))
		} else {
			gdp = table
			logg.Info("Loaded stack-size table")
		}

		// 6. Event Publisher (Optional)
		var publisher bus.Publisher
		if cfg.Bus.Broker != "" {
			kp := bus.NewKafkaPublisher(cfg.Bus)
			defer kp.Close()
			publisher = kp
			logg.Info("Delta event publication enabled",
				zap.String("broker", cfg.Bus.Broker),
				zap.String("topic", cfg.Bus.Topic),
			)
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit,
		})

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

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

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(upload.NewFeature(gate, snapshots, histories, gdp, publisher, logg))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
