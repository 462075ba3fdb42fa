package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"market-ingest/core/config"
	"market-ingest/core/logger"
	"market-ingest/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// gamedataPushCmd represents the gamedata push command
var gamedataPushCmd = &cobra.Command{
	Use:   "gamedata-push [file]",
	Short: "Upload a stack-size table to game-data storage",
	Long: `Validates a local stack-size table (a JSON map of item id to maximum
stack size) and uploads it to the configured storage object.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			logg.Fatal("Failed to read table file", zap.Error(err))
		}

		// Reject files the server would fail to load at startup.
		var table map[string]int
		if err := json.Unmarshal(data, &table); err != nil {
			logg.Fatal("Table file is not a valid stack-size map", zap.Error(err))
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		ctx := cmd.Context()
		exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to check bucket", zap.Error(err))
		}
		if !exists {
			logg.Fatal("Bucket does not exist", zap.String("bucket", cfg.Storage.Bucket))
		}

		_, err = client.PutObject(ctx, cfg.Storage.Bucket, cfg.Gamedata.ObjectName,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/json"})
		if err != nil {
			logg.Fatal("Failed to upload table", zap.Error(err))
		}

		logg.Info("Uploaded stack-size table",
			zap.String("object", cfg.Gamedata.ObjectName),
			zap.Int("items", len(table)),
		)
	},
}

func init() {
	RootCmd.AddCommand(gamedataPushCmd)
}
