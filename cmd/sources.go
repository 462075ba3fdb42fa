package cmd

import (
	"fmt"
	"os"

	"market-ingest/core/config"
	"market-ingest/core/database"
	"market-ingest/core/hash"
	"market-ingest/core/logger"
	"market-ingest/feature/access"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourcesCmd groups access-control provisioning commands.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage trusted sources and suppressed uploaders",
	Long:  `Provision the access-control records that authorize or suppress uploads.`,
}

var sourceAddName string
var sourceAddKey string

// sourcesAddCmd represents the sources add command
var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new trusted source",
	Long:  `Registers an API key for a new upload client. Only the key's hash is stored.`,
	Run: func(cmd *cobra.Command, args []string) {
		gate := provisioningStore()

		err := gate.CreateSource(cmd.Context(), &access.TrustedSource{
			APIKeyHash: hash.SHA256(sourceAddKey),
			Name:       sourceAddName,
		})
		if err != nil {
			fmt.Printf("Failed to register source: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered trusted source %q\n", sourceAddName)
	},
}

var flagUploaderID string

// sourcesFlagCmd represents the sources flag command
var sourcesFlagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Suppress an uploader",
	Long: `Adds an uploader identifier to the suppression list. Suppressed uploads
are silently discarded while still reporting success to the client.`,
	Run: func(cmd *cobra.Command, args []string) {
		gate := provisioningStore()

		uploaderIDHash := flagUploaderID
		if !flagUploaderHashed {
			uploaderIDHash = hash.SHA256(flagUploaderID)
		}
		if err := gate.FlagUploader(cmd.Context(), uploaderIDHash); err != nil {
			fmt.Printf("Failed to flag uploader: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Uploader suppressed")
	},
}

var flagUploaderHashed bool

// provisioningStore connects to the access database and runs migrations.
// Exits the process on failure; these are one-shot admin commands.
func provisioningStore() *access.Store {
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

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to access-control database", zap.Error(err))
	}

	gate := access.NewStore(db)
	if err := gate.Migrate(); err != nil {
		logg.Fatal("Failed to migrate access-control tables", zap.Error(err))
	}
	return gate
}

func init() {
	sourcesAddCmd.Flags().StringVar(&sourceAddName, "name", "", "attribution name for the source")
	sourcesAddCmd.Flags().StringVar(&sourceAddKey, "key", "", "raw API key to register")
	_ = sourcesAddCmd.MarkFlagRequired("name")
	_ = sourcesAddCmd.MarkFlagRequired("key")

	sourcesFlagCmd.Flags().StringVar(&flagUploaderID, "uploader", "", "uploader identifier to suppress")
	sourcesFlagCmd.Flags().BoolVar(&flagUploaderHashed, "hashed", false, "treat the identifier as already hashed")
	_ = sourcesFlagCmd.MarkFlagRequired("uploader")

	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesFlagCmd)
	RootCmd.AddCommand(sourcesCmd)
}
