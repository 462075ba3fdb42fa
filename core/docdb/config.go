package docdb

// Config holds configuration for the market data document store.
type Config struct {
	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" default:"mongodb://localhost:27017"`
	// Database is the database holding market board collections.
	Database string `mapstructure:"database" default:"market"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
