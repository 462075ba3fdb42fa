package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"4002"`
	// BodyLimit is the maximum accepted request body size in bytes.
	// Bulk uploaders can send large listing batches.
	BodyLimit int `mapstructure:"body_limit" default:"4194304"`
}
