package bus

// Config holds configuration for the delta-event message bus.
type Config struct {
	// Broker is the Kafka broker address. Empty disables event publication.
	Broker string `mapstructure:"broker" default:""`
	// Topic is the topic delta events are published to.
	Topic string `mapstructure:"topic" default:"market-deltas"`
	// TimeoutSeconds is the per-publish timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
