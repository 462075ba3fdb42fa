package gamedata

// Config holds configuration for the game-data provider.
type Config struct {
	// ObjectName is the storage object holding the marketable item
	// stack-size table, a JSON map of item id to maximum stack size.
	ObjectName string `mapstructure:"object_name" default:"gamedata/stack-sizes.json"`
	// DefaultStackSize is used for items absent from the table.
	DefaultStackSize int `mapstructure:"default_stack_size" default:"9999"`
}
