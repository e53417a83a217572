package storage

// Config describes a Store.
type Config struct {
	DataDir        string
	DisableLogging bool
	InMemory       bool
	SyncWrites     bool
	GCInterval     int64 // in seconds, 0 to disable
}

// DefaultConfig returns the standing store configuration.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		DisableLogging: true,
		InMemory:       false,
		SyncWrites:     true,
		GCInterval:     3600,
	}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{
		DisableLogging: true,
		InMemory:       true,
	}
}
