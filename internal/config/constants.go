package config

const (
	// DefaultDatabasePath is the well-known store file in the working directory
	DefaultDatabasePath = "./catalog.db"

	// DefaultEnvFile is loaded before the environment is read, if present
	DefaultEnvFile = ".env"
)
