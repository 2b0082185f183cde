package config

const (
	defaultPort        = "4000"
	defaultStoreDriver = StoreMemory
	defaultSQLitePath  = "data/games.db"
	defaultMetricsPort = "9090"
	defaultServiceName = "game-catalog-service"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)
