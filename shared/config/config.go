// shared/config/config.go
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends understood by the auction state service.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// RedisConfig holds the connection settings for the Redis storage backend.
type RedisConfig struct {
	RedisAddrs    []string `env:"REDIS_ADDRS" envSeparator:"," envDefault:"localhost:6379"` // Redis server addresses
	RedisPassword string   `env:"REDIS_PASSWORD"`                                           // Optional password for authentication
}

// MongoConfig holds the connection settings for the MongoDB storage backend.
type MongoConfig struct {
	MongoDBConnStr             string `env:"MONGODB_CONN_STR" envDefault:"mongodb://localhost:27017"`
	MongoDBDatabase            string `env:"MONGODB_DATABASE" envDefault:"auction"`
	MongoDBDocumentsCollection string `env:"MONGODB_DOCUMENTS_COLLECTION" envDefault:"documents"`
}

// AuctionServiceConfig holds configuration for the auction state service.
type AuctionServiceConfig struct {
	RedisConfig
	MongoConfig
	Port            int           `env:"PORT" envDefault:"3000"`                // Port the HTTP server listens on
	StorageBackend  string        `env:"STORAGE_BACKEND" envDefault:"file"`     // One of file, sqlite, mongo, redis
	DataDir         string        `env:"DATA_DIR" envDefault:"data"`            // Directory holding <resource>.json files
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"data/auction.db"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"` // Grace period for in-flight requests
}

// ListenAddr returns the address for the HTTP server (e.g., ":3000").
func (c *AuctionServiceConfig) ListenAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// LoadAuctionServiceConfig loads configuration for the auction state service from environment variables.
func LoadAuctionServiceConfig() (*AuctionServiceConfig, error) {
	cfg := &AuctionServiceConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for i, addr := range cfg.RedisAddrs {
		cfg.RedisAddrs[i] = strings.TrimSpace(addr)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535 (got %d)", cfg.Port)
	}
	switch cfg.StorageBackend {
	case BackendFile, BackendSQLite, BackendMongo, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg, nil
}
