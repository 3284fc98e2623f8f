package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	SessionSecret string `env:"SESSION_SECRET"`

	SessionTTL   time.Duration `env:"SESSION_TTL,   default=24h"`
	ScanCooldown time.Duration `env:"SCAN_COOLDOWN, default=3s"`

	Backend BackendConfig
	Routes  RouteConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// RouteConfig is the single source of truth for the per-role landing routes.
type RouteConfig struct {
	Login       string `env:"ROUTE_LOGIN,       default=/login"`
	Citizen     string `env:"ROUTE_CITIZEN,     default=/citizen"`
	Distributor string `env:"ROUTE_DISTRIBUTOR, default=/distributor"`
	Official    string `env:"ROUTE_OFFICIAL,    default=/official"`
	Admin       string `env:"ROUTE_ADMIN,       default=/admin-dashboard"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=aidtrack_dashboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs with production hardening,
// which currently controls the Secure flag on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RouteTable builds the role routing table from the configured routes.
func (c *Config) RouteTable() domain.RouteTable {
	r := c.Routes
	return domain.NewRouteTable(r.Login, r.Citizen, r.Distributor, r.Official, r.Admin)
}
