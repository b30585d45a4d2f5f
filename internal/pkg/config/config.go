package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth    AuthConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	SQL     SQLConfig
	Kafka   KafkaConfig
	TLS     TLSConfig
	Metrics MetricsConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type StoreConfig struct {
	Driver       string `env:"STORE_DRIVER,  default=memory"`
	ProductsFile string `env:"PRODUCTS_FILE, default=data/products.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gestion_stock"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLConfig struct {
	DSN             string        `env:"SQL_DSN"`
	MaxOpenConns    int           `env:"SQL_MAX_OPEN_CONNS,    default=10"`
	MaxIdleConns    int           `env:"SQL_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"SQL_CONN_MAX_LIFETIME, default=30m"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC,   default=product-events"`
	Workers int      `env:"EVENT_WORKERS, default=4"`
}

type TLSConfig struct {
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`
}

type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED, default=true"`
}

// Enabled reports whether both halves of the key pair were given.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverMongo:
	case DriverPostgres, DriverMySQL, DriverSQLite:
		if c.SQL.DSN == "" {
			return fmt.Errorf("SQL_DSN must be set for store driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}
