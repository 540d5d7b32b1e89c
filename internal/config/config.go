// Package config holds configuration for the optimizer service.
package config

import (
	"time"

	"github.com/copyforge/optimizer/internal/configloader"
)

// Default configuration values.
const (
	defaultServiceName       = "optimizer"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8090
	defaultBatchConcurrency  = 5
	defaultBatchMaxItems     = 20
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "optimizer"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 25
	defaultDBMaxIdleConns    = 5
	defaultRedisAddress      = "localhost:6379"
	defaultCacheTTLHours     = 24
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultRewriteBaseURL    = "https://api.groq.com/openai"
	defaultRewriteModel      = "llama-3.3-70b-versatile"
	defaultRewriteTimeoutSec = 30
	defaultRewriteRPS        = 10
	defaultHistoryLimit      = 50
)

// Config holds all configuration for the optimizer service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Rewrite  RewriteConfig  `yaml:"rewrite"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name             string `yaml:"name"`
	Version          string `yaml:"version"`
	Port             int    `env:"OPTIMIZER_PORT"        yaml:"port"`
	Debug            bool   `env:"APP_DEBUG"             yaml:"debug"`
	BatchConcurrency int    `env:"OPTIMIZER_CONCURRENCY" yaml:"batch_concurrency"`
	BatchMaxItems    int    `yaml:"batch_max_items"`
	HistoryLimit     int    `yaml:"history_limit"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

// RedisConfig holds Redis result-cache configuration.
type RedisConfig struct {
	Address  string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database int           `yaml:"database"`
	Enabled  bool          `env:"CACHE_ENABLED"  yaml:"enabled"`
	TTL      time.Duration `yaml:"result_cache_ttl"`
}

// RewriteConfig holds configuration for the external rewrite provider.
type RewriteConfig struct {
	BaseURL string        `env:"REWRITE_BASE_URL" yaml:"base_url"`
	APIKey  string        `env:"REWRITE_API_KEY"  yaml:"api_key"`
	Model   string        `env:"REWRITE_MODEL"    yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
	RPS     int           `yaml:"rps"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return configloader.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	setRewriteDefaults(&cfg.Rewrite)
	setLoggingDefaults(&cfg.Logging)
	// Auth defaults are handled by env tags - no explicit defaults needed
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.BatchConcurrency == 0 {
		s.BatchConcurrency = defaultBatchConcurrency
	}
	if s.BatchMaxItems == 0 {
		s.BatchMaxItems = defaultBatchMaxItems
	}
	if s.HistoryLimit == 0 {
		s.HistoryLimit = defaultHistoryLimit
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
	if d.MigrationsPath == "" {
		d.MigrationsPath = "migrations"
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
	if r.TTL == 0 {
		r.TTL = defaultCacheTTLHours * time.Hour
	}
}

func setRewriteDefaults(r *RewriteConfig) {
	if r.BaseURL == "" {
		r.BaseURL = defaultRewriteBaseURL
	}
	if r.Model == "" {
		r.Model = defaultRewriteModel
	}
	if r.Timeout == 0 {
		r.Timeout = defaultRewriteTimeoutSec * time.Second
	}
	if r.RPS == 0 {
		r.RPS = defaultRewriteRPS
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
