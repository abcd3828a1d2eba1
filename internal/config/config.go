package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Deployment profiles selected through APP_ENV.
const (
	ProfileProduction = "production"
	ProfileLocal      = "local"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates application settings that may be sourced from env files or environment variables.
type Config struct {
	Profile  string         `mapstructure:"profile"`
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the store driver and holds its connection options.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig 包含 Redis 连接配置。Addr 为空时不投递联系通知。
type RedisConfig struct {
	Addr          string `mapstructure:"addr"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	NotifyChannel string `mapstructure:"notify_channel"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WorkerConfig contains asynq worker settings.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MetricsPort int `mapstructure:"metrics_port"`
}

// NotificationsEnabled reports whether contact submissions should be queued for the worker.
func (c *Config) NotificationsEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Profile == ProfileProduction
}

// DSN returns DATABASE_URL when set, otherwise builds a libpq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	if url := strings.TrimSpace(d.URL); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads the profile env file (if any) and then the environment.
func Load() (*Config, error) {
	profile := profileFromEnv()
	if err := loadEnvFile(profile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, profile)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Profile = profile
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func profileFromEnv() string {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("APP_ENV")), ProfileProduction) {
		return ProfileProduction
	}
	return ProfileLocal
}

// loadEnvFile 加载与 profile 对应的 .env 文件；文件不存在时忽略。已存在的环境变量优先。
func loadEnvFile(profile string) error {
	path := ".env.local"
	if profile == ProfileProduction {
		path = ".env.prod"
	}
	if override := strings.TrimSpace(os.Getenv("ENV_FILE")); override != "" {
		path = override
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper, profile string) {
	v.SetDefault("api.host", "")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "portfolio.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.notify_channel", "portfolio:contact")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.metrics_port", 0)

	if profile == ProfileProduction {
		v.SetDefault("database.driver", DriverPostgres)
		v.SetDefault("log.format", "json")
	} else {
		v.SetDefault("database.driver", DriverSQLite)
		v.SetDefault("log.format", "text")
	}
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.host":                   "API_HOST",
		"api.port":                   "API_PORT",
		"api.shutdown_timeout":       "API_SHUTDOWN_TIMEOUT",
		"database.driver":            "DATABASE_DRIVER",
		"database.url":               "DATABASE_URL",
		"database.host":              "DATABASE_HOST",
		"database.port":              "DATABASE_PORT",
		"database.name":              "POSTGRES_DB",
		"database.user":              "POSTGRES_USER",
		"database.password":          "POSTGRES_PASSWORD",
		"database.sslmode":           "DATABASE_SSLMODE",
		"database.sqlite_path":       "SQLITE_PATH",
		"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
		"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
		"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",
		"database.auto_migrate":      "DATABASE_AUTO_MIGRATE",
		"redis.addr":                 "REDIS_ADDR",
		"redis.password":             "REDIS_PASSWORD",
		"redis.db":                   "REDIS_DB",
		"redis.notify_channel":       "REDIS_NOTIFY_CHANNEL",
		"cors.allowed_origins":       "CORS_ALLOWED_ORIGINS",
		"log.level":                  "LOG_LEVEL",
		"log.format":                 "LOG_FORMAT",
		"worker.concurrency":         "WORKER_CONCURRENCY",
		"worker.metrics_port":        "WORKER_METRICS_PORT",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.ShutdownTimeout <= 0 {
		return errors.New("api shutdown timeout must be positive")
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		if strings.TrimSpace(cfg.Database.URL) == "" {
			if cfg.Database.Host == "" {
				return errors.New("database host is required when DATABASE_URL is empty")
			}
			if cfg.Database.Port <= 0 {
				return errors.New("database port must be positive")
			}
			if cfg.Database.Name == "" {
				return errors.New("database name is required when DATABASE_URL is empty")
			}
			if cfg.Database.User == "" {
				return errors.New("database user is required when DATABASE_URL is empty")
			}
		}
	case DriverSQLite:
		if strings.TrimSpace(cfg.Database.SQLitePath) == "" {
			return errors.New("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return errors.New("database pool sizes must not be negative")
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", cfg.Log.Format)
	}
	if cfg.Worker.Concurrency <= 0 {
		return errors.New("worker concurrency must be positive")
	}
	return nil
}
