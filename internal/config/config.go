package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	xenv "github.com/garrettladley/pulse/internal/env"
	"github.com/garrettladley/pulse/internal/paths"
	"github.com/garrettladley/pulse/internal/validator"
	"github.com/garrettladley/pulse/internal/xslog"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

type Config struct {
	Env      xenv.Environment `env:"PULSE_ENV" envDefault:"development"`
	LogLevel string           `env:"LOG_LEVEL" envDefault:"info"`

	StoreBackend Backend `env:"STORE_BACKEND" envDefault:"sqlite"`
	// SQLitePath defaults to ~/.config/pulse/pulse.db when empty.
	SQLitePath  string `env:"SQLITE_PATH"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	NATSURL     string `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	ZoneTickInterval     time.Duration `env:"ZONE_TICK_INTERVAL" envDefault:"1s"`
	AnaerobicThresholdHR float64       `env:"ANAEROBIC_THRESHOLD_HR" envDefault:"0"`
	SensorDevice         string        `env:"SENSOR_DEVICE" envDefault:"default"`
}

var _ validator.Validator = (*Config)(nil)

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg)
}

// ReadFrom parses cfg from the given variables instead of the process environment.
func ReadFrom(vars map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	if cfg.StoreBackend == BackendSQLite && cfg.SQLitePath == "" {
		path, err := paths.DB()
		if err != nil {
			return Config{}, err
		}
		cfg.SQLitePath = path
	}
	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() map[string]string {
	var f validator.Fields
	_, levelErr := xslog.Parse(c.LogLevel)
	f.Check(levelErr == nil, "LOG_LEVEL", "must be one of debug, info, warn, error")
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		f.Check(false, "STORE_BACKEND", "must be one of memory, sqlite, postgres, redis")
	}
	if c.StoreBackend == BackendPostgres {
		f.Check(c.DatabaseURL != "", "DATABASE_URL", "required for the postgres backend")
	}
	if c.StoreBackend == BackendRedis {
		f.Check(c.RedisURL != "", "REDIS_URL", "required for the redis backend")
	}
	f.Check(c.ZoneTickInterval > 0, "ZONE_TICK_INTERVAL", "must be positive")
	f.Check(c.AnaerobicThresholdHR >= 0, "ANAEROBIC_THRESHOLD_HR", "must not be negative")
	f.Check(c.SensorDevice != "", "SENSOR_DEVICE", "required")
	f.Check(len(c.KafkaBrokers) > 0, "KAFKA_BROKERS", "required")
	return f.Result()
}

func (c Config) Level() xslog.Level {
	level, err := xslog.Parse(c.LogLevel)
	if err != nil {
		return xslog.Default
	}
	return level
}
