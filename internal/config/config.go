// Package config defines all configuration structures for the acquisition-
// ranking service. No I/O or parsing logic lives here — only plain data types
// and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the listing
// store. Only required when the listing source mode is "postgres" or when
// running the ingest worker.
type DatabaseConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	DBName        string        `mapstructure:"db_name"`
	SSLMode       string        `mapstructure:"ssl_mode"`
	MaxConns      int           `mapstructure:"max_conns"`
	ConnTimeout   time.Duration `mapstructure:"conn_timeout"`
	MigrationPath string        `mapstructure:"migration_path"`
}

// URL renders the pool/migration connection string.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisConfig holds parameters for the scored-snapshot cache.
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

// KafkaConfig holds parameters for the listing ingest feed.
type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	GroupID  string   `mapstructure:"group_id"`
	Topic    string   `mapstructure:"topic"`
	MinBytes int      `mapstructure:"min_bytes"`
	MaxBytes int      `mapstructure:"max_bytes"`
}

// SourceConfig selects where the pipeline reads raw listings from.
type SourceConfig struct {
	// Mode is "static" (bundled reference data), "file" (JSON file at Path),
	// or "postgres" (the listing store fed by the ingest worker).
	Mode string `mapstructure:"mode"`

	// Path is the JSON file location for the "file" mode.
	Path string `mapstructure:"path"`
}

// ScoringConfig carries the rubric: contribution weights by name and the
// target neighborhood set.
type ScoringConfig struct {
	Weights             map[string]float64 `mapstructure:"weights"`
	TargetNeighborhoods []string           `mapstructure:"target_neighborhoods"`
}

// FilterConfig carries the dashboard's default filter state. Request
// parameters override these per call.
type FilterConfig struct {
	// Neighborhoods is the preselected neighborhood set; defaults to the
	// scoring target neighborhoods, mirroring the dashboard multiselect.
	Neighborhoods []string `mapstructure:"neighborhoods"`

	MinScore       float64 `mapstructure:"min_score"`
	MinCapRate     float64 `mapstructure:"min_cap_rate"`
	RealEstateOnly bool    `mapstructure:"real_estate_only"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure. Every component reads its
// settings from the relevant sub-struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Source   SourceConfig   `mapstructure:"source"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Log      LogConfig      `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config. It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Source
	switch c.Source.Mode {
	case "static":
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("config: source.path is required when source.mode is \"file\"")
		}
	case "postgres":
		if err := c.validateDatabase(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: source.mode %q is invalid; expected static|file|postgres", c.Source.Mode)
	}

	// Filter
	if c.Filter.MinScore < 0 || c.Filter.MinScore > 100 {
		return fmt.Errorf("config: filter.min_score %v is out of range [0, 100]", c.Filter.MinScore)
	}
	if c.Filter.MinCapRate < 0 {
		return fmt.Errorf("config: filter.min_cap_rate must be ≥ 0, got %v", c.Filter.MinCapRate)
	}

	// Scoring weights: names are checked here, values by the scorer.
	for name := range c.Scoring.Weights {
		switch name {
		case "location", "real_estate", "motivation", "capacity":
		default:
			return fmt.Errorf("config: scoring.weights contains unknown name %q", name)
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

// validateDatabase checks the fields required to reach the listing store.
// Called for the postgres source mode and by the ingest worker's startup.
func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	return nil
}

// ValidateWorker performs the additional validation the ingest worker needs:
// a reachable database and a configured kafka feed.
func (c *Config) ValidateWorker() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.GroupID == "" {
		return fmt.Errorf("config: kafka.group_id is required")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("config: kafka.topic is required")
	}
	return nil
}
