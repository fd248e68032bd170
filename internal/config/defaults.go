// Package config provides configuration loading, defaults, and validation
// for the acquisition-ranking service.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultDBHost   = "localhost"
	DefaultDBPort   = 5432
	DefaultDBName   = "laundromat"
	DefaultDBConns  = 10
	DefaultMigrPath = "file://migrations"

	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "laundro:"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "laundro-ingest"
	DefaultKafkaTopic   = "listings.raw"

	DefaultSourceMode = "static"

	DefaultMinScore       = 70.0
	DefaultMinCapRate     = 0.0
	DefaultRealEstateOnly = true

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultTargetNeighborhoods returns the reference acquisition target set,
// used both as the scoring target default and as the dashboard's preselected
// neighborhood filter.
func DefaultTargetNeighborhoods() []string {
	return []string{"Logan Square", "Avondale", "Hermosa"}
}

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller are left unchanged so explicit
// configuration always wins. It must be called after unmarshalling and before
// Validate so optional-but-defaulted fields are never seen as missing.
//
// Boolean defaults that are true (filter.real_estate_only) cannot be applied
// here because an explicit false is indistinguishable from unset; the loader
// registers them as viper defaults instead.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ──────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// ── Database ────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBConns
	}
	if cfg.Database.ConnTimeout == 0 {
		cfg.Database.ConnTimeout = 5 * time.Second
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = DefaultMigrPath
	}

	// ── Redis ───────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisPrefix
	}
	if cfg.Redis.SnapshotTTL == 0 {
		cfg.Redis.SnapshotTTL = 15 * time.Minute
	}

	// ── Kafka ───────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.MinBytes == 0 {
		cfg.Kafka.MinBytes = 1
	}
	if cfg.Kafka.MaxBytes == 0 {
		cfg.Kafka.MaxBytes = 10 << 20 // 10 MiB
	}

	// ── Source ──────────────────────────────────────────────────────────────
	if cfg.Source.Mode == "" {
		cfg.Source.Mode = DefaultSourceMode
	}

	// ── Scoring ─────────────────────────────────────────────────────────────
	if len(cfg.Scoring.TargetNeighborhoods) == 0 {
		cfg.Scoring.TargetNeighborhoods = DefaultTargetNeighborhoods()
	}

	// ── Filter ──────────────────────────────────────────────────────────────
	// MinScore 0 and MinCapRate 0 are valid explicit values; the loader seeds
	// the non-zero default (min_score 70) through viper so it can be
	// distinguished from unset. The neighborhood preselection follows the
	// scoring target set unless configured explicitly.
	if len(cfg.Filter.Neighborhoods) == 0 {
		cfg.Filter.Neighborhoods = append([]string(nil), cfg.Scoring.TargetNeighborhoods...)
	}

	// ── Log ─────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
