package postgres

import (
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// database driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // file:// source driver

	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

// migrateURL rewrites the pool connection string for golang-migrate's pgx/v5
// driver, which registers the pgx5 scheme.
func migrateURL(dbURL string) string {
	if strings.HasPrefix(dbURL, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dbURL, "postgres://")
	}
	return dbURL
}

// RunMigrations applies every pending schema migration from migrationsPath
// (e.g. "file://migrations"). Called on apiserver and worker startup; a
// schema already at the latest version is not an error.
func RunMigrations(dbURL, migrationsPath string) error {
	m, err := migrate.New(migrationsPath, migrateURL(dbURL))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to initialize migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to apply migrations")
	}
	return nil
}

// RollbackMigrations rolls the schema back by steps migrations. Development
// and test tooling only.
func RollbackMigrations(dbURL, migrationsPath string, steps int) error {
	if steps <= 0 {
		return apperrors.New(apperrors.ErrCodeBadRequest,
			"rollback steps must be positive")
	}

	m, err := migrate.New(migrationsPath, migrateURL(dbURL))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to initialize migrator")
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to roll back migrations")
	}
	return nil
}

// MigrationVersion reports the current schema version and whether the last
// migration left the schema dirty.
func MigrationVersion(dbURL, migrationsPath string) (version uint, dirty bool, err error) {
	m, err := migrate.New(migrationsPath, migrateURL(dbURL))
	if err != nil {
		return 0, false, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to initialize migrator")
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError,
			"failed to read migration version")
	}
	return version, dirty, nil
}
