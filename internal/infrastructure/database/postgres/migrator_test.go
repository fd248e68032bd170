package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t,
		"pgx5://u:p@localhost:5432/laundromat?sslmode=disable",
		migrateURL("postgres://u:p@localhost:5432/laundromat?sslmode=disable"))

	// Non-postgres URLs pass through untouched.
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestRollbackMigrations_RejectsNonPositiveSteps(t *testing.T) {
	err := RollbackMigrations("postgres://u:p@localhost/db", "file://migrations", 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))

	err = RollbackMigrations("postgres://u:p@localhost/db", "file://migrations", -2)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))
}

func TestRunMigrations_BadSourcePath(t *testing.T) {
	err := RunMigrations("postgres://u:p@localhost/db", "file://does/not/exist")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDatabaseError))
}
