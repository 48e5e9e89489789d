package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	t.Parallel()

	ups, err := fs.Glob(Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Migrations, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestNewMigratorRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewMigrator("not-a-database://", Migrations)
	assert.Error(t, err)
}
