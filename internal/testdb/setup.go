package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/flashloop/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection and migration work during setup.
const TestTimeout = 30 * time.Second

// SetupTestDatabase connects to the configured test database, migrates it to
// a clean schema and resets it again when the test finishes. It skips the
// test when no database URL is set.
func SetupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		t.Skip("no test database configured; set FLASH_TEST_DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dsn)
	require.NoError(t, err, "connect to test database")

	require.NoError(t, postgres.Migrate(ctx, db, "reset", nil), "reset schema")
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "apply migrations")

	t.Cleanup(func() {
		if err := postgres.Migrate(context.Background(), db, "reset", nil); err != nil {
			t.Logf("reset schema: %v", err)
		}
		_ = db.Close()
	})
	return db
}
