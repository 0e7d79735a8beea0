package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/db"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
