package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calmacil/dartscore/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, through the same open path production uses.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
