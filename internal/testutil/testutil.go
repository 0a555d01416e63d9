// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"medchat/internal/db"
	"medchat/internal/responder"
)

// TestDB creates a test database connection and returns a cleanup function.
// The test is skipped when TEST_DATABASE_URL is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM reply_outcomes")
}

// Logger returns a logger that writes through t.
func Logger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// FirstPick is a picker that always chooses the first pool entry.
func FirstPick(int) int { return 0 }

// Responder returns the built-in responder with deterministic picks.
func Responder() *responder.Responder {
	return responder.Default(responder.WithPicker(FirstPick))
}
