//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	testDB  *sql.DB
	testRDB *redis.Client
)

// resetTestData truncates the gold_rates table and flushes the current Redis database.
func resetTestData(t *testing.T) {
	t.Helper()

	_, err := testDB.ExecContext(context.Background(), "TRUNCATE TABLE gold_rates")
	if err != nil {
		t.Fatalf("failed to truncate gold_rates table: %v", err)
	}

	if err := testRDB.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}

// countRates returns the number of stored rate records.
func countRates(t *testing.T) int {
	t.Helper()
	var n int
	if err := testDB.QueryRowContext(testContext(t), "SELECT COUNT(*) FROM gold_rates").Scan(&n); err != nil {
		t.Fatalf("count gold_rates: %v", err)
	}
	return n
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
