package testkit

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver registration
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresModule is the rate store used by integration tests: a container, or
// an external database when GOLDRATE_TEST_PG_DSN is set.
type PostgresModule struct {
	container testcontainers.Container
	dsn       string
	dbName    string
}

// DSN returns the connection string for the rate store.
func (p *PostgresModule) DSN() string { return p.dsn }

// DBName is the per-run database name, empty for an external DSN.
func (p *PostgresModule) DBName() string { return p.dbName }

// Open returns a pgx-backed pool that has answered a ping.
func (p *PostgresModule) Open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", p.dsn)
	if err != nil {
		return nil, fmt.Errorf("open rate store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping rate store: %w", err)
	}
	return db, nil
}

// Terminate stops the container; external databases are left alone.
func (p *PostgresModule) Terminate(ctx context.Context) error {
	if p.container == nil {
		return nil
	}
	return p.container.Terminate(ctx)
}

// StartPostgres starts a container with a fresh database named after
// cfg.PGDBPrefix, or wraps cfg.PGDSN.
func StartPostgres(ctx context.Context, cfg *Config) (*PostgresModule, error) {
	if cfg.PGDSN != "" {
		return &PostgresModule{dsn: cfg.PGDSN}, nil
	}

	dbName := randomDBName(cfg.PGDBPrefix)
	ctr, err := postgres.Run(ctx,
		cfg.PGImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername("goldrate"),
		postgres.WithPassword("goldrate"),
		testcontainers.WithWaitStrategyAndDeadline(cfg.StartupTimeout,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("get postgres connection string: %w", err)
	}

	return &PostgresModule{
		container: ctr,
		dsn:       connStr,
		dbName:    dbName,
	}, nil
}

// randomDBName returns prefix + "_" + 8 hex chars, e.g. "goldrate_a1b2c3d4".
func randomDBName(prefix string) string {
	if prefix == "" {
		prefix = "goldrate"
	}
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return prefix + "_fallback"
	}
	return prefix + "_" + hex.EncodeToString(b)
}
