package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rate is a single published gold rate. Rows are never updated or deleted.
type Rate struct {
	ID        string
	Buy       decimal.Decimal
	Sell      decimal.Decimal
	UpdatedAt time.Time
}

// RateRepository defines DB operations for gold rates.
type RateRepository interface {
	Insert(ctx context.Context, buy, sell decimal.Decimal, at time.Time) (*Rate, error)
	GetLatest(ctx context.Context) (*Rate, error)
	ExistsBetween(ctx context.Context, from, to time.Time) (bool, error)
}

// PostgresRateRepository is an implementation of RateRepository using PostgreSQL.
type PostgresRateRepository struct {
	db *sql.DB
}

// NewPostgresRateRepository creates a new PostgresRateRepository.
func NewPostgresRateRepository(db *sql.DB) RateRepository {
	return &PostgresRateRepository{db: db}
}

// Insert appends a new rate record stamped with at and returns it.
func (r *PostgresRateRepository) Insert(ctx context.Context, buy, sell decimal.Decimal, at time.Time) (*Rate, error) {
	rate := &Rate{
		ID:        uuid.New().String(),
		Buy:       buy,
		Sell:      sell,
		UpdatedAt: at.UTC(),
	}

	query := `INSERT INTO gold_rates (id, buy, sell, updated_at)
              VALUES ($1::uuid, $2::numeric, $3::numeric, $4)`

	if _, err := r.db.ExecContext(ctx, query, rate.ID, rate.Buy, rate.Sell, rate.UpdatedAt); err != nil {
		return nil, err
	}
	return rate, nil
}

// GetLatest returns the most recently stamped record, or (nil, nil) when the table is empty.
func (r *PostgresRateRepository) GetLatest(ctx context.Context) (*Rate, error) {
	query := `SELECT id::text, buy, sell, updated_at
              FROM gold_rates
              ORDER BY updated_at DESC
              LIMIT 1`

	var rate Rate
	err := r.db.QueryRowContext(ctx, query).Scan(&rate.ID, &rate.Buy, &rate.Sell, &rate.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rate.UpdatedAt = rate.UpdatedAt.UTC()
	return &rate, nil
}

// ExistsBetween reports whether any record is stamped within [from, to].
func (r *PostgresRateRepository) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	query := `SELECT EXISTS (
                  SELECT 1 FROM gold_rates
                  WHERE updated_at >= $1 AND updated_at <= $2
              )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
