package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openlarder/mealmatch/internal/models"
)

// Database is the subset of pgxpool.Pool the repository needs. It is
// satisfied by pgxmock as well, which keeps the query code unit-testable.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrNotFound is returned when a donation with the requested id does not exist.
var ErrNotFound = errors.New("donation not found")

type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the donation repository as consumed by the matching engine:
// list the eligible pool, fetch one record, and cache resolved coordinates
// back onto a record. UpdateCoordinates is best-effort from the engine's
// point of view; its failures are swallowed by the resolver.
type Interface interface {
	ListAvailable(ctx context.Context) ([]models.Donation, error)
	GetByID(ctx context.Context, donationID int64) (*models.Donation, error)
	UpdateCoordinates(ctx context.Context, donationID int64, coords models.Coordinates) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase opens a pgx connection pool for the donations database and
// verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
