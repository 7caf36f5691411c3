package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicateEmail signals the email already holds a waitlist spot.
	ErrDuplicateEmail = errors.New("waitlist: email already exists")
	// ErrTableMissing signals the waitlist table has not been provisioned.
	ErrTableMissing = errors.New("waitlist: table does not exist")
)

// StoreError is any other error the store itself reported. Keeping it
// distinct from transport-level failures matters: the service treats a
// store-reported error as a real failure, while a transport failure follows
// the demo-mode path.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("waitlist: store error %s: %s", e.Code, e.Message)
}

// Repository handles data access for waitlist signups.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) (Record, error)
	Ready(ctx context.Context) error
}

// InsertParams contains write parameters for a waitlist row. Status and
// CreatedAt are filled by the service, never by user input.
type InsertParams struct {
	ID        string
	FullName  string
	Email     string
	Username  string
	Status    Status
	CreatedAt time.Time
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed waitlist repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert attempts exactly one row insert. Postgres error codes are mapped
// here so callers never inspect SQLSTATEs: 23505 (unique violation) becomes
// ErrDuplicateEmail, 42P01 (undefined table) becomes ErrTableMissing, and any
// other store-reported error surfaces as *StoreError.
func (r *PGRepository) Insert(ctx context.Context, params InsertParams) (Record, error) {
	const insertSQL = `
		INSERT INTO waitlist (id, full_name, email, username, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, full_name, email, username, status, created_at
	`

	var rec Record
	err := r.pool.QueryRow(ctx, insertSQL,
		params.ID,
		params.FullName,
		params.Email,
		params.Username,
		params.Status,
		params.CreatedAt,
	).Scan(&rec.ID, &rec.FullName, &rec.Email, &rec.Username, &rec.Status, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Record{}, ErrDuplicateEmail
			case "42P01":
				return Record{}, ErrTableMissing
			}
			return Record{}, &StoreError{Code: pgErr.Code, Message: pgErr.Message}
		}
		return Record{}, fmt.Errorf("waitlist: insert: %w", err)
	}

	return rec, nil
}

// Ready probes the waitlist table so operators hear about a missing schema
// before the first signup does. A missing table maps to ErrTableMissing;
// an empty table is fine.
func (r *PGRepository) Ready(ctx context.Context) error {
	rows, err := r.pool.Query(ctx, `SELECT id FROM waitlist LIMIT 1`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
			return ErrTableMissing
		}
		return fmt.Errorf("waitlist: readiness probe: %w", err)
	}
	rows.Close()
	return rows.Err()
}
