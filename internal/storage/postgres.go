package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS contracts (
	id              BIGSERIAL PRIMARY KEY,
	contract_number VARCHAR(50)  NOT NULL UNIQUE,
	student_name    VARCHAR(255) NOT NULL,
	phone           VARCHAR(50)  NOT NULL,
	age             VARCHAR(10)  NOT NULL,
	course          VARCHAR(50)  NOT NULL,
	format          VARCHAR(50)  NOT NULL DEFAULT 'Online',
	status          VARCHAR(50)  NOT NULL DEFAULT 'signed',
	created_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

// PostgresStore persists contracts in Postgres through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the database, verifies the connection and
// ensures the contracts table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = 3 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure contracts table: %w", err)
	}

	log.Print("[INFO] postgres store initialized")
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

const selectColumns = "id, contract_number, student_name, phone, age, course, format, status, created_at"

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	err := row.Scan(&c.ID, &c.ContractNumber, &c.StudentName, &c.Phone, &c.Age, &c.Course, &c.Format, &c.Status, &c.CreatedAt)
	return c, err
}

// All returns every contract, newest first.
func (s *PostgresStore) All(ctx context.Context) ([]Contract, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+selectColumns+" FROM contracts ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var all []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}
	return all, nil
}

// ByID returns one contract or ErrNotFound.
func (s *PostgresStore) ByID(ctx context.Context, id int64) (Contract, error) {
	c, err := scanContract(s.pool.QueryRow(ctx, "SELECT "+selectColumns+" FROM contracts WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	if err != nil {
		return Contract{}, fmt.Errorf("failed to load contract %d: %w", id, err)
	}
	return c, nil
}

// Create assigns the next contract number and inserts the record. Number
// assignment and insert run in one transaction so concurrent creations get
// distinct sequence values.
func (s *PostgresStore) Create(ctx context.Context, nc NewContract) (Contract, error) {
	nc.applyDefaults()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Contract{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM contracts").Scan(&count); err != nil {
		return Contract{}, fmt.Errorf("failed to count contracts: %w", err)
	}
	number := contractNumber(time.Now().Year(), count+1)

	c, err := scanContract(tx.QueryRow(ctx,
		`INSERT INTO contracts (contract_number, student_name, phone, age, course, format)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+selectColumns,
		number, nc.StudentName, nc.Phone, nc.Age, nc.Course, nc.Format,
	))
	if err != nil {
		return Contract{}, fmt.Errorf("failed to insert contract: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Contract{}, fmt.Errorf("failed to commit contract: %w", err)
	}
	return c, nil
}

// Delete removes a contract or returns ErrNotFound.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM contracts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete contract %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
