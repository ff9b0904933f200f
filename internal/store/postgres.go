package store

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/vocdata/internal/config"
	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres writes frames into PostgreSQL using the COPY protocol.
type Postgres struct {
	db    TxStarter
	close func()
}

// OpenPostgres connects a pool configured from cfg and verifies the connection.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{db: pool, close: pool.Close}, nil
}

// NewPostgres wraps an existing connection or pool. Close is a no-op.
func NewPostgres(db TxStarter) *Postgres {
	return &Postgres{db: db}
}

// Write appends the rows of f to table name in a single transaction.
func (p *Postgres) Write(ctx context.Context, name string, f *frame.Frame, loadID uuid.UUID) (int64, error) {
	ddl, err := createTableSQL(name, f, quotePostgres)
	if err != nil {
		return 0, err
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create table %s: %w", name, err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{name}, copyColumns(f.Columns), newCopySource(loadID.String(), f.Rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	logging.FromContext(ctx).Debug("table written", "sink", "postgres", "table", name, "rows", n)
	return n, nil
}

// Close releases the pool opened by OpenPostgres.
func (p *Postgres) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

func quotePostgres(s string) string {
	return pgx.Identifier{s}.Sanitize()
}

func copyColumns(columns []string) []string {
	out := make([]string, 0, len(columns)+1)
	out = append(out, LoadIDColumn)
	return append(out, columns...)
}

// copySource feeds frame rows to CopyFrom.
type copySource struct {
	loadID string
	rows   [][]string
	idx    int
}

func newCopySource(loadID string, rows [][]string) *copySource {
	return &copySource{loadID: loadID, rows: rows, idx: -1}
}

func (s *copySource) Next() bool {
	s.idx++
	return s.idx < len(s.rows)
}

func (s *copySource) Values() ([]any, error) {
	return rowValues(s.loadID, s.rows[s.idx]), nil
}

func (s *copySource) Err() error { return nil }
