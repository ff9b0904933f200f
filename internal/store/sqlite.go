package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/vocdata/internal/frame"
	"github.com/JonMunkholm/vocdata/internal/logging"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// SQLite writes frames into a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; concurrent exports queue on the pool.
	db.SetMaxOpenConns(1)

	return NewSQLite(db), nil
}

// NewSQLite wraps an open database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Write appends the rows of f to table name in a single transaction.
func (s *SQLite) Write(ctx context.Context, name string, f *frame.Frame, loadID uuid.UUID) (int64, error) {
	ddl, err := createTableSQL(name, f, quoteSQLite)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create table %s: %w", name, err)
	}

	insert := insertSQL(name, f.Columns)
	id := loadID.String()
	var n int64
	for i, row := range f.Rows {
		if _, err := tx.ExecContext(ctx, insert, rowValues(id, row)...); err != nil {
			return 0, fmt.Errorf("insert row %d into %s: %w", i, name, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	logging.FromContext(ctx).Debug("table written", "sink", "sqlite", "table", name, "rows", n)
	return n, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func insertSQL(name string, columns []string) string {
	quoted := make([]string, 0, len(columns)+1)
	quoted = append(quoted, quoteSQLite(LoadIDColumn))
	for _, c := range columns {
		quoted = append(quoted, quoteSQLite(c))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(quoted)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteSQLite(name), strings.Join(quoted, ", "), placeholders)
}
