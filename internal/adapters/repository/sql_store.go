package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var _ domain.DocumentStore = (*SQLStore)(nil)

// SQLStore keeps documents in the documents table of Postgres or SQLite.
// Queries are written with ? placeholders and rebound for the driver.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenPostgres connects through the pgx stdlib driver and applies the schema.
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(db.DB, DialectPostgres); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens the database file at path (":memory:" for a private
// in-memory database) and applies the schema.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := Migrate(db.DB, DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	query := s.db.Rebind(`SELECT data FROM documents WHERE owner = ? AND key = ?`)

	var data []byte
	if err := s.db.QueryRowContext(ctx, query, owner, key).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("document query failed: %w", err)
	}

	return data, nil
}

func (s *SQLStore) Put(ctx context.Context, owner, key string, data []byte) error {
	query := s.db.Rebind(`
        INSERT INTO documents (owner, key, data, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (owner, key)
        DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`)

	if _, err := s.db.ExecContext(ctx, query, owner, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("document upsert failed: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, owner, key string) error {
	query := s.db.Rebind(`DELETE FROM documents WHERE owner = ? AND key = ?`)

	if _, err := s.db.ExecContext(ctx, query, owner, key); err != nil {
		return fmt.Errorf("document delete failed: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
