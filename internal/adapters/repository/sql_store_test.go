package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestSQLStore_SQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)
	require.NoError(t, store.Ping(context.Background()))

	runStoreContract(t, store)
}

func TestSQLStore_SQLiteMigrationIsIdempotent(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, Migrate(db.DB, DialectSQLite))
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(db.DB, "oracle"))
}

func TestSQLStore_Postgres(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	// lib/pq here, pgx in production: the store must not depend on the driver.
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Skipf("Skipping Postgres integration test: %v", err)
	}
	defer db.Close()

	require.NoError(t, Migrate(db.DB, DialectPostgres))
	runStoreContract(t, NewSQLStore(db))
}
