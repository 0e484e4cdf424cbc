package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() Config {
	return Config{
		Port:          "8080",
		StoreBackend:  BackendMemory,
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		RateLimit:     100,
		RateWindow:    time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{
			name:   "valid memory config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.StoreBackend = "mongo" },
			errorString: "invalid store backend 'mongo'",
		},
		{
			name:        "sqlite without path",
			mutate:      func(c *Config) { c.StoreBackend = BackendSQLite; c.SQLitePath = "" },
			errorString: "SQLITE_PATH cannot be empty",
		},
		{
			name:        "redis backend without host",
			mutate:      func(c *Config) { c.StoreBackend = BackendRedis },
			errorString: "REDIS_HOST is required",
		},
		{
			name: "postgres backend without database",
			mutate: func(c *Config) {
				c.StoreBackend = BackendPostgres
				c.DBHost = "localhost"
				c.DBUser = "kanso"
			},
			errorString: "DB_HOST, DB_NAME and DB_USER are required",
		},
		{
			name:        "short secret",
			mutate:      func(c *Config) { c.SessionSecret = "short" },
			errorString: "SESSION_SECRET must be at least 32 characters long",
		},
		{
			name:        "tiny session ttl",
			mutate:      func(c *Config) { c.SessionTTL = time.Second },
			errorString: "invalid session ttl 1s",
		},
		{
			name:        "negative rate limit",
			mutate:      func(c *Config) { c.RateLimit = -1 },
			errorString: "invalid rate limit -1",
		},
		{
			name:   "rate limiting disabled ignores window",
			mutate: func(c *Config) { c.RateLimit = 0; c.RateWindow = 0 },
		},
		{
			name:        "admin email without usable password",
			mutate:      func(c *Config) { c.AdminEmail = "admin@campus.edu"; c.AdminPassword = "short" },
			errorString: "ADMIN_PASSWORD must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{Port: "x", StoreBackend: "nope"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid store backend")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestConfig_ValidateCreatesSQLiteDir(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "wellness.db")

	assert.NoError(t, cfg.Validate())
	assert.DirExists(t, filepath.Dir(cfg.SQLitePath))
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("REDIS_HOST", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 100, cfg.RateLimit, "unparsable values fall back to defaults")
	assert.False(t, cfg.RedisEnabled())
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := Config{DBUser: "kanso_user", DBPassword: "secret", DBHost: "db", DBPort: "5432", DBName: "kanso_db"}
	assert.Equal(t, "postgres://kanso_user:secret@db:5432/kanso_db?sslmode=disable", cfg.PostgresDSN())
}
