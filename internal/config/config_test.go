package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDRESS", "MEMORY_STORE", "MONGO_DB", "JWT_EXPIRATION", "ALLOWED_ORIGINS", "REDIS_URI", "WORKER_ADDRESS", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.False(t, cfg.MemoryStore)
	assert.Equal(t, "dicoslang", cfg.MongoDatabase)
	assert.Empty(t, cfg.RedisURI)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "127.0.0.1:8081", cfg.WorkerAddress)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("MEMORY_STORE", "true")
	t.Setenv("MONGO_DB", "dicoslang_test")
	t.Setenv("MONGO_TRANSACTIONS", "1")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.dicoslang.fr, http://localhost:3000,")
	t.Setenv("REDIS_URI", "redis://localhost:6379/0")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.ServerAddress)
	assert.True(t, cfg.MemoryStore)
	assert.Equal(t, "dicoslang_test", cfg.MongoDatabase)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://admin.dicoslang.fr", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
}

func TestValidateJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default secret with mongo", Config{JWTSecret: DefaultJWTSecret}, true},
		{"empty secret with mongo", Config{}, true},
		{"default secret in memory", Config{JWTSecret: DefaultJWTSecret, MemoryStore: true}, false},
		{"custom secret", Config{JWTSecret: "s3cr3t-from-vault"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDefaultJWTSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetters(t *testing.T) {
	t.Setenv("CFG_BOOL", "maybe")
	assert.True(t, getBool("CFG_BOOL", true))

	t.Setenv("CFG_DURATION", "-5s")
	assert.Equal(t, time.Second, getDuration("CFG_DURATION", time.Second))

	t.Setenv("CFG_LIST", "  ")
	assert.Equal(t, []string{"a"}, getList("CFG_LIST", []string{"a"}))
}
