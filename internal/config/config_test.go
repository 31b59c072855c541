package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "SESSION_BACKEND", "SESSION_SECRET", "AUTH_BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "tickets.db", cfg.DBPath)
	assert.Equal(t, "cookie", cfg.SessionBackend)
	assert.Empty(t, cfg.SessionSecret)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("AUTH_BCRYPT_COST", "6")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 6, cfg.BcryptCost)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg := Load()

	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}
