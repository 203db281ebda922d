package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "striderquest", cfg.DBName)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "quest",
	}

	assert.Equal(t, "postgres://u:p@db:5433/quest?sslmode=disable", cfg.GetDBConnString())
}
