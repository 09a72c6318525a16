package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "ratings")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, "5432", cfg.DBPort)
	require.Equal(t, "nats://localhost:4222", cfg.NatsURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JWT_SECRET") // t.Setenv above restores it on cleanup

	_, err := Load()
	require.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := App{
		DBUser:     "app",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "ratings",
	}
	require.Equal(t, "postgres://app:secret@db:5432/ratings?sslmode=disable", cfg.DatabaseURL())
}
