package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		cfg := &DatabaseConfig{
			Type: "postgres", Host: "db", Port: 5432,
			User: "console", Password: "pw", DBName: "prefs", SSLMode: "disable",
		}
		assert.Equal(t, "postgres://console:pw@db:5432/prefs?sslmode=disable", cfg.GetDSN())
	})

	t.Run("mysql", func(t *testing.T) {
		cfg := &DatabaseConfig{
			Type: "mysql", Host: "db", Port: 3306,
			User: "console", Password: "pw", DBName: "prefs",
		}
		assert.Equal(t, "console:pw@tcp(db:3306)/prefs?charset=utf8mb4&parseTime=True&loc=Local", cfg.GetDSN())
	})

	t.Run("sqlite file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "prefs.db")
		cfg := &DatabaseConfig{Type: "sqlite", DBName: path}
		assert.Equal(t, path, cfg.GetDSN())
		assert.DirExists(t, filepath.Dir(path))
	})

	t.Run("sqlite memory", func(t *testing.T) {
		cfg := &DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
		assert.Equal(t, ":memory:", cfg.GetDSN())
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &DatabaseConfig{Type: "oracle"}
		assert.Equal(t, "", cfg.GetDSN())
	})
}

func TestConsoleDefaults(t *testing.T) {
	var cfg ConsoleConfig
	cfg.setDefaults()

	assert.Equal(t, 5300, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Session.Type)
	assert.NotZero(t, cfg.Upstream.Timeout)
	assert.NotZero(t, cfg.Session.TTL)
	assert.NotZero(t, cfg.Identity.CacheTTL)
	assert.NotZero(t, cfg.Backup.CheckInterval)
}
