package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sahabhq/console/pkg/trace"
)

type (
	// ConsoleConfig is the root configuration for the admin console service
	ConsoleConfig struct {
		Server   ServerConfig   `yaml:"server"`
		Upstream UpstreamConfig `yaml:"upstream"`
		Session  SessionConfig  `yaml:"session"`
		Database DatabaseConfig `yaml:"database"`
		JWT      JWTConfig      `yaml:"jwt"`
		Identity IdentityConfig `yaml:"identity"`
		Backup   BackupConfig   `yaml:"backup"`
		Logger   LoggerConfig   `yaml:"logger"`
		I18n     I18nConfig     `yaml:"i18n"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		Tracing  trace.Config   `yaml:"tracing"`
	}

	// ServerConfig represents the HTTP server configuration
	ServerConfig struct {
		Port int         `yaml:"port"`
		Mode string      `yaml:"mode"` // debug, release, test
		PID  string      `yaml:"pid"`
		CORS *CORSConfig `yaml:"cors,omitempty"`
	}

	// CORSConfig represents CORS configuration for the browser dashboard
	CORSConfig struct {
		AllowOrigins     []string `yaml:"allowOrigins"`
		AllowMethods     []string `yaml:"allowMethods"`
		AllowHeaders     []string `yaml:"allowHeaders"`
		ExposeHeaders    []string `yaml:"exposeHeaders"`
		AllowCredentials bool     `yaml:"allowCredentials"`
	}

	// UpstreamConfig represents the platform API the console talks to
	UpstreamConfig struct {
		BaseURL string            `yaml:"base_url"`
		APIKey  string            `yaml:"api_key"` // optional X-Api-Key sent on every call
		Timeout time.Duration     `yaml:"timeout"`
		Service ServiceAuthConfig `yaml:"service"`
	}

	// ServiceAuthConfig configures the client-credentials token source used
	// for unattended calls (scheduled backups). When TokenURL is empty the
	// static APIKey is used instead.
	ServiceAuthConfig struct {
		TokenURL     string   `yaml:"token_url"`
		ClientID     string   `yaml:"client_id"`
		ClientSecret string   `yaml:"client_secret"`
		Scopes       []string `yaml:"scopes"`
	}

	// IdentityConfig controls the per-session identity cache
	IdentityConfig struct {
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		CacheSize int           `yaml:"cache_size"`
	}

	// BackupConfig controls the scheduled backup loop
	BackupConfig struct {
		CheckInterval time.Duration `yaml:"check_interval"`
	}

	// MetricsConfig represents the Prometheus metrics configuration
	MetricsConfig struct {
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

// setDefaults fills zero values with working defaults.
func (c *ConsoleConfig) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5300
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 15 * time.Second
	}
	if c.Session.Type == "" {
		c.Session.Type = "memory"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Identity.CacheTTL <= 0 {
		c.Identity.CacheTTL = 5 * time.Minute
	}
	if c.Identity.CacheSize <= 0 {
		c.Identity.CacheSize = 1024
	}
	if c.Backup.CheckInterval <= 0 {
		c.Backup.CheckInterval = time.Minute
	}
	if c.I18n.DefaultLang == "" {
		c.I18n.DefaultLang = "ar"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "console"
	}
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite":
		// For SQLite, DBName is the file path. Ensure its directory
		// exists unless it is an in-memory database.
		if c.DBName != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
				panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
			}
		}
		return c.DBName
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
