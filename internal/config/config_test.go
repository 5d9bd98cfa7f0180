package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, CatalogSourceDir, cfg.Catalog.Source)
	assert.Equal(t, time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "rub", cfg.Payment.Currency)
	assert.Equal(t, "ru", cfg.I18n.DefaultLocale)
	assert.Equal(t, 20.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_METRICS", "false")
	t.Setenv("CATALOG_SOURCE", "s3")
	t.Setenv("CATALOG_S3_BUCKET", "catalog")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "15s")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("STORAGE_SESSION_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, CatalogSourceS3, cfg.Catalog.Source)
	assert.Equal(t, "catalog", cfg.Catalog.S3Bucket)
	assert.Equal(t, 15*time.Second, cfg.Catalog.RefreshInterval)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Storage.SessionTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "production",
			JWT:         JWTConfig{SecretKey: "prod-secret"},
			Storage:     StorageConfig{Driver: StoragePostgres},
			Database:    DatabaseConfig{Password: "secret"},
			Catalog:     CatalogConfig{Source: CatalogSourceDir},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"default jwt secret":  func(c *Config) { c.JWT.SecretKey = defaultJWTSecret },
		"unknown driver":      func(c *Config) { c.Storage.Driver = "mongo" },
		"missing db password": func(c *Config) { c.Database.Password = "" },
		"unknown source":      func(c *Config) { c.Catalog.Source = "ftp" },
		"s3 without bucket":   func(c *Config) { c.Catalog.Source = CatalogSourceS3 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "shop", Password: "pw", Database: "store", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=shop password=pw dbname=store sslmode=disable", db.DSN())
}
