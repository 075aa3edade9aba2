package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultSlots, cfg.Booking.Slots)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
	assert.Equal(t, 10, cfg.Booking.MaxCodeAttempts)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, AuthModeHeader, cfg.Auth.Mode)
	assert.Equal(t, EventsDriverLog, cfg.Events.Driver)
}

func TestLoad_SampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)

	assert.Len(t, cfg.Booking.Slots, 8)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
password = "from-file"

[auth]
mode = "jwt"
jwt_secret = "file-secret"
`)
	t.Setenv("BOOKING_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKING_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("BOOKING_BOOKING_MAX_CODE_ATTEMPTS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Booking.MaxCodeAttempts)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_BrokenToml(t *testing.T) {
	path := writeConfig(t, "[server\nhttp_port = ")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrParseConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty grid", func(c *Config) { c.Booking.Slots = nil }},
		{"slot not on the hour", func(c *Config) { c.Booking.Slots = []string{"10:30"} }},
		{"slot malformed", func(c *Config) { c.Booking.Slots = []string{"25:00"} }},
		{"duplicate slot", func(c *Config) { c.Booking.Slots = []string{"10:00", "10:00"} }},
		{"bad timezone", func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{"zero code attempts", func(c *Config) { c.Booking.MaxCodeAttempts = 0 }},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"jwt without secret", func(c *Config) { c.Auth.Mode = AuthModeJWT }},
		{"unknown auth", func(c *Config) { c.Auth.Mode = "basic" }},
		{"rabbitmq without url", func(c *Config) {
			c.Events.Driver = EventsDriverRabbitMQ
			c.Events.RabbitMQURL = ""
		}},
		{"unknown events driver", func(c *Config) { c.Events.Driver = "kafka" }},
		{"cache without ttl", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.TTL = 0
		}},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "bookings", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bookings sslmode=disable", cfg.DSN())
}
