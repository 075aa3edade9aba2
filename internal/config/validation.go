package config

import (
	"fmt"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	AuthModeHeader = "header"
	AuthModeJWT    = "jwt"

	EventsDriverLog      = "log"
	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverRedis    = "redis"
)

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if err := validateSlots(c.Booking.Slots); err != nil {
		return err
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.MaxCodeAttempts <= 0 {
		return fmt.Errorf("%w: booking.max_code_attempts must be positive", ErrInvalidConfig)
	}

	switch c.Auth.Mode {
	case AuthModeHeader:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("%w: auth.jwt_secret is required in jwt mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown auth.mode %q", ErrInvalidConfig, c.Auth.Mode)
	}

	switch c.Events.Driver {
	case EventsDriverLog:
	case EventsDriverRabbitMQ:
		if c.Events.RabbitMQURL == "" {
			return fmt.Errorf("%w: events.rabbitmq_url is required for rabbitmq driver", ErrInvalidConfig)
		}
	case EventsDriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis events driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if c.Cache.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when cache is enabled", ErrInvalidConfig)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("%w: cache.ttl must be positive", ErrInvalidConfig)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}

// validateSlots проверяет сетку: непустая, формат HH:MM, целые часы, без повторов
func validateSlots(slots []string) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: booking.slots must not be empty", ErrInvalidConfig)
	}

	seen := make(map[types.TimeString]struct{}, len(slots))
	for _, s := range slots {
		slot, err := types.NewTimeStringFromString(s)
		if err != nil {
			return fmt.Errorf("%w: booking.slots: %q is not HH:MM", ErrInvalidConfig, s)
		}
		if !slot.IsOnTheHour() {
			return fmt.Errorf("%w: booking.slots: %q is not on the hour", ErrInvalidConfig, s)
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("%w: booking.slots: %q is duplicated", ErrInvalidConfig, s)
		}
		seen[slot] = struct{}{}
	}

	return nil
}
