package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих значения из файла
const EnvPrefix = "BOOKING"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service" envconfig:"USER_SERVICE"`
	Booking     BookingConfig     `toml:"booking"`
	Auth        AuthConfig        `toml:"auth"`
	Events      EventsConfig      `toml:"events"`
	Redis       RedisConfig       `toml:"redis"`
	Cache       CacheConfig       `toml:"cache"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`         // секунды
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`       // секунды
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`         // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type BookingConfig struct {
	// Slots сетка слотов "HH:MM", только целые часы
	Slots []string `toml:"slots"`
	// Timezone часовой пояс для определения "сегодня" (IANA)
	Timezone string `toml:"timezone"`
	// MaxCodeAttempts максимум попыток сгенерировать уникальный код
	MaxCodeAttempts int `toml:"max_code_attempts" envconfig:"MAX_CODE_ATTEMPTS"`
}

// Location возвращает часовой пояс бронирований
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type AuthConfig struct {
	Mode      string `toml:"mode"` // header | jwt
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
}

type EventsConfig struct {
	Driver        string `toml:"driver"` // log | rabbitmq | redis
	RabbitMQURL   string `toml:"rabbitmq_url" envconfig:"RABBITMQ_URL"`
	Exchange      string `toml:"exchange"`
	ChannelPrefix string `toml:"channel_prefix" envconfig:"CHANNEL_PREFIX"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	TTL     int  `toml:"ttl"` // секунды
}

// Load читает конфигурацию из TOML-файла, применяет переменные окружения
// с префиксом BOOKING и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigNotFound, path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
