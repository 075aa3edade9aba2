package config

// DefaultSlots сетка по умолчанию: восемь часовых слотов, последний 17:00-18:00
var DefaultSlots = []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

const (
	DefaultTimezone        = "UTC"
	DefaultMaxCodeAttempts = 10
	DefaultMetricsPath     = "/metrics"
	DefaultServiceName     = "provider-booking"
)

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	slots := make([]string, len(DefaultSlots))
	copy(slots, DefaultSlots)

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "provider_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        DefaultMetricsPath,
			ServiceName: DefaultServiceName,
		},
		UserService: UserServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Booking: BookingConfig{
			Slots:           slots,
			Timezone:        DefaultTimezone,
			MaxCodeAttempts: DefaultMaxCodeAttempts,
		},
		Auth: AuthConfig{Mode: AuthModeHeader},
		Events: EventsConfig{
			Driver:        EventsDriverLog,
			Exchange:      "bookings",
			ChannelPrefix: "bookings",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Cache: CacheConfig{Enabled: false, TTL: 30},
	}
}
