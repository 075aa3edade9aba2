package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/get_booking"
	getBookingConfigHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/get_booking_config"
	healthHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/health"
	listMyBookingsHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/list_my_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-ProviderBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ProviderBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ProviderBooking/internal/config"
	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	slotsCache "github.com/m04kA/SMC-ProviderBooking/internal/infra/cache/slots"
	"github.com/m04kA/SMC-ProviderBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-ProviderBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ProviderBooking/internal/infra/storage/memory"
	userServiceClient "github.com/m04kA/SMC-ProviderBooking/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-ProviderBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-ProviderBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ProviderBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ProviderBooking/pkg/bookingcode"
	"github.com/m04kA/SMC-ProviderBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProviderBooking/pkg/logger"
	"github.com/m04kA/SMC-ProviderBooking/pkg/metrics"
	"github.com/m04kA/SMC-ProviderBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// bookingStorage контракт хранилища, общий для postgres и memory
type bookingStorage interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetByActor(ctx context.Context, filter domain.ActorBookingsFilter) ([]*domain.Booking, error)
	GetActiveSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeString, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
}

// transactionManager менеджер транзакций для postgres и memory
type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// eventPublisher драйвер публикации событий
type eventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
	Close() error
}

// availabilityCache кэш свободных слотов
type availabilityCache interface {
	Get(ctx context.Context, providerID int64, date time.Time) (slotsCache.Snapshot, error)
	Set(ctx context.Context, providerID int64, date time.Time, version int64, slots []types.TimeString) error
	Invalidate(ctx context.Context, providerID int64, date time.Time) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ProviderBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Сетка слотов и часовой пояс уже проверены в config.Validate
	grid, err := domain.NewSlotGrid(cfg.Booking.Slots)
	if err != nil {
		log.Fatal("Invalid slot grid: %v", err)
	}
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены). nil - сбор выключен
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		storage   bookingStorage
		txMgr     transactionManager
		dbPinger  healthHandler.Pinger
		closeDBFn = func() {}
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		storage = memory.NewRepository()
		txMgr = memory.NewTxManager()
		log.Warn("Using in-memory storage: bookings are lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		closeDBFn = func() { _ = db.Close() }

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// Обертка с метриками; при выключенных метриках только проксирует вызовы
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

		storage = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		dbPinger = wrappedDB
	}
	defer closeDBFn()

	// Redis нужен кэшу слотов и драйверу событий redis
	var redisClient *redis.Client
	if cfg.Cache.Enabled || cfg.Events.Driver == config.EventsDriverRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis (addr=%s)", cfg.Redis.Addr)
		}
		cancel()
	}

	// Кэш свободных слотов
	var cache availabilityCache = slotsCache.NopCache{}
	if cfg.Cache.Enabled {
		cache = slotsCache.NewRedisCache(redisClient, time.Duration(cfg.Cache.TTL)*time.Second)
		log.Info("Slots cache enabled (ttl=%ds)", cfg.Cache.TTL)
	}

	// Публикация событий
	var publisher eventPublisher
	switch cfg.Events.Driver {
	case config.EventsDriverRabbitMQ:
		publisher, err = events.NewRabbitMQPublisher(cfg.Events.RabbitMQURL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to initialize RabbitMQ publisher: %v", err)
		}
	case config.EventsDriverRedis:
		publisher = events.NewRedisPublisher(redisClient, cfg.Events.ChannelPrefix, log)
	default:
		publisher = events.NewLogPublisher(log)
	}
	defer publisher.Close()
	log.Info("Events driver: %s", cfg.Events.Driver)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		storage,
		txMgr,
		publisher,
		cache,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		storage,
		userClient,
		bookingcode.New(),
		publisher,
		cache,
		metricsCollector,
		createBookingUC.Settings{
			Grid:            grid,
			Location:        location,
			MaxCodeAttempts: cfg.Booking.MaxCodeAttempts,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		storage,
		grid,
		cache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookingConfig := getBookingConfigHandler.NewHandler(grid, location.String(), log)
	listMyBookings := listMyBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(dbPinger, log)

	// Аутентификация
	authMiddleware := middleware.Auth
	if cfg.Auth.Mode == config.AuthModeJWT {
		authMiddleware = middleware.JWTAuth(cfg.Auth.JWTSecret)
	}
	log.Info("Auth mode: %s", cfg.Auth.Mode)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты исполнителя на дату
	api.HandleFunc("/bookings/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сетка слотов и часовой пояс
	api.HandleFunc("/bookings/config", getBookingConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	// Статические пути регистрируются раньше {bookingCode}
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/mine", listMyBookings.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/bookings/{bookingCode:[A-Z0-9]{8}}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingCode:[A-Z0-9]{8}}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingCode:[A-Z0-9]{8}}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
