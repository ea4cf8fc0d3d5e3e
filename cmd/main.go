package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_availability"
	getCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_calendar"
	getRulesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_rules"
	updateRulesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_rules"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	bookingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/bookings"
	rulesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/rules"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/ruleset"
	getCalendarUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
	validateBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории
	ruleRepository := rulesRepo.NewRepository(db)
	settingsRepository := settingsRepo.NewRepository(db)
	bookingsRepository := bookingsRepo.NewRepository(db)

	// Инициализируем сервис наборов правил
	rulesetSvc := ruleset.NewService(ruleRepository, settingsRepository, log)
	if cfg.Metrics.Enabled {
		rulesetSvc = rulesetSvc.WithMetrics(metricsCollector)
	}

	// Подключаем кэш снапшотов правил (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		ruleCache := cache.NewRuleCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		rulesetSvc = rulesetSvc.WithCache(ruleCache)
		log.Info("Rule snapshot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Дефолты движка из конфигурации
	engineCfg := domain.DefaultEngineConfig()
	if cfg.Engine.DefaultMinNights > 0 {
		engineCfg.DefaultMinNights = cfg.Engine.DefaultMinNights
	}
	engineCfg.DefaultMaxNights = cfg.Engine.DefaultMaxNights
	engineCfg.DefaultLockout = cfg.Engine.DefaultLockout

	// Инициализируем use cases
	validateBookingUseCase := validateBookingUC.NewUseCase(
		rulesetSvc,
		rulesetSvc,
		bookingsRepository,
		engineCfg,
		log,
	)
	if cfg.Metrics.Enabled {
		validateBookingUseCase = validateBookingUseCase.WithMetrics(metricsCollector)
	}

	getCalendarUseCase := getCalendarUC.NewUseCase(
		rulesetSvc,
		rulesetSvc,
		bookingsRepository,
		engineCfg,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(validateBookingUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getRules := getRulesHandler.NewHandler(rulesetSvc, log)
	updateRules := updateRulesHandler.NewHandler(rulesetSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка осуществимости бронирования на диапазон дат
	api.HandleFunc("/items/{itemId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Календарь доступности товара
	api.HandleFunc("/items/{itemId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Текущая конфигурация правил
	api.HandleFunc("/items/{itemId}/rules", getRules.HandleItem).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/rules", getRules.HandleResource).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Manager-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Замена конфигурации товара целиком
	protected.HandleFunc("/items/{itemId}/rules", updateRules.HandleItem).Methods(http.MethodPut)

	// Замена набора правил ресурса целиком
	protected.HandleFunc("/resources/{resourceId}/rules", updateRules.HandleResource).Methods(http.MethodPut)

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
