package main

import (
	"context"
	"database/sql"
	"errors"
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

	cancelBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/create_booking"
	createExpenseHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/create_expense"
	createPriceRuleHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/create_price_rule"
	deleteBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/delete_booking"
	deleteExpenseHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/delete_expense"
	deletePriceRuleHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/delete_price_rule"
	getAdminBookingsHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_admin_bookings"
	getAvailableTimesHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_available_times"
	getBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_customer_bookings"
	getExpensesHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_expenses"
	getPriceRulesHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_price_rules"
	getPricingDefaultsHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_pricing_defaults"
	getStatisticsHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/get_statistics"
	updateBookingHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/update_booking"
	updatePricingDefaultsHandler "github.com/mrgoksal/Chilliwili/internal/api/handlers/update_pricing_defaults"
	"github.com/mrgoksal/Chilliwili/internal/api/middleware"
	"github.com/mrgoksal/Chilliwili/internal/config"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/internal/infra/events"
	"github.com/mrgoksal/Chilliwili/internal/infra/notify/telegram"
	bookingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/booking"
	customerRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/customer"
	expenseRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/expense"
	pricingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/pricing"
	"github.com/mrgoksal/Chilliwili/internal/scheduler"
	bookingsService "github.com/mrgoksal/Chilliwili/internal/service/bookings"
	expensesService "github.com/mrgoksal/Chilliwili/internal/service/expenses"
	pricingService "github.com/mrgoksal/Chilliwili/internal/service/pricing"
	createBookingUC "github.com/mrgoksal/Chilliwili/internal/usecase/create_booking"
	getAvailableTimesUC "github.com/mrgoksal/Chilliwili/internal/usecase/get_available_times"
	"github.com/mrgoksal/Chilliwili/pkg/logger"
	"github.com/mrgoksal/Chilliwili/pkg/metrics"
	"github.com/mrgoksal/Chilliwili/pkg/txmanager"
)

const telegramTimeout = 10 * time.Second

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

	log.Info("Starting Chilliwili booking service...")

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
	bookingRepository := bookingRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	pricingRepository := pricingRepo.NewRepository(db)
	expenseRepository := expenseRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Без базовых тарифов сервис не может посчитать ни одну бронь,
	// поэтому падаем сразу, а не на первом запросе
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if _, err := pricingRepository.GetDefaults(startupCtx); err != nil {
		startupCancel()
		if errors.Is(err, pricingRepo.ErrDefaultsNotFound) {
			log.Fatal("Pricing defaults are not configured, seed the pricing_defaults table first")
		}
		log.Fatal("Failed to load pricing defaults: %v", err)
	}
	startupCancel()
	log.Info("Pricing defaults loaded")

	// Движок доступности с часами работы площадки
	availEngine, err := engine.New(cfg.Venue.OpenHour, cfg.Venue.CloseHour)
	if err != nil {
		log.Fatal("Failed to initialize availability engine: %v", err)
	}
	log.Info("Operating hours: %02d:00 - %02d:00", cfg.Venue.OpenHour, cfg.Venue.CloseHour)

	// Клиент Telegram для уведомлений администраторам
	notifier := telegram.NewClient(
		cfg.Telegram.BotToken,
		cfg.Telegram.AdminChatIDs,
		telegramTimeout,
		log,
		metricsCollector,
	)
	if cfg.Telegram.BotToken == "" {
		log.Warn("Telegram bot token is empty, admin notifications disabled")
	}

	// Издатель событий (опционально)
	var eventsPublisher *events.Publisher
	if cfg.Events.Enabled {
		eventsPublisher, err = events.NewPublisher(cfg.Events.AMQPURL, log)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		defer eventsPublisher.Close()
		log.Info("Event publisher connected")
	}

	// Типизированный nil указатель в интерфейсе ломает проверку publisher == nil,
	// поэтому интерфейсные переменные заполняются только при включенных событиях
	var ucPublisher createBookingUC.EventPublisher
	var svcPublisher bookingsService.EventPublisher
	if eventsPublisher != nil {
		ucPublisher = eventsPublisher
		svcPublisher = eventsPublisher
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		customerRepository,
		pricingRepository,
		availEngine,
		txMgr,
		notifier,
		svcPublisher,
		log,
	)
	pricingSvc := pricingService.NewService(pricingRepository, log)
	expensesSvc := expensesService.NewService(expenseRepository, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		pricingRepository,
		availEngine,
		txMgr,
		notifier,
		ucPublisher,
		log,
	)
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(bookingRepository, availEngine, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getPriceRules := getPriceRulesHandler.NewHandler(pricingSvc, log)
	createPriceRule := createPriceRuleHandler.NewHandler(pricingSvc, log)
	deletePriceRule := deletePriceRuleHandler.NewHandler(pricingSvc, log)
	getPricingDefaults := getPricingDefaultsHandler.NewHandler(pricingSvc, log)
	updatePricingDefaults := updatePricingDefaultsHandler.NewHandler(pricingSvc, log)
	createExpense := createExpenseHandler.NewHandler(expensesSvc, log)
	getExpenses := getExpensesHandler.NewHandler(expensesSvc, log)
	deleteExpense := deleteExpenseHandler.NewHandler(expensesSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(expensesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Rate limit на публичные ручки (если включен)
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
		defer redisClient.Close()

		api.Use(middleware.RateLimit(redisClient, cfg.RateLimit.RequestsPerMinute, time.Minute, log))
		log.Info("Rate limiting enabled: %d requests per minute", cfg.RateLimit.RequestsPerMinute)
	}

	// ============================================================
	// PUBLIC ROUTES (гостевой сценарий)
	// ============================================================

	// Доступные часы начала на дату
	api.HandleFunc("/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена своей брони гостем
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	api.HandleFunc("/customers/{id}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPatch)

	// --- Тарифы ---
	admin.HandleFunc("/price-rules", getPriceRules.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/price-rules", createPriceRule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/price-rules/{id}", deletePriceRule.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/pricing-defaults", getPricingDefaults.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/pricing-defaults", updatePricingDefaults.Handle).Methods(http.MethodPut)

	// --- Расходы и статистика ---
	admin.HandleFunc("/expenses", createExpense.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/expenses", getExpenses.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/expenses/{id}", deleteExpense.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// Планировщик утренней сводки
	var sched *scheduler.Scheduler
	if cfg.Digest.Enabled {
		sched = scheduler.New(bookingSvc, notifier, log)
		if err := sched.AddDailyDigest(cfg.Digest.CronSpec); err != nil {
			log.Fatal("Failed to schedule daily digest: %v", err)
		}
		sched.Start()
	}

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

	if sched != nil {
		sched.Stop()
		log.Info("Scheduler stopped")
	}

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
