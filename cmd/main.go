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

	cancelBookingHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/get_calendar"
	getScheduleHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/get_services"
	listBookingsHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/reschedule_booking"
	updateScheduleHandler "github.com/sgurenkov/VLM-BookingService/internal/api/handlers/update_schedule"
	"github.com/sgurenkov/VLM-BookingService/internal/api/middleware"
	"github.com/sgurenkov/VLM-BookingService/internal/config"
	auditRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/audit"
	bookingRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/customer"
	scheduleRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/schedule"
	servicecatRepo "github.com/sgurenkov/VLM-BookingService/internal/infra/storage/servicecat"
	bookingsService "github.com/sgurenkov/VLM-BookingService/internal/service/bookings"
	scheduleService "github.com/sgurenkov/VLM-BookingService/internal/service/schedule"
	createBookingUC "github.com/sgurenkov/VLM-BookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_availability"
	getCalendarUC "github.com/sgurenkov/VLM-BookingService/internal/usecase/get_calendar"
	rescheduleBookingUC "github.com/sgurenkov/VLM-BookingService/internal/usecase/reschedule_booking"
	"github.com/sgurenkov/VLM-BookingService/pkg/civiltime"
	"github.com/sgurenkov/VLM-BookingService/pkg/dbmetrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/events"
	"github.com/sgurenkov/VLM-BookingService/pkg/logger"
	"github.com/sgurenkov/VLM-BookingService/pkg/metrics"
	"github.com/sgurenkov/VLM-BookingService/pkg/phone"
	"github.com/sgurenkov/VLM-BookingService/pkg/simpletxmanager"
	"github.com/sgurenkov/VLM-BookingService/pkg/txmanager"
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

	log.Info("Starting VLM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Конвертер гражданского времени, вся арифметика дат идет через него
	converter, err := civiltime.NewConverter(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}
	log.Info("Business timezone: %s", cfg.Business.Timezone)

	phones := phone.NewNormalizer(cfg.Business.PhoneRegion)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Шина событий: уведомления клиентам рассылает отдельный диспетчер
	var publisher events.Publisher
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		publisher = natsPublisher
		log.Info("Event publisher connected to NATS at %s", cfg.NATS.URL)
	} else {
		publisher = events.NoopPublisher{}
		log.Info("Event publishing disabled")
	}
	defer publisher.Close()

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	servicecatRepository := servicecatRepo.NewRepository(executor)
	customerRepository := customerRepo.NewRepository(executor)
	auditRepository := auditRepo.NewRepository(executor)

	var bookingMetrics createBookingUC.MetricsRecorder = metrics.NopRecorder{}
	if cfg.Metrics.Enabled {
		bookingMetrics = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		auditRepository,
		publisher,
		converter,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		converter,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		servicecatRepository,
		converter,
		cfg.Business.LeadTimeMinutes,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(getAvailabilityUseCase, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		servicecatRepository,
		scheduleRepository,
		auditRepository,
		txMgr,
		converter,
		phones,
		publisher,
		bookingMetrics,
		cfg.Business.LeadTimeMinutes,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		auditRepository,
		txMgr,
		converter,
		publisher,
		bookingMetrics,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(servicecatRepository, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, converter, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, converter, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, converter, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, converter, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, converter, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина сайта, без аутентификации)
	// ============================================================

	// Каталог активных услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Календарь доступности на диапазон дат
	api.HandleFunc("/availability/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по ссылке с токеном управления
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	admin.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/weekly", updateSchedule.HandleUpsertWeekly).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/overrides", updateSchedule.HandleUpsertOverride).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/overrides/{date}", updateSchedule.HandleDeleteOverride).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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
