package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkSlotHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_slot"
	confirmReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getBookingRulesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking_rules"
	getDailySlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_daily_slots"
	getGuestReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_guest_reservations"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getShopReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_shop_reservations"
	updateBookingRulesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_booking_rules"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/cache/shopsnapshot"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	shiftRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shift"
	shopRulesRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/shoprules"
	shopServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/shopservice"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	shopRulesService "github.com/m04kA/SMC-ReservationService/internal/service/shoprules"
	checkSlotUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_reservation_slot"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	expireHoldsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/expire_holds"
	getDailySlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_daily_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

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

	// Подключаемся к Redis (кэш снапшотов салонов)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Инициализируем клиент ShopService с кэшированием снапшотов
	shopClient := shopServiceClient.NewClient(
		cfg.ShopService.URL,
		time.Duration(cfg.ShopService.Timeout)*time.Second,
		log,
	)
	snapshotCache := shopsnapshot.New(redisClient, time.Duration(cfg.Redis.SnapshotTTL)*time.Second)
	cachedShopClient := shopsnapshot.NewCachedClient(shopClient, snapshotCache, log)
	log.Info("Integration client initialized (ShopService=%s timeout=%ds, snapshot_ttl=%ds)",
		cfg.ShopService.URL, cfg.ShopService.Timeout, cfg.Redis.SnapshotTTL)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		shiftRepository       *shiftRepo.Repository
		rulesRepository       *shopRulesRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		rulesRepository = shopRulesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		shiftRepository = shiftRepo.NewRepository(db)
		rulesRepository = shopRulesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		cachedShopClient,
		log,
	)
	rulesSvc := shopRulesService.NewService(
		rulesRepository,
		cachedShopClient,
		cachedShopClient,
		log,
	)

	// Инициализируем use cases
	holdTTL := time.Duration(cfg.Holds.TTLMinutes) * time.Minute

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		shiftRepository,
		rulesRepository,
		cachedShopClient,
		txMgr,
		holdTTL,
		log,
	)

	checkSlotUseCase := checkSlotUC.NewUseCase(
		reservationRepository,
		shiftRepository,
		rulesRepository,
		cachedShopClient,
		log,
	)

	getDailySlotsUseCase := getDailySlotsUC.NewUseCase(
		reservationRepository,
		shiftRepository,
		cachedShopClient,
		log,
	)

	expireHoldsUseCase := expireHoldsUC.NewUseCase(reservationRepository, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getDailySlots := getDailySlotsHandler.NewHandler(getDailySlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationSvc, log)
	getShopReservations := getShopReservationsHandler.NewHandler(reservationSvc, log)
	getBookingRules := getBookingRulesHandler.NewHandler(rulesSvc, log)
	updateBookingRules := updateBookingRulesHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Дневной таймлайн слотов мастеров (публичный вид)
	api.HandleFunc("/shops/{shopId}/slots", getDailySlots.Handle).Methods(http.MethodGet)

	// Проверка доступности конкретного слота
	api.HandleFunc("/shops/{shopId}/check-slot", checkSlot.Handle).Methods(http.MethodPost)

	// Правила бронирования салона
	api.HandleFunc("/shops/{shopId}/booking-rules", getBookingRules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание брони (hold с ограниченным сроком действия)
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Подтверждение hold
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPost)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список бронирований салона
	protected.HandleFunc("/shops/{shopId}/reservations", getShopReservations.Handle).Methods(http.MethodGet)

	// Регистрация визита (in_progress / completed / no_show)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Админский таймлайн (tentative и blocked различаются)
	protected.HandleFunc("/shops/{shopId}/slots/admin", getDailySlots.HandleAdmin).Methods(http.MethodGet)

	// Обновление правил бронирования
	protected.HandleFunc("/shops/{shopId}/booking-rules", updateBookingRules.Handle).Methods(http.MethodPut)

	// Фоновое освобождение истёкших hold
	expiryCtx, stopExpiry := context.WithCancel(context.Background())
	go runHoldExpiry(expiryCtx, expireHoldsUseCase, metricsCollector,
		time.Duration(cfg.Holds.ExpiryIntervalSeconds)*time.Second, log)
	log.Info("Hold expiry job started (interval=%ds, ttl=%dm)",
		cfg.Holds.ExpiryIntervalSeconds, cfg.Holds.TTLMinutes)

	// Создаем HTTP сервер
	addr := ":" + strconv.Itoa(cfg.Server.HTTPPort)
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

	// Останавливаем фоновый job и сбор метрик connection pool
	stopExpiry()
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

// runHoldExpiry периодически освобождает истёкшие hold
func runHoldExpiry(
	ctx context.Context,
	useCase *expireHoldsUC.UseCase,
	metricsCollector *metrics.Metrics,
	interval time.Duration,
	log *logger.Logger,
) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Hold expiry job stopped")
			return
		case <-ticker.C:
			result, err := useCase.Execute(ctx)
			if err != nil {
				log.Error("Hold expiry job failed: %v", err)
				continue
			}
			if metricsCollector != nil && result.ExpiredCount > 0 {
				metricsCollector.HoldsExpiredTotal.Add(float64(result.ExpiredCount))
			}
		}
	}
}
