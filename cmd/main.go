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

	"github.com/go-redis/redis/v8"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calendarHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/calendar"
	createReservationHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/create_reservation"
	decideReservationHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/decide_reservation"
	getAvailableRoomsHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/get_available_rooms"
	getReservationHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/list_reservations"
	listRoomsHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/list_rooms"
	listUsersHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/login"
	meHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/me"
	notificationsHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/notifications"
	refreshViewsHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/refresh_views"
	registerHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/register"
	syncStateHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/sync_state"
	withdrawReservationHandler "github.com/m04kA/SMC-LabReservation/internal/api/handlers/withdraw_reservation"
	"github.com/m04kA/SMC-LabReservation/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservation/internal/auth"
	"github.com/m04kA/SMC-LabReservation/internal/config"
	reservationRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/user"
	"github.com/m04kA/SMC-LabReservation/internal/service/conflicts"
	"github.com/m04kA/SMC-LabReservation/internal/service/refresh"
	reservationsService "github.com/m04kA/SMC-LabReservation/internal/service/reservations"
	roomsService "github.com/m04kA/SMC-LabReservation/internal/service/rooms"
	usersService "github.com/m04kA/SMC-LabReservation/internal/service/users"
	createReservationUC "github.com/m04kA/SMC-LabReservation/internal/usecase/create_reservation"
	decideReservationUC "github.com/m04kA/SMC-LabReservation/internal/usecase/decide_reservation"
	getAvailableRoomsUC "github.com/m04kA/SMC-LabReservation/internal/usecase/get_available_rooms"
	"github.com/m04kA/SMC-LabReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservation/pkg/logger"
	"github.com/m04kA/SMC-LabReservation/pkg/metrics"
	"github.com/m04kA/SMC-LabReservation/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-LabReservation...")
	log.Info("Configuration loaded from %s", configPath)

	// Контекст жизни процесса: отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены). nil означает "выключены".
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Проверяем соединение
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	txMgr := txmanager.NewTransactionManager(wrappedDB).WithMaxRetries(cfg.Database.TxMaxRetries)

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Сигналы об устаревших данных между экземплярами (если включены)
	var notifier refresh.Notifier = refresh.NopNotifier{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis is unreachable, stale signals stay local until it recovers: %v", err)
		}
		notifier = refresh.NewRedisNotifier(redisClient, cfg.Redis.Channel, log)
		log.Info("Stale-view signals via redis %s channel=%s", cfg.Redis.Addr, cfg.Redis.Channel)
	}
	defer notifier.Close()

	// Инициализируем сервисы
	coordinator := refresh.NewCoordinator(
		roomRepository,
		reservationRepository,
		cfg.Refresh.IntervalDuration(),
		notifier,
		metricsCollector,
		log,
	)
	detector := conflicts.NewDetector(reservationRepository, log)
	roomSvc := roomsService.NewService(roomRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, coordinator, log)

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTLDuration())
	userSvc := usersService.NewService(userRepository, tokens, cfg.Auth.BcryptCost, log)

	// Каталог аудиторий и учётная запись администратора
	if cfg.Rooms.SeedFile != "" {
		n, err := roomSvc.SeedFromFile(ctx, cfg.Rooms.SeedFile)
		if err != nil {
			log.Fatal("Failed to seed rooms from %s: %v", cfg.Rooms.SeedFile, err)
		}
		log.Info("Room catalog seeded: %d rooms from %s", n, cfg.Rooms.SeedFile)
	}
	if cfg.Auth.AdminUsername != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			log.Fatal("Failed to ensure admin account: %v", err)
		}
	}

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		roomRepository,
		detector,
		coordinator,
		metricsCollector,
		txMgr,
		log,
	)
	decideReservationUseCase := decideReservationUC.NewUseCase(
		reservationRepository,
		detector,
		coordinator,
		metricsCollector,
		txMgr,
		log,
	)
	getAvailableRoomsUseCase := getAvailableRoomsUC.NewUseCase(
		coordinator,
		roomRepository,
		reservationRepository,
		log,
	)

	// Запускаем периодическое обновление представлений
	if err := coordinator.Start(ctx); err != nil {
		log.Fatal("Failed to start refresh coordinator: %v", err)
	}

	// Инициализируем handlers
	register := registerHandler.NewHandler(userSvc, log)
	login := loginHandler.NewHandler(userSvc, log)
	me := meHandler.NewHandler(userSvc, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getAvailableRooms := getAvailableRoomsHandler.NewHandler(getAvailableRoomsUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	withdrawReservation := withdrawReservationHandler.NewHandler(reservationSvc, log)
	decideReservation := decideReservationHandler.NewHandler(decideReservationUseCase, log)
	notifications := notificationsHandler.NewHandler(reservationSvc, log)
	calendar := calendarHandler.NewHandler(coordinator, log)
	syncState := syncStateHandler.NewHandler(coordinator)
	refreshViews := refreshViewsHandler.NewHandler(coordinator, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// Ограничение частоты для маршрутов записи
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit on write routes: %.1f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.Handle("/auth/register", limit(register.Handle)).Methods(http.MethodPost)
	api.Handle("/auth/login", limit(login.Handle)).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	protected.HandleFunc("/auth/me", me.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users", listUsers.Handle).Methods(http.MethodGet)

	// --- Аудитории ---
	protected.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/available", getAvailableRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendar", calendar.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.Handle("/reservations", limit(createReservation.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	protected.Handle("/reservations/{id}", limit(withdrawReservation.Handle)).Methods(http.MethodDelete)

	// Решение администратора
	protected.Handle("/reservations/{id}/decision", limit(decideReservation.Handle)).Methods(http.MethodPut)

	protected.HandleFunc("/notifications", notifications.Handle).Methods(http.MethodGet)

	// --- Синхронизация представлений ---
	protected.HandleFunc("/sync", syncState.Handle).Methods(http.MethodGet)
	protected.Handle("/refresh", limit(refreshViews.Handle)).Methods(http.MethodPost)

	// Recovery и CORS поверх всего роутера
	var handler http.Handler = r
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.Server.CORSOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
			gorillaHandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		)(handler)
	}
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(false))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

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
