package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountsHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/accounts"
	createBookingHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/create_booking"
	editBookingHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/edit_booking"
	getCalendarHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/get_calendar"
	getServicesHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/get_services"
	manageAvailabilityHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/manage_availability"
	manageServicesHandler "github.com/nordco/NC-BookingClient/internal/api/handlers/manage_services"
	"github.com/nordco/NC-BookingClient/internal/api/middleware"
	"github.com/nordco/NC-BookingClient/internal/config"
	"github.com/nordco/NC-BookingClient/internal/integrations/salonapi"
	"github.com/nordco/NC-BookingClient/internal/service/events"
	"github.com/nordco/NC-BookingClient/pkg/logger"
	"github.com/nordco/NC-BookingClient/pkg/metrics"
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

	log.Info("Starting NC-BookingClient...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Бизнес-таймзона салона
	location, err := time.LoadLocation(cfg.Booking.BusinessTimezone)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Booking.BusinessTimezone, err)
	}
	log.Info("Business timezone: %s", cfg.Booking.BusinessTimezone)

	// Инициализируем клиента бэкенда бронирований
	backendClient := salonapi.NewClient(
		cfg.BackendAPI.URL,
		time.Duration(cfg.BackendAPI.Timeout)*time.Second,
		log,
	)
	if cfg.Metrics.Enabled {
		backendClient = backendClient.WithMetrics(metricsCollector)
	}
	log.Info("Backend client initialized (url=%s timeout=%ds)", cfg.BackendAPI.URL, cfg.BackendAPI.Timeout)

	// Реестр event store: по одному store на сессию (токен + роль)
	registry := events.NewRegistry(func(role events.Role) *events.Store {
		store := events.NewStore(backendClient, events.Config{
			Role:            role,
			SlotSizeMinutes: cfg.Booking.SlotSizeMinutes,
			Location:        location,
			NoticeTTL:       time.Duration(cfg.Booking.ErrorNoticeSeconds) * time.Second,
		}, log)
		if cfg.Metrics.Enabled {
			store = store.WithMetrics(metricsCollector)
		}
		return store
	})

	// Фоновая чистка неактивных сессий
	stopPurgeCh := make(chan struct{})
	maxIdle := time.Duration(cfg.Booking.SessionMaxIdleMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if purged := registry.Purge(maxIdle); purged > 0 {
					log.Info("Session registry: purged %d idle stores", purged)
				}
			case <-stopPurgeCh:
				return
			}
		}
	}()

	// Инициализируем handlers: отдельные экземпляры для клиентских
	// и админских маршрутов
	getCalendar := getCalendarHandler.NewHandler(registry, events.RoleCustomer, log)
	getAdminCalendar := getCalendarHandler.NewHandler(registry, events.RoleAdmin, log)
	createBooking := createBookingHandler.NewHandler(registry, events.RoleCustomer, log)
	createAdminBooking := createBookingHandler.NewHandler(registry, events.RoleAdmin, log)
	editBooking := editBookingHandler.NewHandler(registry, events.RoleCustomer, cfg.Booking.ModificationNoticeHours, log)
	editAdminBooking := editBookingHandler.NewHandler(registry, events.RoleAdmin, cfg.Booking.ModificationNoticeHours, log)
	manageAvailability := manageAvailabilityHandler.NewHandler(registry, events.RoleAdmin, log)
	getServices := getServicesHandler.NewHandler(backendClient, log)
	manageServices := manageServicesHandler.NewHandler(backendClient, log)
	accounts := accountsHandler.NewHandler(backendClient, registry, log)

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", accounts.HandleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", accounts.HandleRegister).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календарь ---
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", editBooking.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", editBooking.HandleDelete).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", getServices.HandleServices).Methods(http.MethodGet)
	protected.HandleFunc("/categories", getServices.HandleCategories).Methods(http.MethodGet)
	protected.HandleFunc("/categories/{categoryId}/services", getServices.HandleCategoryServices).Methods(http.MethodGet)

	// --- Профиль ---
	protected.HandleFunc("/profile", accounts.HandleGetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", accounts.HandleUpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile", accounts.HandleDeleteAccount).Methods(http.MethodDelete)
	protected.HandleFunc("/profile/change-password", accounts.HandleChangePassword).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют bearer-токен со staff-правами,
	// права проверяет бэкенд)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/calendar", getAdminCalendar.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createAdminBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}", editAdminBooking.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", editAdminBooking.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/availability", manageAvailability.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/availability", manageAvailability.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/services", manageServices.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", manageServices.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", manageServices.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/users", accounts.HandleListUsers).Methods(http.MethodGet)

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
	close(stopPurgeCh)

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
