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

	adminAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/admin_appointments"
	adminAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/admin_availability"
	adminBlockedTimesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/admin_blocked_times"
	adminSettingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/admin_settings"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAppointmentICSHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment_ics"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getNextAvailableHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_next_available"
	listServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_services"
	respondAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/respond_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	blockedRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/blocked"
	clientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/client"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	blockedTimesService "github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	getNextAvailableUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available"
	respondAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/respond_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")

	zone, err := scheduling.NewZone(cfg.Business.TimeZone)
	if err != nil {
		log.Fatal("Failed to load business time zone %q: %v", cfg.Business.TimeZone, err)
	}

	// Метрики; методы *Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	blockedRepository := blockedRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB, log)

	// Источник слотов и защита от пересечений: локальная БД или внешняя платформа
	resolver := scheduling.NewResolver(availabilityRepository, zone, log)

	var (
		slotSource      scheduling.SlotSource
		guards          createAppointmentUC.Guards
		platformCatalog catalogService.PlatformCatalog
		booker          createAppointmentUC.PlatformBooker
		canceller       respondAppointmentUC.PlatformCanceller
		adminCanceller  appointmentsService.PlatformCanceller
	)

	if cfg.Platform.Enabled {
		platformClient := bookingplatform.NewClient(
			cfg.Platform.BaseURL,
			cfg.Platform.Token,
			cfg.Platform.LocationID,
			cfg.Platform.TeamMemberID,
			time.Duration(cfg.Platform.Timeout)*time.Second,
			log,
		)
		slotSource = scheduling.NewPlatformSource(platformClient, zone)
		guards = scheduling.NewPlatformGuards(appointmentRepository, platformClient)
		platformCatalog = platformClient
		booker = platformClient
		canceller = platformClient
		adminCanceller = platformClient
		log.Info("Booking platform enabled (url=%s, timeout=%ds)", cfg.Platform.BaseURL, cfg.Platform.Timeout)
	} else {
		aggregator := scheduling.NewAggregator(appointmentRepository, blockedRepository, zone)
		slotSource = scheduling.NewLocalSource(resolver, aggregator, zone)
		guards = scheduling.NewLocalGuards(appointmentRepository, resolver, blockedRepository, zone)
		log.Info("Booking platform disabled, schedule is computed from the local database")
	}

	catalog := catalogService.NewService(
		serviceRepository,
		platformCatalog,
		time.Duration(cfg.Platform.CatalogCacheTTL)*time.Second,
		log,
	)

	var (
		charger  createAppointmentUC.PaymentProcessor
		refunder appointmentsService.PaymentRefunder
	)
	if cfg.Payments.Enabled {
		paymentsClient := payments.NewClient(cfg.Payments.SecretKey, cfg.Payments.Currency, log)
		charger = paymentsClient
		refunder = paymentsClient
		log.Info("Card payments enabled (currency=%s)", cfg.Payments.Currency)
	}

	// Уведомления после фиксации
	var eventHandler events.Handler = events.HandlerFunc(func(_ context.Context, e events.Event) error {
		log.Info("Mail disabled, skipping %s for appointment %s", e.Type, e.Appointment.ID)
		return nil
	})
	if cfg.Mail.Enabled {
		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Timeout:  time.Duration(cfg.Mail.Timeout) * time.Second,
			StartTLS: cfg.Mail.StartTLS,
		})
		notifier, err := mailer.NewNotifier(sender, mailer.Config{
			From:          cfg.Mail.From,
			BusinessName:  cfg.Business.Name,
			OwnerEmail:    cfg.Mail.From,
			PublicBaseURL: cfg.Business.PublicBaseURL,
			BookingURL:    cfg.Business.BookingURL,
			Location:      zone.Location(),
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize mailer: %v", err)
		}
		eventHandler = notifier
		log.Info("Mail enabled (smtp=%s:%d)", cfg.Mail.Host, cfg.Mail.Port)
	}

	dispatcher := events.NewDispatcher(
		eventHandler,
		cfg.Events.QueueSize,
		cfg.Events.Workers,
		time.Duration(cfg.Events.HandlerTimeout)*time.Second,
		log,
		metricsCollector,
	)
	dispatcher.Start()

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalog,
		settingsRepository,
		slotSource,
		zone,
		metricsCollector,
		log,
	)
	getNextAvailableUseCase := getNextAvailableUC.NewUseCase(
		catalog,
		settingsRepository,
		scheduling.NewNextAvailableFinder(slotSource, zone, log),
		zone,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(createAppointmentUC.Dependencies{
		Catalog:         catalog,
		Settings:        settingsRepository,
		ClientRepo:      clientRepository,
		AppointmentRepo: appointmentRepository,
		Guards:          guards,
		Platform:        booker,
		Payments:        charger,
		Publisher:       dispatcher,
		TxManager:       txMgr,
		Zone:            zone,
		Metrics:         metricsCollector,
		Logger:          log,
	})
	respondAppointmentUseCase := respondAppointmentUC.NewUseCase(
		appointmentRepository,
		clientRepository,
		catalog,
		canceller,
		dispatcher,
		txMgr,
		log,
	)

	// Сервисы админки
	appointmentsSvc := appointmentsService.NewService(appointmentsService.Dependencies{
		Repo:      appointmentRepository,
		Clients:   clientRepository,
		Catalog:   catalog,
		Platform:  adminCanceller,
		Refunder:  refunder,
		Publisher: dispatcher,
		TxManager: txMgr,
		Zone:      zone,
		Calendar: appointmentsService.CalendarConfig{
			BusinessName:   cfg.Business.Name,
			Practitioner:   cfg.Business.Practitioner,
			Location:       cfg.Business.Location,
			UIDDomain:      cfg.Business.UIDDomain,
			OrganizerEmail: cfg.Mail.From,
		},
		Logger: log,
	})
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	blockedTimesSvc := blockedTimesService.NewService(blockedRepository, zone, log)
	settingsSvc := settingsService.NewService(settingsRepository, txMgr, log)

	// Handlers
	listServices := listServicesHandler.NewHandler(catalog, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextAvailable := getNextAvailableHandler.NewHandler(getNextAvailableUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointmentICS := getAppointmentICSHandler.NewHandler(appointmentsSvc, log)
	respondAppointment := respondAppointmentHandler.NewHandler(respondAppointmentUseCase, respondAppointmentHandler.Config{
		BusinessName: cfg.Business.Name,
		DashboardURL: cfg.Business.DashboardURL,
	}, log)
	adminAppointments := adminAppointmentsHandler.NewHandler(appointmentsSvc, log)
	adminAvailability := adminAvailabilityHandler.NewHandler(availabilitySvc, log)
	adminBlockedTimes := adminBlockedTimesHandler.NewHandler(blockedTimesSvc, log)
	adminSettings := adminSettingsHandler.NewHandler(settingsSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/next-available", getNextAvailable.Handle).Methods(http.MethodGet)

	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/ics", getAppointmentICS.Handle).Methods(http.MethodGet)

	// Ссылка из письма специалисту (accept / reject)
	api.HandleFunc("/appointments/{appointmentId}/respond", respondAppointment.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	admin.HandleFunc("/appointments", adminAppointments.List).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", adminAppointments.Get).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", adminAppointments.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/notes", adminAppointments.UpdateNotes).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", adminAppointments.Cancel).Methods(http.MethodPost)

	admin.HandleFunc("/availability", adminAvailability.List).Methods(http.MethodGet)
	admin.HandleFunc("/availability", adminAvailability.Replace).Methods(http.MethodPut)

	admin.HandleFunc("/blocked-times", adminBlockedTimes.List).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-times", adminBlockedTimes.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times/{blockedTimeId}", adminBlockedTimes.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/settings", adminSettings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/settings", adminSettings.Update).Methods(http.MethodPatch)

	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not configured, admin routes will reject every request")
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

	// Дожидаемся отправки уже опубликованных уведомлений
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Error("Event dispatcher did not drain: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
