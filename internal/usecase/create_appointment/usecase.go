package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// Этапы, на которых обнаружен конфликт слота (метка метрики)
const (
	conflictStagePrecheck   = "precheck"
	conflictStageConstraint = "constraint"
)

// UseCase use case для создания записи
type UseCase struct {
	catalog         ServiceCatalog
	settings        SettingsLoader
	clientRepo      ClientRepository
	appointmentRepo AppointmentRepository
	guards          Guards
	platform        PlatformBooker
	payments        PaymentProcessor
	publisher       EventPublisher
	txManager       TransactionManager
	zone            *scheduling.Zone
	metrics         MetricsRecorder
	validate        *validator.Validate
	timeProvider    TimeProvider
	logger          Logger
}

// Dependencies зависимости use case; Platform равен nil в локальном режиме
type Dependencies struct {
	Catalog         ServiceCatalog
	Settings        SettingsLoader
	ClientRepo      ClientRepository
	AppointmentRepo AppointmentRepository
	Guards          Guards
	Platform        PlatformBooker
	Payments        PaymentProcessor
	Publisher       EventPublisher
	TxManager       TransactionManager
	Zone            *scheduling.Zone
	Metrics         MetricsRecorder
	Logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(deps Dependencies) *UseCase {
	return &UseCase{
		catalog:         deps.Catalog,
		settings:        deps.Settings,
		clientRepo:      deps.ClientRepo,
		appointmentRepo: deps.AppointmentRepo,
		guards:          deps.Guards,
		platform:        deps.Platform,
		payments:        deps.Payments,
		publisher:       deps.Publisher,
		txManager:       deps.TxManager,
		zone:            deps.Zone,
		metrics:         deps.Metrics,
		validate:        newValidator(),
		timeProvider:    &RealTimeProvider{},
		logger:          deps.Logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции;
// ограничение EXCLUDE на таблице остается окончательной гарантией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%s, date=%s, time=%s, email=%s, payment=%s",
		req.ServiceID, req.Date, req.Time, req.Client.Email, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Загружаем настройки; при ошибке используем значения по умолчанию
	settings, err := uc.settings.Load(ctx)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to load settings, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}

	// 5. Вычисляем интервал записи и проверяем lead time
	start, end, err := resolveInterval(uc.zone, req, service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}
	if err := validateLeadTime(start, now, settings); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 6. Проверка конфликтов для услуги
	guard, err := uc.guards.For(service)
	if err != nil {
		if errors.Is(err, scheduling.ErrServiceNotBookable) {
			uc.logger.Warn("CreateAppointment: service id=%s is not bookable: %v", service.ID, err)
			return nil, ErrServiceNotBookable
		}
		return nil, fmt.Errorf("%w: guard: %v", ErrInternal, err)
	}

	// 7. Оплата картой требует фиксированной цены
	paymentMethod := domain.PaymentInPerson
	paymentStatus := domain.PaymentNotRequired
	if req.PaymentMethod == string(domain.PaymentCard) {
		if uc.payments == nil {
			return nil, &ValidationError{Fields: map[string]string{"payment_method": "card payments are not accepted"}}
		}
		if !service.HasFixedPrice() {
			return nil, &ValidationError{Fields: map[string]string{"payment_method": "card payment requires a fixed price"}}
		}
		paymentMethod = domain.PaymentCard
		paymentStatus = domain.PaymentPending
	}

	// 8. Проверка на внешней платформе выполняется до транзакции
	if prechecker, ok := guard.(scheduling.Prechecker); ok {
		if err := prechecker.Precheck(ctx, start, end); err != nil {
			return nil, uc.mapCommitError(err, start)
		}
	}

	appointment := &domain.Appointment{
		ID:                uuid.New(),
		ServiceID:         service.ID,
		StartAt:           start,
		EndAt:             end,
		Status:            settings.InitialStatus(),
		ClientNotes:       req.Notes,
		CancellationToken: uuid.NewString(),
		PaymentMethod:     paymentMethod,
		PaymentStatus:     paymentStatus,
	}

	// 9. Проверка пересечений, клиент и вставка в одной сериализуемой транзакции.
	// Клиент обновляется только после успешной проверки слота.
	var client *domain.Client
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := guard.Check(txCtx, start, end); err != nil {
			return err
		}

		upserted, err := uc.clientRepo.UpsertByEmail(txCtx, &domain.Client{
			FirstName: req.Client.FirstName,
			LastName:  req.Client.LastName,
			Email:     req.Client.Email,
			Phone:     req.Client.Phone,
		})
		if err != nil {
			return fmt.Errorf("upsert client: %w", err)
		}
		client = upserted
		appointment.ClientID = client.ID

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return err
		}
		appointment = created
		return nil
	})
	if err != nil {
		return nil, uc.mapCommitError(err, start)
	}

	uc.logger.Info("CreateAppointment: inserted appointment id=%s, status=%s", appointment.ID, appointment.Status)

	// 10. Бронирование на внешней платформе
	if uc.platform != nil {
		if err := uc.bookOnPlatform(ctx, appointment, client, service); err != nil {
			uc.abort(ctx, appointment, domain.PaymentNotRequired)
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
	}

	// 11. Списание оплаты; при ошибке запись отменяется до возврата ответа
	if appointment.PaymentMethod == domain.PaymentCard {
		if err := uc.charge(ctx, appointment, client, service, *req.PaymentToken); err != nil {
			uc.metrics.IncPaymentFailure()
			uc.logger.Warn("CreateAppointment: payment failed for appointment id=%s: %v", appointment.ID, err)
			uc.abort(ctx, appointment, domain.PaymentFailed)
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
	}

	// 12. Публикуем событие; ошибки уведомлений не влияют на результат
	var list events.List
	list.Add(events.AppointmentCreated, appointment, client, service, now)
	if err := uc.publisher.Publish(list.WithOwnerEmail(settings.NotificationEmail)); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish events for appointment id=%s: %v", appointment.ID, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", appointment.ID)

	return &Response{
		Appointment: appointment,
		Client:      client,
		Service:     service,
	}, nil
}

// mapCommitError переводит ошибки транзакции в ошибки use case
func (uc *UseCase) mapCommitError(err error, start time.Time) error {
	switch {
	case errors.Is(err, scheduling.ErrSlotConflict):
		uc.metrics.IncBookingConflict(conflictStagePrecheck)
		uc.logger.Warn("CreateAppointment: slot %s is taken", start.Format(time.RFC3339))
		return ErrSlotConflict
	case appointmentRepo.IsSlotConflict(err):
		uc.metrics.IncBookingConflict(conflictStageConstraint)
		uc.logger.Warn("CreateAppointment: slot %s lost to a concurrent booking: %v", start.Format(time.RFC3339), err)
		return ErrSlotConflict
	case errors.Is(err, scheduling.ErrOutsideHours):
		uc.logger.Warn("CreateAppointment: slot %s is outside business hours", start.Format(time.RFC3339))
		return ErrOutsideHours
	case errors.Is(err, scheduling.ErrUpstream):
		uc.logger.Error("CreateAppointment: platform check failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
}

// bookOnPlatform создает клиента и бронирование на внешней платформе
func (uc *UseCase) bookOnPlatform(ctx context.Context, appointment *domain.Appointment, client *domain.Client, service *domain.Service) error {
	if service.PlatformVariationID == nil {
		return scheduling.ErrServiceNotBookable
	}

	customerID := ""
	if client.PlatformCustomerID != nil {
		customerID = *client.PlatformCustomerID
	} else {
		id, err := uc.platform.FindOrCreateCustomer(ctx, client)
		if err != nil {
			uc.logger.Warn("CreateAppointment: platform customer lookup failed for %s, booking without customer: %v", client.Email, err)
		} else {
			customerID = id
			if err := uc.clientRepo.SetPlatformCustomerID(ctx, client.ID, id); err != nil {
				uc.logger.Warn("CreateAppointment: failed to store platform customer id for client id=%s: %v", client.ID, err)
			}
			client.PlatformCustomerID = &id
		}
	}

	bookingID, err := uc.platform.CreateBooking(ctx, bookingplatform.CreateBookingRequest{
		CustomerID:      customerID,
		VariationID:     *service.PlatformVariationID,
		StartAt:         appointment.StartAt.UTC().Format(time.RFC3339),
		DurationMinutes: service.DurationMinutes,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: platform booking failed for appointment id=%s: %v", appointment.ID, err)
		return err
	}

	if err := uc.appointmentRepo.SetPlatformBookingID(ctx, appointment.ID, bookingID); err != nil {
		uc.logger.Error("CreateAppointment: failed to store platform booking id=%s for appointment id=%s: %v",
			bookingID, appointment.ID, err)
	}
	appointment.PlatformBookingID = &bookingID

	uc.logger.Info("CreateAppointment: platform booking id=%s for appointment id=%s", bookingID, appointment.ID)
	return nil
}

// charge списывает стоимость услуги
func (uc *UseCase) charge(ctx context.Context, appointment *domain.Appointment, client *domain.Client, service *domain.Service, token string) error {
	reference, err := uc.payments.Charge(ctx, payments.ChargeRequest{
		AmountCents:    *service.PriceCents,
		Token:          token,
		Description:    service.Name,
		ReceiptEmail:   client.Email,
		IdempotencyKey: appointment.ID.String(),
		Metadata: map[string]string{
			"appointment_id": appointment.ID.String(),
			"service_id":     service.ID.String(),
		},
	})
	if err != nil {
		return err
	}

	if err := uc.appointmentRepo.UpdatePayment(ctx, appointment.ID, domain.PaymentPaid, &reference); err != nil {
		// Деньги списаны: ошибку записи статуса только логируем, ссылка есть в логах
		uc.logger.Error("CreateAppointment: payment %s captured but not stored for appointment id=%s: %v",
			reference, appointment.ID, err)
	}
	appointment.PaymentStatus = domain.PaymentPaid
	appointment.PaymentReference = &reference
	return nil
}

// abort отменяет только что созданную запись и бронирование на платформе
func (uc *UseCase) abort(ctx context.Context, appointment *domain.Appointment, paymentStatus domain.PaymentStatus) {
	if err := uc.appointmentRepo.CancelWithPayment(ctx, appointment.ID, paymentStatus); err != nil {
		uc.logger.Error("CreateAppointment: failed to cancel appointment id=%s: %v", appointment.ID, err)
	}
	appointment.Status = domain.StatusCancelled
	appointment.PaymentStatus = paymentStatus

	if uc.platform != nil && appointment.PlatformBookingID != nil {
		if err := uc.platform.CancelBooking(ctx, *appointment.PlatformBookingID); err != nil {
			uc.logger.Warn("CreateAppointment: failed to cancel platform booking id=%s: %v", *appointment.PlatformBookingID, err)
		}
	}
}
