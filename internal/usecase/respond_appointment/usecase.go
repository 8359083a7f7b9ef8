package respond_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case принятия или отклонения заявки по ссылке из письма
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	catalog         ServiceCatalog
	platform        PlatformCanceller
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case; platform может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	catalog ServiceCatalog,
	platform PlatformCanceller,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		catalog:         catalog,
		platform:        platform,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит pending-заявку в confirmed (accept) или cancelled (reject).
// Заявка в любом другом статусе не меняется и возвращается с AlreadyProcessed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RespondAppointment: appointment=%s, action=%s", req.AppointmentID, req.Action)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RespondAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		appointment      *domain.Appointment
		alreadyProcessed bool
	)

	// 2. Блокируем запись и меняем статус в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		found, err := uc.appointmentRepo.GetByIDAndToken(txCtx, req.AppointmentID, req.Token)
		if err != nil {
			return err
		}
		appointment = found

		if appointment.Status != domain.StatusPending {
			alreadyProcessed = true
			return nil
		}

		next := domain.StatusConfirmed
		if req.Action == ActionReject {
			next = domain.StatusCancelled
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, next); err != nil {
			return err
		}
		appointment.Status = next
		return nil
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RespondAppointment: appointment id=%s not found or token mismatch", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RespondAppointment: failed to update appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Подгружаем клиента и услугу для ответа и писем
	client, service := uc.loadDetails(ctx, appointment)

	resp := &Response{
		Appointment:      appointment,
		Client:           client,
		Service:          service,
		AlreadyProcessed: alreadyProcessed,
	}

	if alreadyProcessed {
		uc.logger.Info("RespondAppointment: appointment id=%s already %s", appointment.ID, appointment.Status)
		return resp, nil
	}

	// 4. При отклонении освобождаем время на платформе
	if req.Action == ActionReject && uc.platform != nil && appointment.PlatformBookingID != nil {
		if err := uc.platform.CancelBooking(ctx, *appointment.PlatformBookingID); err != nil {
			uc.logger.Warn("RespondAppointment: failed to cancel platform booking id=%s: %v", *appointment.PlatformBookingID, err)
		}
	}

	// 5. Публикуем событие для клиента
	eventType := events.AppointmentConfirmed
	if req.Action == ActionReject {
		eventType = events.AppointmentRejected
	}
	var list events.List
	list.Add(eventType, appointment, client, service, uc.timeProvider.Now())
	if err := uc.publisher.Publish(list); err != nil {
		uc.logger.Warn("RespondAppointment: failed to publish events for appointment id=%s: %v", appointment.ID, err)
	}

	uc.logger.Info("RespondAppointment: appointment id=%s is now %s", appointment.ID, appointment.Status)
	return resp, nil
}

// loadDetails ошибки чтения не прерывают ответ: статус уже зафиксирован
func (uc *UseCase) loadDetails(ctx context.Context, appointment *domain.Appointment) (*domain.Client, *domain.Service) {
	client, err := uc.clientRepo.GetByID(ctx, appointment.ClientID)
	if err != nil {
		uc.logger.Warn("RespondAppointment: failed to load client id=%s: %v", appointment.ClientID, err)
		client = &domain.Client{ID: appointment.ClientID}
	}

	service, err := uc.catalog.Get(ctx, appointment.ServiceID)
	if err != nil {
		uc.logger.Warn("RespondAppointment: failed to load service id=%s: %v", appointment.ServiceID, err)
		service = &domain.Service{ID: appointment.ServiceID}
	}

	return client, service
}
