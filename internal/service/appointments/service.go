package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис администрирования записей
type Service struct {
	repo         AppointmentRepository
	clients      ClientRepository
	catalog      ServiceCatalog
	platform     PlatformCanceller
	refunder     PaymentRefunder
	publisher    EventPublisher
	txManager    TransactionManager
	zone         *scheduling.Zone
	calendar     CalendarConfig
	timeProvider TimeProvider
	logger       Logger
}

// Dependencies зависимости сервиса; Platform и Refunder могут быть nil
type Dependencies struct {
	Repo      AppointmentRepository
	Clients   ClientRepository
	Catalog   ServiceCatalog
	Platform  PlatformCanceller
	Refunder  PaymentRefunder
	Publisher EventPublisher
	TxManager TransactionManager
	Zone      *scheduling.Zone
	Calendar  CalendarConfig
	Logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(deps Dependencies) *Service {
	return &Service{
		repo:         deps.Repo,
		clients:      deps.Clients,
		catalog:      deps.Catalog,
		platform:     deps.Platform,
		refunder:     deps.Refunder,
		publisher:    deps.Publisher,
		txManager:    deps.TxManager,
		zone:         deps.Zone,
		calendar:     deps.Calendar,
		timeProvider: &RealTimeProvider{},
		logger:       deps.Logger,
	}
}

// List возвращает записи по фильтру; даты интерпретируются в часовом поясе бизнеса
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*models.Details, error) {
	s.logger.Info("List: from=%s, to=%s, status=%s, include_cancelled=%t", req.From, req.To, req.Status, req.IncludeCancelled)

	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Клиенты и услуги повторяются, загружаем каждого один раз
	clients := make(map[uuid.UUID]*domain.Client)
	services := make(map[uuid.UUID]*domain.Service)

	result := make([]*models.Details, 0, len(items))
	for _, a := range items {
		client, ok := clients[a.ClientID]
		if !ok {
			client = s.loadClient(ctx, a.ClientID)
			clients[a.ClientID] = client
		}
		service, ok := services[a.ServiceID]
		if !ok {
			service = s.loadService(ctx, a.ServiceID)
			services[a.ServiceID] = service
		}
		result = append(result, &models.Details{Appointment: a, Client: client, Service: service})
	}

	s.logger.Info("List: found %d appointments", len(result))
	return result, nil
}

// Get возвращает запись по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Details, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}
	return s.details(ctx, appointment), nil
}

// GetByToken возвращает запись по ID и токену из письма
func (s *Service) GetByToken(ctx context.Context, id uuid.UUID, token string) (*models.Details, error) {
	if token == "" {
		return nil, ErrAppointmentNotFound
	}
	appointment, err := s.repo.GetByIDAndToken(ctx, id, token)
	if err != nil {
		return nil, s.mapRepoError("GetByToken", id, err)
	}
	return s.details(ctx, appointment), nil
}

// UpdateStatus меняет статус записи с проверкой допустимых переходов.
// Отмена освобождает бронирование на платформе и возвращает оплату (best effort).
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.Details, error) {
	s.logger.Info("UpdateStatus: appointment id=%s, status=%s", id, req.Status)

	next, ok := domain.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var appointment *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		found, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !found.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, found.Status, next)
		}
		if err := s.repo.UpdateStatus(txCtx, id, next); err != nil {
			return err
		}
		found.Status = next
		appointment = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			s.logger.Warn("UpdateStatus: %v", err)
			return nil, err
		}
		return nil, s.mapRepoError("UpdateStatus", id, err)
	}

	d := s.details(ctx, appointment)

	var list events.List
	switch next {
	case domain.StatusConfirmed:
		list.Add(events.AppointmentConfirmed, d.Appointment, d.Client, d.Service, s.timeProvider.Now())
	case domain.StatusCancelled:
		s.releaseCancelled(ctx, appointment)
		list.Add(events.AppointmentCancelled, d.Appointment, d.Client, d.Service, s.timeProvider.Now())
	}
	if len(list) > 0 {
		if err := s.publisher.Publish(list); err != nil {
			s.logger.Warn("UpdateStatus: failed to publish events for appointment id=%s: %v", id, err)
		}
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, next)
	return d, nil
}

// Cancel отменяет запись
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.Details, error) {
	return s.UpdateStatus(ctx, id, &models.UpdateStatusRequest{Status: string(domain.StatusCancelled)})
}

// UpdateNotes сохраняет заметки администратора
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, req *models.UpdateNotesRequest) (*models.Details, error) {
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: admin_notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := s.repo.UpdateAdminNotes(ctx, id, req.AdminNotes); err != nil {
		return nil, s.mapRepoError("UpdateNotes", id, err)
	}
	return s.Get(ctx, id)
}

// Calendar возвращает iCalendar для записи и имя файла
func (s *Service) Calendar(ctx context.Context, id uuid.UUID, token string) (string, string, error) {
	d, err := s.GetByToken(ctx, id, token)
	if err != nil {
		return "", "", err
	}

	date, _ := s.zone.ToLocal(d.Appointment.StartAt)
	filename := fmt.Sprintf("appointment-%s.ics", date.Format(domain.DateFormat))
	return buildICS(s.calendar, d, s.timeProvider.Now()), filename, nil
}

// releaseCancelled отменяет бронирование на платформе и возвращает оплату
func (s *Service) releaseCancelled(ctx context.Context, a *domain.Appointment) {
	if s.platform != nil && a.PlatformBookingID != nil {
		if err := s.platform.CancelBooking(ctx, *a.PlatformBookingID); err != nil {
			s.logger.Warn("UpdateStatus: failed to cancel platform booking id=%s: %v", *a.PlatformBookingID, err)
		}
	}

	if s.refunder == nil || a.PaymentStatus != domain.PaymentPaid || a.PaymentReference == nil {
		return
	}
	if err := s.refunder.Refund(ctx, *a.PaymentReference); err != nil {
		s.logger.Error("UpdateStatus: refund failed for appointment id=%s payment=%s: %v", a.ID, *a.PaymentReference, err)
		return
	}
	if err := s.repo.UpdatePayment(ctx, a.ID, domain.PaymentRefunded, a.PaymentReference); err != nil {
		s.logger.Error("UpdateStatus: failed to store refund for appointment id=%s: %v", a.ID, err)
		return
	}
	a.PaymentStatus = domain.PaymentRefunded
}

func (s *Service) toFilter(req *models.ListRequest) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{IncludeCancelled: req.IncludeCancelled}

	if req.From != "" {
		date, err := s.zone.ParseDate(req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
		}
		from, _ := s.zone.DayBounds(date)
		filter.From = &from
	}

	if req.To != "" {
		date, err := s.zone.ParseDate(req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
		}
		_, to := s.zone.DayBounds(date)
		filter.To = &to
	}

	if req.Status != "" {
		status, ok := domain.ParseAppointmentStatus(req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

func (s *Service) details(ctx context.Context, a *domain.Appointment) *models.Details {
	return &models.Details{
		Appointment: a,
		Client:      s.loadClient(ctx, a.ClientID),
		Service:     s.loadService(ctx, a.ServiceID),
	}
}

func (s *Service) loadClient(ctx context.Context, id uuid.UUID) *domain.Client {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load client id=%s: %v", id, err)
		return &domain.Client{ID: id}
	}
	return client
}

func (s *Service) loadService(ctx context.Context, id uuid.UUID) *domain.Service {
	service, err := s.catalog.Get(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load service id=%s: %v", id, err)
		return &domain.Service{ID: id, Name: "Appointment"}
	}
	return service
}

func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
