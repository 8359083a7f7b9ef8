package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	catalog      ServiceCatalog
	settings     SettingsLoader
	source       SlotSource
	zone         *scheduling.Zone
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog ServiceCatalog,
	settings SettingsLoader,
	source SlotSource,
	zone *scheduling.Zone,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		settings:     settings,
		source:       source,
		zone:         zone,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s, source=%s", req.ServiceID, req.Date, uc.source.Name())

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.zone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Загружаем настройки; при ошибке используем значения по умолчанию
	settings, err := uc.settings.Load(ctx)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to load settings, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}

	// 5. Считаем слоты на один день
	days, err := uc.source.Slots(ctx, scheduling.Query{
		Service:  service,
		From:     date,
		Days:     1,
		Settings: settings,
		Now:      now,
	})
	if err != nil {
		return nil, uc.mapSourceError(err)
	}

	slots := make([]domain.Slot, 0)
	if len(days) > 0 {
		slots = days[0].Slots
	}

	// 6. Метрики
	available := countAvailable(slots)
	uc.metrics.AddSlots(uc.source.Name(), available, len(slots)-available)

	uc.logger.Info("GetAvailableSlots: date=%s, %d slots, %d available", req.Date, len(slots), available)

	return &Response{
		Date:  date,
		Slots: slots,
	}, nil
}

func (uc *UseCase) mapSourceError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrServiceNotBookable):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return ErrServiceNotBookable
	case errors.Is(err, scheduling.ErrInvalidDuration):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, scheduling.ErrUpstream):
		uc.logger.Error("GetAvailableSlots: platform search failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}
}

func countAvailable(slots []domain.Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
