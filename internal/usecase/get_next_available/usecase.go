package get_next_available

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

// UseCase use case поиска ближайшей доступной даты
type UseCase struct {
	catalog      ServiceCatalog
	settings     SettingsLoader
	finder       NextAvailableFinder
	zone         *scheduling.Zone
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog ServiceCatalog,
	settings SettingsLoader,
	finder NextAvailableFinder,
	zone *scheduling.Zone,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		settings:     settings,
		finder:       finder,
		zone:         zone,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute ищет первую дату начиная с завтрашнего дня, в которой есть свободный слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetNextAvailable: service=%s", req.ServiceID)

	// 1. Валидация входных данных
	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: service_id is required", ErrInvalidInput)
	}

	// 2. Получаем услугу
	service, err := uc.catalog.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetNextAvailable: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetNextAvailable: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Загружаем настройки; при ошибке используем значения по умолчанию
	settings, err := uc.settings.Load(ctx)
	if err != nil {
		uc.logger.Warn("GetNextAvailable: failed to load settings, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}

	// 4. Поиск начинается с завтрашнего дня в часовом поясе бизнеса
	now := uc.timeProvider.Now()
	from := uc.zone.AddDays(uc.zone.Today(now), 1)

	date, err := uc.finder.Find(ctx, service, from, settings, now)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrServiceNotBookable):
			uc.logger.Warn("GetNextAvailable: %v", err)
			return nil, ErrServiceNotBookable
		case errors.Is(err, scheduling.ErrUpstream):
			uc.logger.Error("GetNextAvailable: platform search failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		default:
			uc.logger.Error("GetNextAvailable: search failed: %v", err)
			return nil, fmt.Errorf("%w: search failed: %v", ErrInternal, err)
		}
	}

	if date == nil {
		uc.logger.Info("GetNextAvailable: no availability within %d days", settings.HorizonDays())
	} else {
		uc.logger.Info("GetNextAvailable: next date %s", date.Format(domain.DateFormat))
	}

	return &Response{Date: date}, nil
}
