package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingplatform"
)

// DefaultCacheTTL время жизни кеша каталога платформы
const DefaultCacheTTL = 5 * time.Minute

// platformNamespace пространство имен для детерминированных ID услуг платформы
var platformNamespace = uuid.MustParse("8f0c6a52-4d3b-4b7e-9a51-0f6c2f1d3e77")

// PlatformServiceID возвращает стабильный ID услуги по ID вариации платформы
func PlatformServiceID(variationID string) uuid.UUID {
	return uuid.NewSHA1(platformNamespace, []byte(variationID))
}

// Service каталог услуг. С платформой источник истины она (с TTL-кэшем),
// локальная таблица используется, если платформа недоступна.
type Service struct {
	repo         ServiceRepository
	platform     PlatformCatalog
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger

	mu        sync.Mutex
	cached    []*domain.Service
	fetchedAt time.Time
}

// NewService создает сервис каталога; platform может быть nil (локальный режим)
func NewService(repo ServiceRepository, platform PlatformCatalog, ttl time.Duration, logger Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		repo:         repo,
		platform:     platform,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List возвращает активные услуги по порядку сортировки
func (s *Service) List(ctx context.Context) ([]*domain.Service, error) {
	if s.platform != nil {
		services, err := s.platformServices(ctx)
		if err == nil {
			return services, nil
		}
		s.logger.Warn("Catalog: platform unavailable, falling back to local catalog: %v", err)
	}

	services, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Catalog: failed to list local services: %v", err)
		return nil, fmt.Errorf("%w: list services: %v", ErrInternal, err)
	}
	return services, nil
}

// Get возвращает активную услугу по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if s.platform != nil {
		services, err := s.platformServices(ctx)
		if err == nil {
			for _, svc := range services {
				if svc.ID == id {
					return svc, nil
				}
			}
		} else {
			s.logger.Warn("Catalog: platform unavailable, looking up service id=%s locally: %v", id, err)
		}
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Catalog: failed to get service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// platformServices возвращает каталог платформы из кеша или обновляет его
func (s *Service) platformServices(ctx context.Context) ([]*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeProvider.Now()
	if s.cached != nil && now.Sub(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	items, err := s.platform.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]*domain.Service, 0, len(items))
	for _, item := range items {
		services = append(services, toDomain(item))
	}

	s.cached = services
	s.fetchedAt = now
	s.logger.Info("Catalog: cached %d platform services", len(services))
	return services, nil
}

func toDomain(item bookingplatform.CatalogService) *domain.Service {
	variationID := item.VariationID
	return &domain.Service{
		ID:                  PlatformServiceID(item.VariationID),
		Name:                item.Name,
		Description:         item.Description,
		DurationMinutes:     item.DurationMinutes,
		PriceCents:          item.PriceCents,
		IsActive:            true,
		SortOrder:           item.SortOrder,
		PlatformVariationID: &variationID,
	}
}
