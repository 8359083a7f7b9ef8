package blocked_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/blocked"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/blocked_times/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис блокировок времени
type Service struct {
	repo         BlockedRepository
	zone         *scheduling.Zone
	validate     *validator.Validate
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockedRepository, zone *scheduling.Zone, logger Logger) *Service {
	return &Service{
		repo:         repo,
		zone:         zone,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListUpcoming возвращает блокировки, которые еще не закончились
func (s *Service) ListUpcoming(ctx context.Context) ([]*models.BlockedTimeResponse, error) {
	items, err := s.repo.ListEndingAfter(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	result := make([]*models.BlockedTimeResponse, 0, len(items))
	for _, b := range items {
		result = append(result, models.FromDomain(b))
	}
	return result, nil
}

// Create создает блокировку.
// full_day закрывает дни [start_date, end_date] целиком, time_range идет от start_date start_time
// до end_date end_time. Локальное время переводится в абсолютные моменты.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedTimeResponse, error) {
	s.logger.Info("Create: %s block from %s to %s", req.BlockType, req.StartDate, req.EndDate)

	// 1. Валидируем запрос
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Переводим локальные даты в интервал
	start, end, err := s.resolveInterval(req)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}
	if !end.After(start) {
		s.logger.Warn("Create: end %s is not after start %s", end, start)
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	// 3. Сохраняем
	created, err := s.repo.Create(ctx, &domain.BlockedInterval{
		StartAt:  start,
		EndAt:    end,
		Reason:   req.Reason,
		IsAllDay: req.BlockType == models.BlockFullDay,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: blocked time id=%s created (%s - %s)", created.ID, start.UTC(), end.UTC())
	return models.FromDomain(created), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedIntervalNotFound) {
			s.logger.Warn("Delete: blocked time id=%s not found", id)
			return ErrBlockedTimeNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: blocked time id=%s deleted", id)
	return nil
}

func (s *Service) resolveInterval(req *models.CreateRequest) (time.Time, time.Time, error) {
	startDate, err := s.zone.ParseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}

	endDate := startDate
	if req.EndDate != "" {
		endDate, err = s.zone.ParseDate(req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
		}
	}

	if req.BlockType == models.BlockFullDay {
		start, _ := s.zone.DayBounds(startDate)
		_, end := s.zone.DayBounds(endDate)
		return start, end, nil
	}

	start, err := s.wallClock(startDate, req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	end, err := s.wallClock(endDate, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	return start, end, nil
}

func (s *Service) wallClock(date time.Time, clock string) (time.Time, error) {
	t, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, err
	}
	return s.zone.LocalWallClock(date, t)
}
