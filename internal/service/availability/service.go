package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const daysInWeek = 7

// Service сервис недельного расписания
type Service struct {
	repo      RuleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo RuleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// List возвращает правила на все 7 дней; отсутствующий день возвращается выключенным
func (s *Service) List(ctx context.Context) ([]models.RuleResponse, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	byDay := make(map[int]*domain.WeeklyAvailabilityRule, len(rules))
	for _, r := range rules {
		byDay[r.DayOfWeek] = r
	}

	result := make([]models.RuleResponse, 0, daysInWeek)
	for day := 0; day < daysInWeek; day++ {
		if r, ok := byDay[day]; ok {
			result = append(result, models.FromDomainRule(r))
			continue
		}
		result = append(result, models.RuleResponse{DayOfWeek: day})
	}
	return result, nil
}

// Replace сохраняет переданные правила одной транзакцией.
// Окно через полночь не поддерживается: start_time должен быть раньше end_time.
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRequest) ([]models.RuleResponse, error) {
	s.logger.Info("Replace: saving %d rules", len(req.Rules))

	// 1. Валидируем все правила до записи
	rules, err := toDomainRules(req.Rules)
	if err != nil {
		s.logger.Warn("Replace: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, rule := range rules {
			if err := s.repo.Upsert(txCtx, rule); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Replace: repository error: %v", err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: saved %d rules", len(rules))
	return s.List(ctx)
}

func toDomainRules(items []models.RuleRequest) ([]*domain.WeeklyAvailabilityRule, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one rule is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(items))
	rules := make([]*domain.WeeklyAvailabilityRule, 0, len(items))
	for _, item := range items {
		if seen[item.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day_of_week %d", ErrInvalidInput, item.DayOfWeek)
		}
		seen[item.DayOfWeek] = true

		start, err := types.NewTimeStringFromString(item.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d start_time: %v", ErrInvalidInput, item.DayOfWeek, err)
		}
		end, err := types.NewTimeStringFromString(item.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: day %d end_time: %v", ErrInvalidInput, item.DayOfWeek, err)
		}

		rule := &domain.WeeklyAvailabilityRule{
			DayOfWeek: item.DayOfWeek,
			IsActive:  item.IsActive,
			StartTime: start,
			EndTime:   end,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
