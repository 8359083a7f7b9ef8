package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек бизнеса
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает текущие настройки с подставленными значениями по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSettings(settings), nil
}

// Update проверяет и сохраняет переданные ключи.
// Если хотя бы одно значение некорректно, ничего не сохраняется.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if len(req.Values) == 0 {
		return nil, fmt.Errorf("%w: no settings to update", ErrInvalidInput)
	}

	keys := make([]string, 0, len(req.Values))
	for key := range req.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s.logger.Info("Update: updating settings %v", keys)

	// 1. Нормализуем значения
	normalized := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := domain.NormalizeSettingValue(key, fmt.Sprint(req.Values[key]))
		if err != nil {
			s.logger.Warn("Update: %v", err)
			if errors.Is(err, domain.ErrUnknownSetting) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		normalized[key] = value
	}

	// 2. Сохраняем атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, key := range keys {
			if err := s.repo.Set(txCtx, key, normalized[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings %v saved", keys)
	return s.Get(ctx)
}
