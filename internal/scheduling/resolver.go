package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Resolver возвращает рабочее окно на календарную дату по недельному расписанию
type Resolver struct {
	rules  RuleStore
	zone   *Zone
	logger Logger
}

// NewResolver создает резолвер окна доступности
func NewResolver(rules RuleStore, zone *Zone, logger Logger) *Resolver {
	return &Resolver{rules: rules, zone: zone, logger: logger}
}

// Resolve возвращает окно на дату; нет правила, правило выключено или битое = выходной
func (r *Resolver) Resolve(ctx context.Context, date time.Time) (domain.Window, error) {
	day := r.zone.DayOfWeek(date)

	rule, err := r.rules.GetRule(ctx, day)
	if err != nil {
		return domain.ClosedWindow(), fmt.Errorf("%w: get rule for day %d: %w", ErrStore, day, err)
	}

	if rule == nil || !rule.IsActive {
		return domain.ClosedWindow(), nil
	}

	// Битое правило трактуем как выходной
	if err := rule.Validate(); err != nil {
		r.logger.Warn("Resolver: rule for day %d is invalid, treating day as closed: %v", day, err)
		return domain.ClosedWindow(), nil
	}

	return domain.Window{Open: true, Start: rule.StartTime, End: rule.EndTime}, nil
}
