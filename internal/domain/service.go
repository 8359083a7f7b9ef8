package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service represents a bookable catalog item
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	PriceCents      *int64 // nil = price varies
	IsActive        bool
	SortOrder       int

	// PlatformVariationID upstream catalog variation id (platform backend only)
	PlatformVariationID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// HasFixedPrice returns true if the service has a fixed price
func (s *Service) HasFixedPrice() bool {
	return s.PriceCents != nil
}

// PriceDisplay returns a human readable price
func (s *Service) PriceDisplay() string {
	if s.PriceCents == nil {
		return "Price Varies"
	}
	return fmt.Sprintf("$%d", *s.PriceCents/100)
}
