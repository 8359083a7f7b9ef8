package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a person who books appointments. Clients are identified by email.
type Client struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     *string

	// PlatformCustomerID customer id on the upstream platform (platform backend only)
	PlatformCustomerID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last"
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
