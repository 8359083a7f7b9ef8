package bookingplatform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// CreateBooking создает бронирование на платформе и возвращает его ID
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	body := createBookingRequest{
		IdempotencyKey: uuid.NewString(),
		Booking: Booking{
			LocationID: c.locationID,
			CustomerID: req.CustomerID,
			StartAt:    req.StartAt,
			AppointmentSegments: []appointmentSegment{{
				ServiceVariationID: req.VariationID,
				DurationMinutes:    req.DurationMinutes,
				TeamMemberID:       c.teamMemberID,
			}},
		},
	}

	var resp bookingResponse
	if err := c.do(ctx, http.MethodPost, "/v2/bookings", body, &resp); err != nil {
		return "", err
	}
	if resp.Booking == nil || resp.Booking.ID == "" {
		return "", fmt.Errorf("%w: booking id is missing", ErrInvalidResponse)
	}

	return resp.Booking.ID, nil
}

// CancelBooking отменяет бронирование. Текущая версия бронирования запрашивается перед отменой.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	path := "/v2/bookings/" + url.PathEscape(bookingID)

	var current bookingResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &current); err != nil {
		return err
	}
	if current.Booking == nil {
		return fmt.Errorf("%w: booking %s is missing in response", ErrInvalidResponse, bookingID)
	}

	body := cancelBookingRequest{
		IdempotencyKey: uuid.NewString(),
		BookingVersion: current.Booking.Version,
	}
	return c.do(ctx, http.MethodPost, path+"/cancel", body, nil)
}
