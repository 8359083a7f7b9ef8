package bookingplatform

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SearchAvailability возвращает начала свободных слотов услуги в [from, to)
func (c *Client) SearchAvailability(ctx context.Context, from, to time.Time, variationID string, durationMinutes int) ([]time.Time, error) {
	var body searchAvailabilityRequest
	body.Query.Filter = availabilityFilter{
		StartAtRange: timeRange{
			StartAt: from.UTC().Format(time.RFC3339),
			EndAt:   to.UTC().Format(time.RFC3339),
		},
		LocationID:     c.locationID,
		SegmentFilters: []segmentFilter{{ServiceVariationID: variationID}},
	}

	var resp searchAvailabilityResponse
	if err := c.do(ctx, http.MethodPost, "/v2/bookings/availability/search", body, &resp); err != nil {
		c.log.Warn("Platform: availability search %s..%s variation=%s failed: %v",
			body.Query.Filter.StartAtRange.StartAt, body.Query.Filter.StartAtRange.EndAt, variationID, err)
		return nil, err
	}

	starts := make([]time.Time, 0, len(resp.Availabilities))
	for _, a := range resp.Availabilities {
		start, err := time.Parse(time.RFC3339, a.StartAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start_at %q: %v", ErrInvalidResponse, a.StartAt, err)
		}
		starts = append(starts, start)
	}

	return starts, nil
}
