package bookingplatform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "token", "LOC-1", "TM-1", 2*time.Second, logger.NewNop())
}

func TestClient_SearchAvailability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bookings/availability/search", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var body searchAvailabilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "LOC-1", body.Query.Filter.LocationID)
		assert.Equal(t, "VAR-1", body.Query.Filter.SegmentFilters[0].ServiceVariationID)
		assert.Equal(t, "2026-03-02T06:00:00Z", body.Query.Filter.StartAtRange.StartAt)

		_, _ = w.Write([]byte(`{"availabilities":[{"start_at":"2026-03-02T15:00:00Z"},{"start_at":"2026-03-02T15:30:00Z"}]}`))
	})

	from := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	starts, err := client.SearchAvailability(context.Background(), from, from.AddDate(0, 0, 1), "VAR-1", 60)
	require.NoError(t, err)
	require.Len(t, starts, 2)
	assert.True(t, starts[0].Equal(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)))
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusTooManyRequests, ErrUnavailable},
		{http.StatusBadRequest, ErrRejected},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.SearchAvailability(context.Background(), time.Now(), time.Now().Add(time.Hour), "VAR-1", 60)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ListCatalog_Pagination(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "ITEM", r.URL.Query().Get("types"))
		if r.URL.Query().Get("cursor") == "" {
			_, _ = w.Write([]byte(`{"cursor":"next","objects":[
				{"type":"ITEM","id":"IT-1","item_data":{"name":"Swedish","variations":[
					{"id":"VAR-1","item_variation_data":{"service_duration":3600000,"price_money":{"amount":9000,"currency":"USD"}}}]}},
				{"type":"CATEGORY","id":"CAT-1"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"objects":[
			{"type":"ITEM","id":"IT-2","item_data":{"name":"Deep tissue","variations":[
				{"id":"VAR-2","item_variation_data":{}}]}}]}`))
	})

	services, err := client.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, services, 2)

	assert.Equal(t, "VAR-1", services[0].VariationID)
	assert.Equal(t, 60, services[0].DurationMinutes)
	require.NotNil(t, services[0].PriceCents)
	assert.Equal(t, int64(9000), *services[0].PriceCents)

	assert.Equal(t, domain.DefaultServiceDurationMins, services[1].DurationMinutes)
	assert.Nil(t, services[1].PriceCents)
	assert.Equal(t, 1, services[1].SortOrder)
}

func TestClient_CancelBooking_UsesCurrentVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v2/bookings/BK-1":
			_, _ = w.Write([]byte(`{"booking":{"id":"BK-1","version":4}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v2/bookings/BK-1/cancel":
			var body cancelBookingRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(4), body.BookingVersion)
			_, _ = w.Write([]byte(`{"booking":{"id":"BK-1","status":"CANCELLED_BY_SELLER"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	assert.NoError(t, client.CancelBooking(context.Background(), "BK-1"))
}

func TestClient_FindOrCreateCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/customers/search":
			_, _ = w.Write([]byte(`{}`))
		case "/v2/customers":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ann@example.com", body["email_address"])
			assert.NotEmpty(t, body["idempotency_key"])
			_, _ = w.Write([]byte(`{"customer":{"id":"CUS-9"}}`))
		}
	})

	id, err := client.FindOrCreateCustomer(context.Background(), &domain.Client{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "5555555555",
	})
	require.NoError(t, err)
	assert.Equal(t, "CUS-9", id)
}
