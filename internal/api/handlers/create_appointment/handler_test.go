package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	resp *createAppointment.Response
	err  error
	got  *createAppointment.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{
	"service_id": "6f1c2a57-4a8e-4d4b-9a43-0d1f3f7f2a10",
	"date": "2026-03-09",
	"time": "10:00",
	"client": {"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone": "(312) 555-0100"},
	"payment_method": "in_person"
}`

func doCreate(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := map[string]struct {
		err     error
		status  int
		message string
	}{
		"slot taken": {
			err:     createAppointment.ErrSlotConflict,
			status:  http.StatusConflict,
			message: msgSlotConflict,
		},
		"card declined": {
			err:     fmt.Errorf("%w: card_declined", createAppointment.ErrPaymentFailed),
			status:  http.StatusPaymentRequired,
			message: msgPaymentFailed,
		},
		"service missing": {
			err:     createAppointment.ErrServiceNotFound,
			status:  http.StatusNotFound,
			message: msgServiceNotFound,
		},
		"not bookable": {
			err:     createAppointment.ErrServiceNotBookable,
			status:  http.StatusBadRequest,
			message: msgServiceNotBookable,
		},
		"too soon": {
			err:     createAppointment.ErrTooLateToBook,
			status:  http.StatusBadRequest,
			message: msgTooLateToBook,
		},
		"outside hours": {
			err:     createAppointment.ErrOutsideHours,
			status:  http.StatusBadRequest,
			message: msgOutsideHours,
		},
		"platform down": {
			err:     createAppointment.ErrUpstreamUnavailable,
			status:  http.StatusInternalServerError,
			message: msgUpstreamUnavailable,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := doCreate(t, &stubUseCase{err: tt.err}, validBody)

			assert.Equal(t, tt.status, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error)
			assert.Empty(t, body.Details)
		})
	}
}

func TestHandle_ValidationDetails(t *testing.T) {
	uc := &stubUseCase{err: &createAppointment.ValidationError{Fields: map[string]string{
		"client.email": "must be a valid email",
		"time":         "must be HH:MM",
	}}}

	w := doCreate(t, uc, validBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, msgValidationFailed, body.Error)
	assert.Equal(t, "must be a valid email", body.Details["client.email"])
	assert.Equal(t, "must be HH:MM", body.Details["time"])
}

func TestHandle_BadRequestSurface(t *testing.T) {
	t.Run("service_id is not a uuid", func(t *testing.T) {
		uc := &stubUseCase{}
		w := doCreate(t, uc, strings.Replace(validBody, "6f1c2a57-4a8e-4d4b-9a43-0d1f3f7f2a10", "massage", 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, msgValidationFailed, body.Error)
		assert.Equal(t, msgInvalidServiceID, body.Details["service_id"])
		assert.Nil(t, uc.got)
	})

	t.Run("unknown field", func(t *testing.T) {
		uc := &stubUseCase{}
		w := doCreate(t, uc, `{"service_id":"6f1c2a57-4a8e-4d4b-9a43-0d1f3f7f2a10","status":"confirmed"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, msgInvalidRequestBody, body.Error)
		assert.Nil(t, uc.got)
	})
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	price := int64(9500)
	service := &domain.Service{ID: uuid.New(), Name: "Deep Tissue", DurationMinutes: 60, PriceCents: &price, IsActive: true}
	client := &domain.Client{ID: uuid.New(), FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"}
	appointment := &domain.Appointment{
		ID:                uuid.New(),
		ClientID:          client.ID,
		ServiceID:         service.ID,
		StartAt:           start,
		EndAt:             start.Add(time.Hour),
		Status:            domain.StatusPending,
		CancellationToken: "tok-123",
		PaymentMethod:     domain.PaymentInPerson,
		PaymentStatus:     domain.PaymentNotRequired,
	}
	uc := &stubUseCase{resp: &createAppointment.Response{Appointment: appointment, Client: client, Service: service}}

	w := doCreate(t, uc, validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "2026-03-09", uc.got.Date)
	assert.Equal(t, "10:00", uc.got.Time)
	assert.Equal(t, "ann@example.com", uc.got.Client.Email)
	assert.Equal(t, "in_person", uc.got.PaymentMethod)

	var body struct {
		Appointment struct {
			ID            string    `json:"id"`
			StartDatetime time.Time `json:"start_datetime"`
			Status        string    `json:"status"`
			Service       struct {
				Name string `json:"name"`
			} `json:"service"`
			Client struct {
				FirstName string `json:"first_name"`
				Email     string `json:"email"`
			} `json:"client"`
		} `json:"appointment"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, appointment.ID.String(), body.Appointment.ID)
	assert.True(t, start.Equal(body.Appointment.StartDatetime))
	assert.Equal(t, "pending", body.Appointment.Status)
	assert.Equal(t, "Deep Tissue", body.Appointment.Service.Name)
	assert.Equal(t, "Ann", body.Appointment.Client.FirstName)
	assert.Equal(t, "tok-123", body.Token)
	assert.NotContains(t, w.Body.String(), "(312) 555-0100")
}
