package get_next_available

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getNextAvailable "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	resp *getNextAvailable.Response
	err  error
	got  *getNextAvailable.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getNextAvailable.Request) (*getNextAvailable.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doNextAvailable(t *testing.T, uc *stubUseCase, query string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	r := httptest.NewRequest(http.MethodGet, "/api/v1/next-available?"+query, nil)
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_NextAvailable(t *testing.T) {
	serviceID := uuid.New()
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		resp   *getNextAvailable.Response
		err    error
		status int
		body   string
	}{
		"date found": {
			resp:   &getNextAvailable.Response{Date: &date},
			status: http.StatusOK,
			body:   `{"date":"2026-03-09"}`,
		},
		"nothing in horizon": {
			resp:   &getNextAvailable.Response{},
			status: http.StatusOK,
			body:   `{"date":null}`,
		},
		"service missing": {
			err:    getNextAvailable.ErrServiceNotFound,
			status: http.StatusNotFound,
			body:   `{"error":"` + msgServiceNotFound + `"}`,
		},
		"platform down": {
			err:    getNextAvailable.ErrUpstreamUnavailable,
			status: http.StatusInternalServerError,
			body:   `{"error":"` + msgUpstreamUnavailable + `"}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			uc := &stubUseCase{resp: tt.resp, err: tt.err}
			w := doNextAvailable(t, uc, "service_id="+serviceID.String())

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			require.NotNil(t, uc.got)
			assert.Equal(t, serviceID, uc.got.ServiceID)
		})
	}
}

func TestHandle_NextAvailableBadServiceID(t *testing.T) {
	uc := &stubUseCase{}
	w := doNextAvailable(t, uc, "service_id=massage")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"`+msgInvalidServiceID+`"}`, w.Body.String())
	assert.Nil(t, uc.got)
}
