package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type countingRecorder struct {
	mu       sync.Mutex
	ok, fail int
}

func (r *countingRecorder) IncNotification(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.fail++
		return
	}
	r.ok++
}

func TestDispatcher_DeliversAndCountsFailures(t *testing.T) {
	var mu sync.Mutex
	var handled []Type

	handler := HandlerFunc(func(_ context.Context, e Event) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, e.Type)
		if e.Type == AppointmentRejected {
			return errors.New("smtp down")
		}
		return nil
	})

	rec := &countingRecorder{}
	d := NewDispatcher(handler, 10, 1, time.Second, logger.NewNop(), rec)
	d.Start()

	var list List
	appt := &domain.Appointment{ID: uuid.New()}
	list.Add(AppointmentCreated, appt, nil, nil, time.Now())
	list.Add(AppointmentRejected, appt, nil, nil, time.Now())
	require.NoError(t, d.Publish(list))

	require.NoError(t, d.Shutdown(context.Background()))

	assert.Equal(t, []Type{AppointmentCreated, AppointmentRejected}, handled)
	assert.Equal(t, 1, rec.ok)
	assert.Equal(t, 1, rec.fail)
}

func TestDispatcher_PublishAfterShutdown(t *testing.T) {
	d := NewDispatcher(HandlerFunc(func(context.Context, Event) error { return nil }), 1, 1, 0, logger.NewNop(), nil)
	d.Start()
	require.NoError(t, d.Shutdown(context.Background()))

	err := d.Publish(List{{Type: AppointmentCreated}})
	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

func TestDispatcher_RecoversFromPanic(t *testing.T) {
	rec := &countingRecorder{}
	d := NewDispatcher(HandlerFunc(func(context.Context, Event) error { panic("boom") }), 1, 1, 0, logger.NewNop(), rec)
	d.Start()

	require.NoError(t, d.Publish(List{{Type: AppointmentConfirmed}}))
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Equal(t, 1, rec.fail)
}

func TestList_AddCopiesValues(t *testing.T) {
	appt := &domain.Appointment{Status: domain.StatusPending}
	var list List
	list.Add(AppointmentCreated, appt, &domain.Client{Email: "a@b.c"}, nil, time.Now())

	appt.Status = domain.StatusCancelled

	assert.Equal(t, domain.StatusPending, list[0].Appointment.Status)
	assert.Equal(t, []Type{AppointmentCreated}, list.Types())
}
