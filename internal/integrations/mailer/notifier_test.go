package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mail "gopkg.in/mail.v2"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func render(t *testing.T, m *mail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func newNotifier(t *testing.T, sender Sender) *Notifier {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	n, err := NewNotifier(sender, Config{
		From:          "studio@example.com",
		BusinessName:  "Studio",
		OwnerEmail:    "owner@example.com",
		PublicBaseURL: "https://api.example.com",
		BookingURL:    "https://example.com/book",
		Location:      loc,
	}, logger.NewNop())
	require.NoError(t, err)
	return n
}

func sampleEvent(typ events.Type, status domain.AppointmentStatus) events.Event {
	price := int64(9500)
	start := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	return events.Event{
		Type: typ,
		Appointment: domain.Appointment{
			ID:                uuid.MustParse("5b1f0f4e-3c3e-4a55-9d43-1f2a8f6f7a10"),
			StartAt:           start,
			EndAt:             start.Add(time.Hour),
			Status:            status,
			CancellationToken: "tok-123",
		},
		Client:  domain.Client{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "555-0100"},
		Service: domain.Service{Name: "Massage", DurationMinutes: 60, PriceCents: &price},
	}
}

func TestNotifier_PendingCreatedSendsRequestToOwner(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	err := n.Handle(context.Background(), sampleEvent(events.AppointmentCreated, domain.StatusPending))
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	assert.Equal(t, []string{"owner@example.com"}, sender.sent[0].GetHeader("To"))
	body := render(t, sender.sent[0])
	assert.Contains(t, body, "action=accept")
	assert.Contains(t, body, "action=reject")
	assert.Contains(t, body, "tok-123")

	assert.Equal(t, []string{"ann@example.com"}, sender.sent[1].GetHeader("To"))
	assert.Contains(t, sender.sent[1].GetHeader("Subject")[0], "Request Received")
}

func TestNotifier_ConfirmedCreatedUsesSettingsOwner(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	e := sampleEvent(events.AppointmentCreated, domain.StatusConfirmed)
	e.OwnerEmail = "settings-owner@example.com"

	require.NoError(t, n.Handle(context.Background(), e))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"settings-owner@example.com"}, sender.sent[0].GetHeader("To"))
	assert.Contains(t, render(t, sender.sent[1]), "/ics?token=tok-123")
}

func TestNotifier_LocalTimeInBody(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	require.NoError(t, n.Handle(context.Background(), sampleEvent(events.AppointmentConfirmed, domain.StatusConfirmed)))
	require.Len(t, sender.sent, 1)

	// 16:00 UTC = 10:00 в Чикаго (CST)
	body := render(t, sender.sent[0])
	assert.Contains(t, body, "10:00 AM")
	assert.Contains(t, body, "Monday, March 2, 2026")
}

func TestNotifier_RejectedAndCancelledGoToClient(t *testing.T) {
	for _, typ := range []events.Type{events.AppointmentRejected, events.AppointmentCancelled} {
		t.Run(string(typ), func(t *testing.T) {
			sender := &fakeSender{}
			n := newNotifier(t, sender)

			require.NoError(t, n.Handle(context.Background(), sampleEvent(typ, domain.StatusCancelled)))
			require.Len(t, sender.sent, 1)
			assert.Equal(t, []string{"ann@example.com"}, sender.sent[0].GetHeader("To"))
			assert.Contains(t, render(t, sender.sent[0]), "https://example.com/book")
		})
	}
}

func TestNotifier_SendError(t *testing.T) {
	n := newNotifier(t, &fakeSender{err: errors.New("connection refused")})

	err := n.Handle(context.Background(), sampleEvent(events.AppointmentConfirmed, domain.StatusConfirmed))
	assert.ErrorIs(t, err, ErrSend)
}

func TestNotifier_MissingRecipientSkipped(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifier(t, sender)

	e := sampleEvent(events.AppointmentConfirmed, domain.StatusConfirmed)
	e.Client.Email = ""

	require.NoError(t, n.Handle(context.Background(), e))
	assert.Empty(t, sender.sent)
}
