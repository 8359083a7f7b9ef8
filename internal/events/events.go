package events

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Type тип события после фиксации записи
type Type string

const (
	AppointmentCreated   Type = "appointment.created"
	AppointmentConfirmed Type = "appointment.confirmed"
	AppointmentRejected  Type = "appointment.rejected"
	AppointmentCancelled Type = "appointment.cancelled"
)

// Event побочный эффект после успешной фиксации; хранит копии, чтобы не делить состояние с запросом
type Event struct {
	Type        Type
	Appointment domain.Appointment
	Client      domain.Client
	Service     domain.Service
	OccurredAt  time.Time

	// OwnerEmail адрес практикующего специалиста из настроек (может быть пустым)
	OwnerEmail string
}

// List события, накопленные use case за один запрос
type List []Event

// Add добавляет событие в список
func (l *List) Add(t Type, appt *domain.Appointment, client *domain.Client, service *domain.Service, at time.Time) {
	e := Event{Type: t, OccurredAt: at}
	if appt != nil {
		e.Appointment = *appt
	}
	if client != nil {
		e.Client = *client
	}
	if service != nil {
		e.Service = *service
	}
	*l = append(*l, e)
}

// Types возвращает типы событий по порядку
func (l List) Types() []Type {
	types := make([]Type, len(l))
	for i, e := range l {
		types[i] = e.Type
	}
	return types
}

// WithOwnerEmail проставляет адрес специалиста во все события списка
func (l List) WithOwnerEmail(email string) List {
	for i := range l {
		l[i].OwnerEmail = email
	}
	return l
}
