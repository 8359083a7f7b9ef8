package respond_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Action решение специалиста по заявке
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// Request модель запроса на обработку заявки
type Request struct {
	AppointmentID uuid.UUID
	Token         string
	Action        Action
}

// Response модель ответа
type Response struct {
	Appointment *domain.Appointment
	Client      *domain.Client
	Service     *domain.Service

	// AlreadyProcessed true, если заявка уже не в статусе pending; статус не менялся
	AlreadyProcessed bool
}
