package create_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceID     uuid.UUID
	Date          string      `validate:"required,datetime=2006-01-02"`
	Time          string      `validate:"required,datetime=15:04"`
	Client        ClientInput `validate:"required"`
	Notes         *string     `validate:"omitempty,max=1000"`
	PaymentMethod string      `validate:"omitempty,oneof=in_person card"`
	PaymentToken  *string     `validate:"required_if=PaymentMethod card"`
}

// ClientInput данные клиента из формы записи
type ClientInput struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=254"`
	Phone     string `validate:"required,phone"`
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Client      *domain.Client
	Service     *domain.Service
}
