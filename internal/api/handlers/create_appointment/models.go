package create_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID     string        `json:"service_id"`
	Date          string        `json:"date"` // "2026-03-02"
	Time          string        `json:"time"` // "10:00"
	Client        ClientRequest `json:"client"`
	Notes         *string       `json:"notes,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaymentToken  *string       `json:"payment_token,omitempty"`
}

// ClientRequest данные клиента
type ClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Appointment *models.PublicAppointmentResponse `json:"appointment"`
	Token       string                            `json:"token"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ServiceID: serviceID,
		Date:      r.Date,
		Time:      r.Time,
		Client: createAppointment.ClientInput{
			FirstName: r.Client.FirstName,
			LastName:  r.Client.LastName,
			Email:     r.Client.Email,
			Phone:     r.Client.Phone,
		},
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		PaymentToken:  r.PaymentToken,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Токен возвращается клиенту для просмотра записи и экспорта в календарь.
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	details := &models.Details{
		Appointment: resp.Appointment,
		Client:      resp.Client,
		Service:     resp.Service,
	}
	return &CreateAppointmentResponse{
		Appointment: details.ToPublicResponse(),
		Token:       resp.Appointment.CancellationToken,
	}
}
