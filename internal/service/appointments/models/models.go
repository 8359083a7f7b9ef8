package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListRequest фильтр списка записей для администратора
type ListRequest struct {
	From             string // YYYY-MM-DD, включительно (опционально)
	To               string // YYYY-MM-DD, включительно (опционально)
	Status           string // опционально
	IncludeCancelled bool
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateNotesRequest запрос на изменение заметок администратора
type UpdateNotesRequest struct {
	AdminNotes *string `json:"admin_notes"`
}

// Response модели

// ServiceResponse услуга в ответе
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
	PriceDisplay    string  `json:"price_display"`
}

// ClientResponse клиент в ответе администратору
type ClientResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse запись для администратора
type AppointmentResponse struct {
	ID                string           `json:"id"`
	StartDatetime     time.Time        `json:"start_datetime"`
	EndDatetime       time.Time        `json:"end_datetime"`
	Status            string           `json:"status"`
	ClientNotes       *string          `json:"client_notes"`
	AdminNotes        *string          `json:"admin_notes"`
	PaymentMethod     string           `json:"payment_method"`
	PaymentStatus     string           `json:"payment_status"`
	PaymentReference  *string          `json:"payment_reference,omitempty"`
	PlatformBookingID *string          `json:"platform_booking_id,omitempty"`
	Client            *ClientResponse  `json:"client"`
	Service           *ServiceResponse `json:"service"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// PublicAppointmentResponse запись для клиента без чувствительных данных
type PublicAppointmentResponse struct {
	ID            string           `json:"id"`
	StartDatetime time.Time        `json:"start_datetime"`
	EndDatetime   time.Time        `json:"end_datetime"`
	Status        string           `json:"status"`
	Service       *ServiceResponse `json:"service"`
	Client        struct {
		FirstName string `json:"first_name"`
		Email     string `json:"email"`
	} `json:"client"`
}

// Details запись вместе с клиентом и услугой
type Details struct {
	Appointment *domain.Appointment
	Client      *domain.Client
	Service     *domain.Service
}

// FromDomainService конвертирует услугу
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		PriceDisplay:    s.PriceDisplay(),
	}
}

// FromDomainClient конвертирует клиента
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
	}
}

// ToAppointmentResponse конвертирует запись с деталями
func (d *Details) ToAppointmentResponse() *AppointmentResponse {
	a := d.Appointment
	return &AppointmentResponse{
		ID:                a.ID.String(),
		StartDatetime:     a.StartAt.UTC(),
		EndDatetime:       a.EndAt.UTC(),
		Status:            string(a.Status),
		ClientNotes:       a.ClientNotes,
		AdminNotes:        a.AdminNotes,
		PaymentMethod:     string(a.PaymentMethod),
		PaymentStatus:     string(a.PaymentStatus),
		PaymentReference:  a.PaymentReference,
		PlatformBookingID: a.PlatformBookingID,
		Client:            FromDomainClient(d.Client),
		Service:           FromDomainService(d.Service),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// ToPublicResponse конвертирует запись для клиента
func (d *Details) ToPublicResponse() *PublicAppointmentResponse {
	a := d.Appointment
	resp := &PublicAppointmentResponse{
		ID:            a.ID.String(),
		StartDatetime: a.StartAt.UTC(),
		EndDatetime:   a.EndAt.UTC(),
		Status:        string(a.Status),
		Service:       FromDomainService(d.Service),
	}
	if d.Client != nil {
		resp.Client.FirstName = d.Client.FirstName
		resp.Client.Email = d.Client.Email
	}
	return resp
}
