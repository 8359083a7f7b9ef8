package bookingplatform

// Модели REST API платформы бронирования (v2)

type timeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type segmentFilter struct {
	ServiceVariationID string `json:"service_variation_id"`
}

type availabilityFilter struct {
	StartAtRange   timeRange       `json:"start_at_range"`
	LocationID     string          `json:"location_id"`
	SegmentFilters []segmentFilter `json:"segment_filters"`
}

type searchAvailabilityRequest struct {
	Query struct {
		Filter availabilityFilter `json:"filter"`
	} `json:"query"`
}

// Availability свободное время, предложенное платформой
type Availability struct {
	StartAt    string `json:"start_at"`
	LocationID string `json:"location_id"`
}

type searchAvailabilityResponse struct {
	Availabilities []Availability `json:"availabilities"`
	Errors         []APIError     `json:"errors"`
}

// APIError ошибка в теле ответа платформы
type APIError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

type money struct {
	Amount   *int64 `json:"amount"`
	Currency string `json:"currency"`
}

type itemVariationData struct {
	Name            string `json:"name"`
	PriceMoney      *money `json:"price_money"`
	ServiceDuration *int64 `json:"service_duration"` // миллисекунды
}

type itemVariation struct {
	ID                string             `json:"id"`
	ItemVariationData *itemVariationData `json:"item_variation_data"`
}

type itemData struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Variations  []itemVariation `json:"variations"`
}

// CatalogObject объект каталога платформы
type CatalogObject struct {
	Type     string    `json:"type"`
	ID       string    `json:"id"`
	ItemData *itemData `json:"item_data"`
}

type listCatalogResponse struct {
	Objects []CatalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

// CatalogService услуга, извлеченная из каталога
type CatalogService struct {
	CatalogID       string
	VariationID     string
	Name            string
	Description     *string
	DurationMinutes int
	PriceCents      *int64
	SortOrder       int
}

type appointmentSegment struct {
	ServiceVariationID string `json:"service_variation_id"`
	DurationMinutes    int    `json:"duration_minutes"`
	TeamMemberID       string `json:"team_member_id"`
}

// Booking бронирование на платформе
type Booking struct {
	ID                  string               `json:"id,omitempty"`
	Version             int64                `json:"version,omitempty"`
	Status              string               `json:"status,omitempty"`
	LocationID          string               `json:"location_id"`
	CustomerID          string               `json:"customer_id,omitempty"`
	StartAt             string               `json:"start_at"`
	AppointmentSegments []appointmentSegment `json:"appointment_segments"`
}

type createBookingRequest struct {
	IdempotencyKey string  `json:"idempotency_key"`
	Booking        Booking `json:"booking"`
}

type bookingResponse struct {
	Booking *Booking   `json:"booking"`
	Errors  []APIError `json:"errors"`
}

type cancelBookingRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	BookingVersion int64  `json:"booking_version"`
}

// CreateBookingRequest параметры создания бронирования
type CreateBookingRequest struct {
	CustomerID      string
	VariationID     string
	StartAt         string // RFC3339
	DurationMinutes int
}

// Customer клиент платформы
type Customer struct {
	ID           string `json:"id,omitempty"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
}

type searchCustomersRequest struct {
	Query struct {
		Filter struct {
			EmailAddress struct {
				Exact string `json:"exact"`
			} `json:"email_address"`
		} `json:"filter"`
	} `json:"query"`
}

type searchCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

type createCustomerRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Customer
}

type customerResponse struct {
	Customer *Customer `json:"customer"`
}
