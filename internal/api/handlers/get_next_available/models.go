package get_next_available

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getNextAvailable "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_next_available"
)

// NextAvailableResponse HTTP response model; date = null, если мест нет
type NextAvailableResponse struct {
	Date *string `json:"date"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getNextAvailable.Response) *NextAvailableResponse {
	if resp.Date == nil {
		return &NextAvailableResponse{}
	}
	date := resp.Date.Format(domain.DateFormat)
	return &NextAvailableResponse{Date: &date}
}
