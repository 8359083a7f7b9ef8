package get_next_available

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса ближайшей доступной даты
type Request struct {
	ServiceID uuid.UUID // ID услуги
}

// Response модель ответа
type Response struct {
	Date *time.Time // Ближайшая дата со свободным слотом; nil, если в горизонте поиска нет мест
}
