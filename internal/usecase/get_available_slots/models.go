package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID uuid.UUID // ID услуги
	Date      string    // Дата в формате YYYY-MM-DD (в часовом поясе бизнеса)
}

// Response модель ответа со слотами на дату
type Response struct {
	Date  time.Time     // Запрошенная дата
	Slots []domain.Slot // Все кандидаты с признаком доступности, по возрастанию времени
}
