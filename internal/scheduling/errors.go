package scheduling

import "errors"

var (
	// ErrInvalidZone возвращается, если зону не удалось загрузить
	ErrInvalidZone = errors.New("scheduling: invalid business time zone")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("scheduling: service duration must be positive")

	// ErrServiceNotBookable возвращается, если услуга не может быть забронирована через источник слотов
	ErrServiceNotBookable = errors.New("scheduling: service is not bookable through this slot source")

	// ErrSlotConflict возвращается, когда выбранное время уже занято
	ErrSlotConflict = errors.New("scheduling: time slot is no longer available")

	// ErrOutsideHours возвращается, когда время записи вне рабочего окна дня
	ErrOutsideHours = errors.New("scheduling: requested time is outside business hours")

	// ErrUpstream возвращается при ошибке внешней платформы бронирования
	ErrUpstream = errors.New("scheduling: upstream availability search failed")

	// ErrStore возвращается при ошибке чтения данных расписания
	ErrStore = errors.New("scheduling: store error")
)
