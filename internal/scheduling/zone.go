package scheduling

import (
	"fmt"
	"time"
	_ "time/tzdata" // зона нужна и на хостах без системной базы tzdata

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Zone часовой пояс бизнеса; все локальные даты и время трактуются в нем
type Zone struct {
	loc *time.Location
}

// NewZone загружает IANA зону (например, America/Chicago)
func NewZone(name string) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidZone, name, err)
	}
	return &Zone{loc: loc}, nil
}

// NewZoneFromLocation оборачивает уже загруженную зону
func NewZoneFromLocation(loc *time.Location) *Zone {
	return &Zone{loc: loc}
}

// Location возвращает *time.Location зоны
func (z *Zone) Location() *time.Location {
	return z.loc
}

// Date возвращает локальную полночь даты (используются только год, месяц и день)
func (z *Zone) Date(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, z.loc)
}

// ParseDate разбирает YYYY-MM-DD как дату в поясе бизнеса
func (z *Zone) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, z.loc)
}

// Today возвращает локальную дату момента now
func (z *Zone) Today(now time.Time) time.Time {
	return z.Date(now.In(z.loc))
}

// LocalWallClock переводит дату и локальное время в момент; смещение берется на эту дату (учитывает DST)
func (z *Zone) LocalWallClock(date time.Time, t types.TimeString) (time.Time, error) {
	if err := t.Validate(); err != nil {
		return time.Time{}, err
	}
	hour, minute := t.Clock()
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, z.loc), nil
}

// ToLocal возвращает локальную дату и время момента
func (z *Zone) ToLocal(instant time.Time) (time.Time, types.TimeString) {
	local := instant.In(z.loc)
	return z.Date(local), types.NewTimeString(local)
}

// DayOfWeek возвращает 0 (воскресенье) .. 6 (суббота)
func (z *Zone) DayOfWeek(date time.Time) int {
	return int(z.Date(date).Weekday())
}

// DayBounds возвращает [полночь даты, полночь следующей даты); в дни перехода DST это 23 или 25 часов
func (z *Zone) DayBounds(date time.Time) (time.Time, time.Time) {
	start := z.Date(date)
	return start, start.AddDate(0, 0, 1)
}

// AddDays сдвигает календарную дату на n дней
func (z *Zone) AddDays(date time.Time, n int) time.Time {
	return z.Date(date).AddDate(0, 0, n)
}
