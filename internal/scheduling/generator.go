package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Params входные данные генератора слотов на один день
type Params struct {
	Date            time.Time // календарная дата (локальная)
	Window          domain.Window
	DurationMinutes int
	BufferMinutes   int
	CadenceMinutes  int
	LeadTimeMinutes int
	Now             time.Time
	Obstructions    Obstructions
}

// GenerateSlots перебирает начала слотов от начала окна с шагом cadence, пока начало
// раньше конца окна, и помечает каждый слот доступным или нет.
//
// Слот t доступен, если:
//   - slotStart >= now + lead time
//   - t + duration <= конец окна (буфер в проверку не входит)
//   - [slotStart, slotEnd) не пересекает [apptStart - buffer, apptEnd) ни одной записи
//   - [slotStart, slotEnd) не пересекает ни один блок
//
// Буфер только сдвигает начало существующей записи раньше, после записи он не добавляется.
// Для выходного дня возвращается пустой список.
func GenerateSlots(zone *Zone, p Params) ([]domain.Slot, error) {
	if !p.Window.Open {
		return []domain.Slot{}, nil
	}
	if p.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	cadence := p.CadenceMinutes
	if cadence <= 0 {
		cadence = domain.DefaultSlotCadenceMinutes
	}
	buffer := time.Duration(p.BufferMinutes) * time.Minute
	duration := time.Duration(p.DurationMinutes) * time.Minute
	earliest := p.Now.Add(time.Duration(p.LeadTimeMinutes) * time.Minute)

	windowStart, err := p.Window.Start.Minutes()
	if err != nil {
		return nil, err
	}
	windowEnd, err := p.Window.End.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]domain.Slot, 0, (windowEnd-windowStart)/cadence+1)

	for t := windowStart; t < windowEnd; t += cadence {
		candidate, err := types.NewTimeStringFromMinutes(t)
		if err != nil {
			return nil, err
		}

		slotStart, err := zone.LocalWallClock(p.Date, candidate)
		if err != nil {
			return nil, err
		}
		slotEnd := slotStart.Add(duration)

		isPast := slotStart.Before(earliest)
		fitsInWindow := t+p.DurationMinutes <= windowEnd

		slots = append(slots, domain.Slot{
			Time: candidate,
			Available: !isPast &&
				fitsInWindow &&
				!conflictsAppointment(slotStart, slotEnd, p.Obstructions.Appointments, buffer) &&
				!conflictsBlocked(slotStart, slotEnd, p.Obstructions.Blocked),
		})
	}

	return slots, nil
}

// conflictsAppointment сдвигает начало существующей записи на buffer раньше
func conflictsAppointment(slotStart, slotEnd time.Time, appointments []domain.Interval, buffer time.Duration) bool {
	for _, appt := range appointments {
		if domain.Overlaps(slotStart, slotEnd, appt.Start.Add(-buffer), appt.End) {
			return true
		}
	}
	return false
}

func conflictsBlocked(slotStart, slotEnd time.Time, blocked []domain.Interval) bool {
	for _, b := range blocked {
		if domain.Overlaps(slotStart, slotEnd, b.Start, b.End) {
			return true
		}
	}
	return false
}
