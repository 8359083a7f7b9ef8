package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const testMonday = "2026-03-02"

func mondayParams(t *testing.T, zone *Zone) Params {
	t.Helper()
	date, err := zone.ParseDate(testMonday)
	require.NoError(t, err)
	return Params{
		Date:            date,
		Window:          domain.Window{Open: true, Start: "09:00", End: "17:00"},
		DurationMinutes: 60,
		BufferMinutes:   15,
		CadenceMinutes:  30,
		LeadTimeMinutes: 60,
		Now:             at(t, zone, "2026-02-20", "08:00"),
	}
}

func TestGenerateSlots_MondayExample(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Obstructions.Appointments = []domain.Interval{
		{Start: at(t, zone, testMonday, "10:00"), End: at(t, zone, testMonday, "11:00")},
	}

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time.String())
	assert.Equal(t, "16:30", slots[15].Time.String())

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "16:30"}, unavailableTimes(slots))
	assert.Equal(t, []string{
		"11:00", "11:30", "12:00", "12:30", "13:00", "13:30",
		"14:00", "14:30", "15:00", "15:30", "16:00",
	}, availableTimes(slots))
}

func TestGenerateSlots_BufferIsAppliedOnlyBeforeExistingAppointment(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Window = domain.Window{Open: true, Start: "09:00", End: "12:00"}
	p.DurationMinutes = 5
	p.CadenceMinutes = 5
	p.Obstructions.Appointments = []domain.Interval{
		{Start: at(t, zone, testMonday, "10:00"), End: at(t, zone, testMonday, "11:00")},
	}

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	day := domain.DaySlots{Slots: slots}
	assert.True(t, day.IsAvailable("09:40"), "09:40-09:45 touches the buffered start")
	assert.False(t, day.IsAvailable("09:45"))
	assert.False(t, day.IsAvailable("09:50"), "09:50-09:55 overlaps [09:45, 11:00)")
	assert.False(t, day.IsAvailable("10:55"))
	assert.True(t, day.IsAvailable("11:00"), "no buffer after an existing appointment")
}

func TestGenerateSlots_BlockedIntervalUsesRawBounds(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Obstructions.Blocked = []domain.Interval{
		{Start: at(t, zone, testMonday, "12:00"), End: at(t, zone, testMonday, "13:00")},
	}

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	day := domain.DaySlots{Slots: slots}
	assert.True(t, day.IsAvailable("11:00"), "11:00-12:00 touches the block")
	assert.False(t, day.IsAvailable("11:30"))
	assert.False(t, day.IsAvailable("12:30"))
	assert.True(t, day.IsAvailable("13:00"))
}

func TestGenerateSlots_LeadTime(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Now = at(t, zone, testMonday, "10:10")

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	day := domain.DaySlots{Slots: slots}
	assert.False(t, day.IsAvailable("11:00"), "11:00 is before now + 60m")
	assert.True(t, day.IsAvailable("11:30"))
}

func TestGenerateSlots_LastFittingSlot(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Window = domain.Window{Open: true, Start: "09:00", End: "10:45"}
	p.DurationMinutes = 45

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, availableTimes(slots))
	assert.Equal(t, []string{"10:30"}, unavailableTimes(slots))
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Window = domain.ClosedWindow()

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Window = domain.Window{Open: true, Start: "09:00", End: "10:00"}
	p.DurationMinutes = 90

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Empty(t, availableTimes(slots))
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.DurationMinutes = 0

	_, err := GenerateSlots(zone, p)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.Obstructions.Appointments = []domain.Interval{
		{Start: at(t, zone, testMonday, "13:00"), End: at(t, zone, testMonday, "14:30")},
	}
	p.Obstructions.Blocked = []domain.Interval{
		{Start: at(t, zone, testMonday, "09:00"), End: at(t, zone, testMonday, "10:00")},
	}

	first, err := GenerateSlots(zone, p)
	require.NoError(t, err)
	second, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Любой доступный слот удовлетворяет всем условиям доступности
func TestGenerateSlots_AvailableImpliesAllConditions(t *testing.T) {
	zone := chicago(t)
	p := mondayParams(t, zone)
	p.CadenceMinutes = 15
	p.DurationMinutes = 50
	p.Now = at(t, zone, testMonday, "08:30")
	p.Obstructions.Appointments = []domain.Interval{
		{Start: at(t, zone, testMonday, "11:20"), End: at(t, zone, testMonday, "12:10")},
		{Start: at(t, zone, testMonday, "15:00"), End: at(t, zone, testMonday, "15:30")},
	}
	p.Obstructions.Blocked = []domain.Interval{
		{Start: at(t, zone, testMonday, "13:05"), End: at(t, zone, testMonday, "13:40")},
	}

	slots, err := GenerateSlots(zone, p)
	require.NoError(t, err)

	windowEnd := at(t, zone, testMonday, "17:00")
	buffer := time.Duration(p.BufferMinutes) * time.Minute
	duration := time.Duration(p.DurationMinutes) * time.Minute

	for _, s := range slots {
		if !s.Available {
			continue
		}
		start := at(t, zone, testMonday, s.Time.String())
		end := start.Add(duration)

		assert.False(t, start.Before(p.Now.Add(time.Hour)), s.Time)
		assert.False(t, end.After(windowEnd), s.Time)
		for _, a := range p.Obstructions.Appointments {
			assert.False(t, domain.Overlaps(start, end, a.Start.Add(-buffer), a.End), s.Time)
		}
		for _, b := range p.Obstructions.Blocked {
			assert.False(t, domain.Overlaps(start, end, b.Start, b.End), s.Time)
		}
	}
}

func TestGenerateSlots_SpringForwardDay(t *testing.T) {
	zone := chicago(t)
	date, err := zone.ParseDate("2026-03-08")
	require.NoError(t, err)

	slots, err := GenerateSlots(zone, Params{
		Date:            date,
		Window:          domain.Window{Open: true, Start: "01:00", End: "04:00"},
		DurationMinutes: 30,
		CadenceMinutes:  30,
		Now:             at(t, zone, "2026-03-01", "00:00"),
	})
	require.NoError(t, err)

	// Кандидаты перечисляются по настенным часам, даже если 02:xx не существует
	require.Len(t, slots, 6)
	assert.Equal(t, "01:00", slots[0].Time.String())
	assert.Equal(t, "03:30", slots[5].Time.String())
	assert.Len(t, availableTimes(slots), 6)
}
