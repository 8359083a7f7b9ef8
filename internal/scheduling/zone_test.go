package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestZone_LocalWallClock_SeasonalOffset(t *testing.T) {
	zone := chicago(t)

	winter := at(t, zone, "2026-01-12", "09:00")
	assert.Equal(t, time.Date(2026, 1, 12, 15, 0, 0, 0, time.UTC), winter.UTC())

	summer := at(t, zone, "2026-07-13", "09:00")
	assert.Equal(t, time.Date(2026, 7, 13, 14, 0, 0, 0, time.UTC), summer.UTC())
}

func TestZone_ToLocal_RoundTrip(t *testing.T) {
	zone := chicago(t)

	instant := time.Date(2026, 3, 3, 3, 30, 0, 0, time.UTC) // 21:30 CST предыдущего дня
	date, clock := zone.ToLocal(instant)

	assert.Equal(t, "2026-03-02", date.Format("2006-01-02"))
	assert.Equal(t, types.TimeString("21:30"), clock)

	back, err := zone.LocalWallClock(date, clock)
	require.NoError(t, err)
	assert.True(t, back.Equal(instant))
}

func TestZone_DayBounds_DST(t *testing.T) {
	zone := chicago(t)

	regular, _ := zone.ParseDate("2026-03-02")
	from, to := zone.DayBounds(regular)
	assert.Equal(t, 24*time.Hour, to.Sub(from))

	springForward, _ := zone.ParseDate("2026-03-08")
	from, to = zone.DayBounds(springForward)
	assert.Equal(t, 23*time.Hour, to.Sub(from))

	fallBack, _ := zone.ParseDate("2026-11-01")
	from, to = zone.DayBounds(fallBack)
	assert.Equal(t, 25*time.Hour, to.Sub(from))
}

func TestZone_DayOfWeek(t *testing.T) {
	zone := chicago(t)

	monday, _ := zone.ParseDate("2026-03-02")
	assert.Equal(t, 1, zone.DayOfWeek(monday))

	sunday, _ := zone.ParseDate("2026-03-08")
	assert.Equal(t, 0, zone.DayOfWeek(sunday))
}

func TestNewZone_Invalid(t *testing.T) {
	_, err := NewZone("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrInvalidZone)
}
