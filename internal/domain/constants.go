package domain

// Default scheduling values (used when the settings store has no value or an unparseable one)
const (
	DefaultBufferMinutes       = 15
	DefaultSlotCadenceMinutes  = 30
	DefaultLeadTimeMinutes     = 60
	DefaultSearchWindowDays    = 7
	DefaultSearchWindows       = 9
	DefaultRequireApproval     = true
	DefaultBusinessTimeZone    = "America/Chicago"
	DefaultServiceDurationMins = 60
)

// Business validation constants
const (
	MinBufferMinutes      = 0
	MaxBufferMinutes      = 240
	MinSlotCadenceMinutes = 5
	MaxSlotCadenceMinutes = 240
	MinLeadTimeMinutes    = 0
	MaxLeadTimeMinutes    = 10080 // 1 week
	MinSearchWindowDays   = 1
	MaxSearchWindowDays   = 31
	MinSearchWindows      = 1
	MaxSearchWindows      = 52
	MaxNotesLength        = 1000
	MaxReasonLength       = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ObstructingStatuses статусы записей, которые занимают время в расписании
var ObstructingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
