package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownSetting возвращается для ключа, которого нет среди настроек
	ErrUnknownSetting = errors.New("unknown setting key")

	// ErrInvalidSetting возвращается при значении неверного типа или вне диапазона
	ErrInvalidSetting = errors.New("invalid setting value")
)

// Setting keys in the settings store
const (
	SettingBufferTimeMinutes  = "buffer_time_minutes"
	SettingSlotCadenceMinutes = "slot_interval_minutes"
	SettingLeadTimeMinutes    = "min_booking_notice_minutes"
	SettingRequireApproval    = "require_approval"
	SettingSearchWindowDays   = "search_window_days"
	SettingSearchWindows      = "search_windows"
	SettingNotificationEmail  = "notification_email"
)

// Settings typed business settings, loaded once per request
type Settings struct {
	BufferMinutes      int
	SlotCadenceMinutes int
	LeadTimeMinutes    int
	RequireApproval    bool
	SearchWindowDays   int
	SearchWindows      int
	NotificationEmail  string
}

// DefaultSettings returns the conservative defaults
func DefaultSettings() Settings {
	return Settings{
		BufferMinutes:      DefaultBufferMinutes,
		SlotCadenceMinutes: DefaultSlotCadenceMinutes,
		LeadTimeMinutes:    DefaultLeadTimeMinutes,
		RequireApproval:    DefaultRequireApproval,
		SearchWindowDays:   DefaultSearchWindowDays,
		SearchWindows:      DefaultSearchWindows,
	}
}

// HorizonDays total number of days the next-available search covers
func (s Settings) HorizonDays() int {
	return s.SearchWindowDays * s.SearchWindows
}

// InitialStatus status of a freshly booked appointment
func (s Settings) InitialStatus() AppointmentStatus {
	if s.RequireApproval {
		return StatusPending
	}
	return StatusConfirmed
}

// SettingsFromValues builds typed settings from raw key/value rows.
// Values may be plain or JSON-quoted scalars ("15", "\"15\"", "true").
// Missing keys keep their default; unparseable or out-of-range values also keep
// the default and are reported in invalid.
func SettingsFromValues(values map[string]string) (settings Settings, invalid []string) {
	settings = DefaultSettings()

	readInt := func(key string, min, max int, dst *int) {
		raw, ok := values[key]
		if !ok {
			return
		}
		n, err := strconv.Atoi(unquote(raw))
		if err != nil || n < min || n > max {
			invalid = append(invalid, key)
			return
		}
		*dst = n
	}

	readInt(SettingBufferTimeMinutes, MinBufferMinutes, MaxBufferMinutes, &settings.BufferMinutes)
	readInt(SettingSlotCadenceMinutes, MinSlotCadenceMinutes, MaxSlotCadenceMinutes, &settings.SlotCadenceMinutes)
	readInt(SettingLeadTimeMinutes, MinLeadTimeMinutes, MaxLeadTimeMinutes, &settings.LeadTimeMinutes)
	readInt(SettingSearchWindowDays, MinSearchWindowDays, MaxSearchWindowDays, &settings.SearchWindowDays)
	readInt(SettingSearchWindows, MinSearchWindows, MaxSearchWindows, &settings.SearchWindows)

	if raw, ok := values[SettingRequireApproval]; ok {
		b, err := strconv.ParseBool(unquote(raw))
		if err != nil {
			invalid = append(invalid, SettingRequireApproval)
		} else {
			settings.RequireApproval = b
		}
	}

	if raw, ok := values[SettingNotificationEmail]; ok {
		settings.NotificationEmail = unquote(raw)
	}

	return settings, invalid
}

// NormalizeSettingValue validates a single key/value pair and returns its canonical string form
func NormalizeSettingValue(key, value string) (string, error) {
	v := unquote(value)

	intRange := map[string][2]int{
		SettingBufferTimeMinutes:  {MinBufferMinutes, MaxBufferMinutes},
		SettingSlotCadenceMinutes: {MinSlotCadenceMinutes, MaxSlotCadenceMinutes},
		SettingLeadTimeMinutes:    {MinLeadTimeMinutes, MaxLeadTimeMinutes},
		SettingSearchWindowDays:   {MinSearchWindowDays, MaxSearchWindowDays},
		SettingSearchWindows:      {MinSearchWindows, MaxSearchWindows},
	}

	if bounds, ok := intRange[key]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be an integer", ErrInvalidSetting, key)
		}
		if n < bounds[0] || n > bounds[1] {
			return "", fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidSetting, key, bounds[0], bounds[1])
		}
		return strconv.Itoa(n), nil
	}

	switch key {
	case SettingRequireApproval:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be a boolean", ErrInvalidSetting, key)
		}
		return strconv.FormatBool(b), nil
	case SettingNotificationEmail:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
}

func unquote(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"`)
}
