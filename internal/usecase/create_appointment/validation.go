package create_appointment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9()\-.\s]{10,20}$`)

// newValidator создает валидатор с правилом phone (минимум 10 цифр)
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		if !phonePattern.MatchString(phone) {
			return false
		}
		digits := 0
		for _, r := range phone {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		return digits >= 10
	})
	return v
}

// validateRequest валидирует входные данные запроса
func (uc *UseCase) validateRequest(req *Request) error {
	fields := make(map[string]string)

	if req.ServiceID == uuid.Nil {
		fields["service_id"] = "is required"
	}

	if err := uc.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		for _, fe := range verrs {
			fields[fieldName(fe.Namespace())] = describe(fe)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// resolveInterval переводит дату и время бизнеса в абсолютный интервал записи
func resolveInterval(zone *scheduling.Zone, req *Request, durationMinutes int) (time.Time, time.Time, error) {
	date, err := zone.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: map[string]string{"date": "must be YYYY-MM-DD"}}
	}

	clock, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Fields: map[string]string{"time": "must be HH:MM"}}
	}

	start, err := zone.LocalWallClock(date, clock)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return start, start.Add(time.Duration(durationMinutes) * time.Minute), nil
}

// validateLeadTime проверяет, что запись начинается не раньше now + lead time
func validateLeadTime(start, now time.Time, settings domain.Settings) error {
	earliest := now.Add(time.Duration(settings.LeadTimeMinutes) * time.Minute)
	if start.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, settings.LeadTimeMinutes)
	}
	return nil
}

// fieldName Request.Client.FirstName -> client.first_name
func fieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "datetime":
		return "must match " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
