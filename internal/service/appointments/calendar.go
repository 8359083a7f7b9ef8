package appointments

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// CalendarConfig параметры экспорта в календарь
type CalendarConfig struct {
	BusinessName   string
	Practitioner   string
	Location       string
	UIDDomain      string
	OrganizerEmail string
}

// buildICS собирает iCalendar с одним событием; экранирование и перенос строк делает golang-ical
func buildICS(cfg CalendarConfig, d *models.Details, now time.Time) string {
	a := d.Appointment
	service := d.Service

	summary := service.Name
	if cfg.BusinessName != "" {
		summary += " - " + cfg.BusinessName
	}

	description := fmt.Sprintf("Your %s appointment", service.Name)
	if cfg.Practitioner != "" {
		description += " with " + cfg.Practitioner
	}
	if cfg.BusinessName != "" {
		description += " at " + cfg.BusinessName
	}
	description += fmt.Sprintf(".\n\nDuration: %d minutes\nPrice: %s", service.DurationMinutes, service.PriceDisplay())

	status := ics.ObjectStatusConfirmed
	switch a.Status {
	case domain.StatusPending:
		status = ics.ObjectStatusTentative
	case domain.StatusCancelled:
		status = ics.ObjectStatusCancelled
	}

	cal := ics.NewCalendar()
	cal.SetProductId(fmt.Sprintf("-//%s//Booking System//EN", cfg.BusinessName))
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(fmt.Sprintf("%s@%s", a.ID, cfg.UIDDomain))
	event.SetDtStampTime(now)
	event.SetStartAt(a.StartAt)
	event.SetEndAt(a.EndAt)
	event.SetSummary(summary)
	event.SetDescription(description)
	if cfg.Location != "" {
		event.SetLocation(cfg.Location)
	}
	event.SetStatus(status)
	if cfg.OrganizerEmail != "" {
		event.SetOrganizer("mailto:"+cfg.OrganizerEmail, ics.WithCN(cfg.BusinessName))
	}
	if d.Client != nil && d.Client.Email != "" {
		event.AddAttendee(d.Client.Email, ics.WithCN(d.Client.FullName()))
	}

	return cal.Serialize()
}
