package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"time"

	mail "gopkg.in/mail.v2"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/events"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры писем
type Config struct {
	From         string
	BusinessName string
	// OwnerEmail адрес специалиста, если в настройках он не задан
	OwnerEmail string
	// PublicBaseURL адрес API для ссылок в письмах (без завершающего /)
	PublicBaseURL string
	// BookingURL страница записи на сайте
	BookingURL string
	Location   *time.Location
}

// Notifier превращает события в письма клиенту и специалисту
type Notifier struct {
	sender    Sender
	cfg       Config
	templates map[string]*template.Template
	logger    Logger
}

// NewNotifier создает обработчик событий, отправляющий письма
func NewNotifier(sender Sender, cfg Config, logger Logger) (*Notifier, error) {
	parsed, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Notifier{
		sender:    sender,
		cfg:       cfg,
		templates: parsed,
		logger:    logger,
	}, nil
}

type message struct {
	to       string
	subject  string
	template string
}

// Handle реализует events.Handler
func (n *Notifier) Handle(ctx context.Context, e events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := n.templateData(e)
	messages := n.plan(e)
	if len(messages) == 0 {
		return nil
	}

	built := make([]*mail.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.to == "" {
			n.logger.Warn("Notifier: no recipient for %s (%s), skipped", e.Type, msg.template)
			continue
		}

		var body bytes.Buffer
		if err := n.templates[msg.template].ExecuteTemplate(&body, "layout", data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRender, msg.template, err)
		}

		m := mail.NewMessage(mail.SetEncoding(mail.Unencoded))
		m.SetHeader("From", n.cfg.From)
		m.SetHeader("To", msg.to)
		m.SetHeader("Subject", msg.subject)
		m.SetBody("text/html", body.String())
		built = append(built, m)
	}
	if len(built) == 0 {
		return nil
	}

	if err := n.sender.DialAndSend(built...); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	n.logger.Info("Notifier: sent %d email(s) for %s appointment_id=%s", len(built), e.Type, e.Appointment.ID)
	return nil
}

// plan выбирает письма для события
func (n *Notifier) plan(e events.Event) []message {
	owner := e.OwnerEmail
	if owner == "" {
		owner = n.cfg.OwnerEmail
	}
	client := e.Client.Email
	business := n.cfg.BusinessName

	switch e.Type {
	case events.AppointmentCreated:
		if e.Appointment.Status == domain.StatusPending {
			return []message{
				{to: owner, subject: "New Appointment Request: " + e.Client.FullName(), template: templateOwnerRequest},
				{to: client, subject: "Appointment Request Received - " + business, template: templateClientReceived},
			}
		}
		return []message{
			{to: owner, subject: "New Appointment: " + e.Client.FullName(), template: templateOwnerBooked},
			{to: client, subject: "Appointment Confirmed - " + business, template: templateClientConfirmed},
		}
	case events.AppointmentConfirmed:
		return []message{{to: client, subject: "Appointment Confirmed - " + business, template: templateClientConfirmed}}
	case events.AppointmentRejected:
		return []message{{to: client, subject: "Appointment Request Update - " + business, template: templateClientRejected}}
	case events.AppointmentCancelled:
		return []message{{to: client, subject: "Appointment Cancelled - " + business, template: templateClientCancelled}}
	default:
		n.logger.Warn("Notifier: unknown event type %s", e.Type)
		return nil
	}
}

type templateData struct {
	Business        string
	Service         string
	Date            string
	Time            string
	Duration        int
	Price           string
	ClientName      string
	ClientFirstName string
	ClientEmail     string
	ClientPhone     string
	Notes           string
	AcceptURL       string
	RejectURL       string
	CalendarURL     string
	BookURL         string
}

func (n *Notifier) templateData(e events.Event) templateData {
	start := e.Appointment.StartAt.In(n.cfg.Location)
	data := templateData{
		Business:        n.cfg.BusinessName,
		Service:         e.Service.Name,
		Date:            start.Format("Monday, January 2, 2006"),
		Time:            start.Format("3:04 PM"),
		Duration:        e.Service.DurationMinutes,
		Price:           e.Service.PriceDisplay(),
		ClientName:      e.Client.FullName(),
		ClientFirstName: e.Client.FirstName,
		ClientEmail:     e.Client.Email,
		ClientPhone:     e.Client.Phone,
		BookURL:         n.cfg.BookingURL,
	}
	if e.Appointment.ClientNotes != nil {
		data.Notes = *e.Appointment.ClientNotes
	}

	base := fmt.Sprintf("%s/api/v1/appointments/%s", n.cfg.PublicBaseURL, e.Appointment.ID)
	token := url.QueryEscape(e.Appointment.CancellationToken)
	data.AcceptURL = fmt.Sprintf("%s/respond?action=accept&token=%s", base, token)
	data.RejectURL = fmt.Sprintf("%s/respond?action=reject&token=%s", base, token)
	data.CalendarURL = fmt.Sprintf("%s/ics?token=%s", base, token)
	return data
}
