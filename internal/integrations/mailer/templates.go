package mailer

import "html/template"

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Business}}</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #2d2d2d; max-width: 600px; margin: 0 auto; padding: 24px;">
<h1 style="color: #7c9885;">{{.Business}}</h1>
{{template "content" .}}
<table style="margin-top: 16px;">
<tr><td><strong>Service</strong></td><td>{{.Service}}</td></tr>
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
<tr><td><strong>Duration</strong></td><td>{{.Duration}} minutes</td></tr>
<tr><td><strong>Price</strong></td><td>{{.Price}}</td></tr>
</table>
</body>
</html>{{end}}`

var contents = map[string]string{
	templateOwnerRequest: `{{define "content"}}
<p>New appointment request from <strong>{{.ClientName}}</strong> ({{.ClientEmail}}, {{.ClientPhone}}).</p>
{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
<p>
<a href="{{.AcceptURL}}" style="background: #28a745; color: white; padding: 10px 20px; border-radius: 50px; text-decoration: none;">Accept</a>
<a href="{{.RejectURL}}" style="background: #dc3545; color: white; padding: 10px 20px; border-radius: 50px; text-decoration: none;">Decline</a>
</p>
{{end}}`,

	templateOwnerBooked: `{{define "content"}}
<p>New appointment booked by <strong>{{.ClientName}}</strong> ({{.ClientEmail}}, {{.ClientPhone}}).</p>
{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
{{end}}`,

	templateClientReceived: `{{define "content"}}
<p>Hi {{.ClientFirstName}}, we received your appointment request. You will get another email once it is confirmed.</p>
{{end}}`,

	templateClientConfirmed: `{{define "content"}}
<p>Hi {{.ClientFirstName}}, your appointment is confirmed.</p>
<p><a href="{{.CalendarURL}}">Add to calendar</a></p>
{{end}}`,

	templateClientRejected: `{{define "content"}}
<p>Hi {{.ClientFirstName}}, unfortunately the requested time is not available. Please choose another time.</p>
<p><a href="{{.BookURL}}">Book again</a></p>
{{end}}`,

	templateClientCancelled: `{{define "content"}}
<p>Hi {{.ClientFirstName}}, your appointment has been cancelled.</p>
<p><a href="{{.BookURL}}">Book again</a></p>
{{end}}`,
}

const (
	templateOwnerRequest    = "owner_request"
	templateOwnerBooked     = "owner_booked"
	templateClientReceived  = "client_received"
	templateClientConfirmed = "client_confirmed"
	templateClientRejected  = "client_rejected"
	templateClientCancelled = "client_cancelled"
)

// parseTemplates собирает по одному шаблону на каждый тип письма
func parseTemplates() (map[string]*template.Template, error) {
	result := make(map[string]*template.Template, len(contents))
	for name, content := range contents {
		t, err := template.New(name).Parse(layout)
		if err != nil {
			return nil, err
		}
		if _, err := t.Parse(content); err != nil {
			return nil, err
		}
		result[name] = t
	}
	return result, nil
}
