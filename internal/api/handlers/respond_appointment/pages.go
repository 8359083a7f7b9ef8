package respond_appointment

import (
	"html/template"
	"net/http"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.BusinessName}} - Appointment Response</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #f5f1ed; margin: 0; padding: 40px 16px; }
    .card { max-width: 480px; margin: 0 auto; background: #fff; border-radius: 12px; padding: 32px; text-align: center; }
    .icon { font-size: 40px; margin-bottom: 12px; }
    .success { color: #4a7c59; } .error { color: #b0413e; } .warning { color: #c08a2e; }
    h1 { color: #8b6f5c; font-size: 20px; margin: 0 0 8px 0; }
    h2 { color: #2d2d2d; margin: 0 0 16px 0; }
    p { color: #6b6b6b; line-height: 1.5; }
    .button { display: inline-block; margin-top: 16px; padding: 10px 20px; background: #8b6f5c; color: #fff; border-radius: 6px; text-decoration: none; }
  </style>
</head>
<body>
  <div class="card">
    <div class="icon {{.IconClass}}">{{.Icon}}</div>
    <h1>{{.BusinessName}}</h1>
    <h2>{{.Title}}</h2>
    <p>{{.Message}}</p>
    {{if .ButtonURL}}<a href="{{.ButtonURL}}" class="button">{{.ButtonLabel}}</a>{{end}}
  </div>
</body>
</html>
`))

// page данные HTML-страницы ответа
type page struct {
	BusinessName string
	Icon         string
	IconClass    string
	Title        string
	Message      string
	ButtonURL    string
	ButtonLabel  string
}

func (h *Handler) render(w http.ResponseWriter, status int, p page) {
	p.BusinessName = h.cfg.BusinessName
	if h.cfg.DashboardURL != "" {
		p.ButtonURL = h.cfg.DashboardURL
		p.ButtonLabel = "View All Appointments"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		h.logger.Error("respond page render failed: %v", err)
	}
}

func errorPage(message string) page {
	return page{Icon: "✗", IconClass: "error", Title: "Error", Message: message}
}
