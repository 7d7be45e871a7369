// Package notification delivers templated complaint emails. Delivery is
// best-effort: every Sink reports a boolean and never returns an error.
package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"
)

// Kind selects one of the fixed message templates.
type Kind string

const (
	KindForward         Kind = "forward"
	KindCompletion      Kind = "completion"
	KindSLAEscalation   Kind = "sla_escalation"
	KindFeedbackRequest Kind = "feedback_request"
)

// Kinds lists every supported template kind.
var Kinds = []Kind{KindForward, KindCompletion, KindSLAEscalation, KindFeedbackRequest}

// Data carries the complaint context rendered into a template.
type Data struct {
	ComplaintID    int64
	Text           string
	Category       string
	Status         string
	DepartmentName string
	CreatedAt      time.Time
	CompletedAt    *time.Time
	FeedbackURL    string
	SLAWindowHours int
}

// Sink delivers a notification and reports whether it went out.
type Sink interface {
	Notify(ctx context.Context, address string, kind Kind, data Data) bool
}

// Message is a rendered notification.
type Message struct {
	Subject string
	Body    string
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = parseTemplates()

func parseTemplates() map[Kind]*template.Template {
	funcs := template.FuncMap{"stamp": stamp}
	parsed := make(map[Kind]*template.Template, len(Kinds))
	for _, kind := range Kinds {
		name := "templates/" + string(kind) + ".html"
		parsed[kind] = template.Must(template.New(string(kind)).Funcs(funcs).ParseFS(templateFS, name))
	}
	return parsed
}

// Render produces the subject and HTML body for kind.
func Render(kind Kind, data Data) (Message, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return Message{}, fmt.Errorf("unknown notification kind %q", kind)
	}
	if data.SLAWindowHours == 0 {
		data.SLAWindowHours = 24
	}
	var subject, body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, err
	}
	if err := tmpl.ExecuteTemplate(&body, "body", data); err != nil {
		return Message{}, err
	}
	return Message{
		Subject: html.UnescapeString(strings.TrimSpace(subject.String())),
		Body:    body.String(),
	}, nil
}

func stamp(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	case *time.Time:
		if t == nil {
			return "-"
		}
		return stamp(*t)
	}
	return "-"
}
