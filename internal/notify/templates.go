package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// view is what both the HTML and the text template render.
type view struct {
	Heading   string
	Greeting  string
	Intro     []string
	Fields    []Field
	LinkLabel string
	LinkURL   string
	Checklist []string
	Footer    string
}

const htmlLayout = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; line-height: 1.5;">
<h2 style="color: #111827;">{{.Heading}}</h2>
{{- if .Greeting}}
<p>{{.Greeting}}</p>
{{- end}}
{{- range .Intro}}
<p>{{.}}</p>
{{- end}}
{{- if .Fields}}
<table cellpadding="6" style="border-collapse: collapse;">
{{- range .Fields}}
<tr><td style="font-weight: bold; vertical-align: top;">{{.Label}}</td><td style="white-space: pre-wrap;">{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .LinkURL}}
<p><a href="{{.LinkURL}}" style="color: #2563eb;">{{.LinkLabel}}</a></p>
{{- end}}
{{- if .Checklist}}
<h3>Next steps</h3>
<ol>
{{- range .Checklist}}
<li>{{.}}</li>
{{- end}}
</ol>
{{- end}}
{{- if .Footer}}
<p style="color: #6b7280; font-size: 12px;">{{.Footer}}</p>
{{- end}}
</body>
</html>
`

const textLayout = `{{.Heading}}
{{- if .Greeting}}

{{.Greeting}}
{{- end}}
{{- range .Intro}}

{{.}}
{{- end}}
{{- if .Fields}}
{{range .Fields}}
{{.Label}}: {{.Value}}
{{- end}}
{{- end}}
{{- if .LinkURL}}

{{.LinkLabel}}: {{.LinkURL}}
{{- end}}
{{- if .Checklist}}

Next steps:
{{- range $i, $c := .Checklist}}
{{inc $i}}. {{$c}}
{{- end}}
{{- end}}
{{- if .Footer}}

{{.Footer}}
{{- end}}
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlLayout))
	textTmpl = texttemplate.Must(texttemplate.New("text").
			Funcs(texttemplate.FuncMap{"inc": func(i int) int { return i + 1 }}).
			Parse(textLayout))
)

// Render produces the subject and both bodies for kind. From and To are left
// for the caller to fill.
func Render(kind Kind, d Data) (Message, error) {
	subject, v, err := compose(kind, d)
	if err != nil {
		return Message{}, err
	}
	var h, t bytes.Buffer
	if err := htmlTmpl.Execute(&h, v); err != nil {
		return Message{}, fmt.Errorf("render html %s: %w", kind, err)
	}
	if err := textTmpl.Execute(&t, v); err != nil {
		return Message{}, fmt.Errorf("render text %s: %w", kind, err)
	}
	return Message{Subject: subject, HTML: h.String(), Text: t.String()}, nil
}

func compose(kind Kind, d Data) (string, view, error) {
	switch kind {
	case KindContactInternal:
		return fmt.Sprintf("New contact form submission from %s", d.Name), view{
			Heading: "New contact form submission",
			Fields:  d.Fields,
			Checklist: []string{
				"Reply to the sender within one business day",
				"Review the company and role before responding",
				"Offer a discovery call if the request is a fit",
				"Mark the submission as reviewed",
			},
		}, nil

	case KindContactConfirmation:
		return "Thanks for reaching out", view{
			Heading:  "We received your message",
			Greeting: greeting(d.Name),
			Intro: []string{
				"Thank you for contacting us. A member of our team will get back to you within one business day.",
				"Here is a copy of what you sent:",
			},
			Fields: d.Fields,
			Footer: "If you did not submit this form you can ignore this email.",
		}, nil

	case KindBookingInternal:
		return fmt.Sprintf("New discovery call: %s at %s", d.Date, d.TimeSlot), view{
			Heading: "New discovery call booked",
			Fields:  d.Fields,
			Checklist: []string{
				"Add the call to the team calendar",
				"Research the company before the call",
				"Send a calendar invitation with the meeting link",
				"Prepare discovery questions from the notes",
			},
		}, nil

	case KindBookingConfirmation:
		v := view{
			Heading:  "Your discovery call is confirmed",
			Greeting: greeting(d.Name),
			Intro: []string{
				fmt.Sprintf("Your discovery call is booked for %s at %s.", d.Date, d.TimeSlot),
				"Booking details:",
			},
			Fields: d.Fields,
			Footer: "Need to change the time? Reply to this email and we will find another slot.",
		}
		if d.SchedulingURL != "" {
			v.LinkLabel = "Manage your booking"
			v.LinkURL = d.SchedulingURL
		}
		return fmt.Sprintf("Discovery call confirmed: %s at %s", d.Date, d.TimeSlot), v, nil

	case KindLeadInternal:
		return "New lead captured", view{
			Heading: "New lead captured",
			Fields:  d.Fields,
			Checklist: []string{
				"Add the lead to the nurture sequence",
				"Check whether the company is already a client",
				"Follow up in three business days",
			},
		}, nil

	case KindLeadGuide:
		v := view{
			Heading:  "Your guide is ready",
			Greeting: greeting(d.Name),
			Intro:    []string{"Thanks for your interest. Your copy of the guide is available below."},
			Fields:   d.Fields,
			Footer:   "You are receiving this email because you requested a guide on our website.",
		}
		if d.DownloadURL != "" {
			v.LinkLabel = "Download the guide"
			v.LinkURL = d.DownloadURL
		}
		subject := "Your guide is ready"
		if t := GuideTitle(d.MagnetType); t != "" {
			subject = "Your guide is ready: " + t
		}
		return subject, v, nil
	}
	return "", view{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
