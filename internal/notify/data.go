package notify

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

// Field is one labelled value shown in both renderings of an email.
type Field struct {
	Label string
	Value string
}

// Data is the template input shared by every notification kind.
type Data struct {
	Name          string
	ReplyTo       string
	Fields        []Field
	Date          string
	TimeSlot      string
	SchedulingURL string
	DownloadURL   string
	MagnetType    string
}

// ContactData builds the notification data for a contact submission.
func ContactData(s domain.ContactSubmission) Data {
	return Data{
		Name:    s.Name,
		ReplyTo: s.Email,
		Fields: compact([]Field{
			{"Name", s.Name},
			{"Email", s.Email},
			{"Company", s.Company},
			{"Phone", s.Phone},
			{"Message", s.Message},
		}),
	}
}

// BookingData builds the notification data for a confirmed booking.
func BookingData(b domain.DiscoveryCallBooking, schedulingURL string) Data {
	date := HumanDate(b.Date)
	return Data{
		Name:          b.Name,
		ReplyTo:       b.Email,
		Date:          date,
		TimeSlot:      b.TimeSlot,
		SchedulingURL: schedulingURL,
		Fields: compact([]Field{
			{"Name", b.Name},
			{"Email", b.Email},
			{"Company", b.Company},
			{"Phone", b.Phone},
			{"Date", date},
			{"Time", b.TimeSlot},
			{"Notes", b.Notes},
		}),
	}
}

// LeadData builds the notification data for a lead capture.
func LeadData(l domain.Lead, magnetType, downloadURL string) Data {
	return Data{
		Name:        l.Name,
		ReplyTo:     l.Email,
		MagnetType:  magnetType,
		DownloadURL: downloadURL,
		Fields: compact([]Field{
			{"Email", l.Email},
			{"Name", l.Name},
			{"Stage", l.LeadStage},
			{"Source", l.Source},
			{"Guide", GuideTitle(magnetType)},
		}),
	}
}

// HumanDate formats a YYYY-MM-DD date as "Monday, January 6, 2030". Values
// that do not parse are returned unchanged.
func HumanDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Monday, January 2, 2006")
}

// GuideTitle turns a magnet type such as "ai-readiness" into "Ai Readiness".
func GuideTitle(magnetType string) string {
	s := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(magnetType))
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}

// greeting returns "Hi <First>," or a neutral greeting when no name is known.
func greeting(name string) string {
	first := strings.Fields(name)
	if len(first) == 0 {
		return "Hi there,"
	}
	return "Hi " + cases.Title(language.English, cases.NoLower).String(first[0]) + ","
}

// compact drops fields with empty values, preserving order.
func compact(in []Field) []Field {
	out := in[:0]
	for _, f := range in {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}
