package notify

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

// Template data is the same for all three messages; Reason is only ever
// filled for a rejection.
type templateData struct {
	FirstName string
	Date      string
	Time      string
	PartySize int
	Area      string
	Reason    string
}

var confirmedTmpl = template.Must(template.New("confirmed").Parse(
	`Dear {{.FirstName}},

Your table is confirmed. We look forward to welcoming you.

  Date:   {{.Date}}
  Time:   {{.Time}}
  Guests: {{.PartySize}}
  Area:   {{.Area}}

If your plans change, please give us a call.

Villa Flora
`))

var rejectedTmpl = template.Must(template.New("rejected").Parse(
	`Dear {{.FirstName}},

Unfortunately we are unable to accommodate your reservation request for
{{.Date}} at {{.Time}} ({{.PartySize}} guests).

  {{.Reason}}

We would be happy to find another date for you.

Villa Flora
`))

var receivedTmpl = template.Must(template.New("received").Parse(
	`Dear {{.FirstName}},

We have received your reservation request for {{.Date}} at {{.Time}}
({{.PartySize}} guests, {{.Area}}). Our staff will confirm it shortly.

Villa Flora
`))

func dataFor(rec reservations.Reservation) templateData {
	return templateData{
		FirstName: rec.FirstName,
		Date:      rec.Date.Format("2006-01-02"),
		Time:      rec.TimeSlot,
		PartySize: rec.PartySize,
		Area:      rec.Area,
		Reason:    rec.RejectionReason,
	}
}

// RenderDecision picks the outcome template by status. Only CONFIRMED and
// REJECTED have a decision message.
func RenderDecision(rec reservations.Reservation) (subject, body string, err error) {
	var tmpl *template.Template
	switch rec.Status {
	case reservations.StatusConfirmed:
		tmpl = confirmedTmpl
		subject = "Your reservation at Villa Flora is confirmed"
	case reservations.StatusRejected:
		tmpl = rejectedTmpl
		subject = "About your reservation request at Villa Flora"
	default:
		return "", "", fmt.Errorf("no decision template for status %q", rec.Status)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, dataFor(rec)); err != nil {
		return "", "", err
	}
	return subject, sb.String(), nil
}

// RenderReceived is the acknowledgment sent right after booking.
func RenderReceived(rec reservations.Reservation) (subject, body string, err error) {
	var sb strings.Builder
	if err := receivedTmpl.Execute(&sb, dataFor(rec)); err != nil {
		return "", "", err
	}
	return "We received your reservation request", sb.String(), nil
}
