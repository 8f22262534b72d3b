package scheduling

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
)

// Default interview logistics.
const (
	DefaultDuration = 60
	DefaultType     = "Technical"
	DefaultFormat   = "Online"
)

// DefaultTopics returns the topics used when none are generated.
func DefaultTopics() []string {
	return []string{"Technical skills", "Problem-solving abilities", "Previous experience", "Project discussions"}
}

// DefaultInterviewers returns the panel used when none is generated.
func DefaultInterviewers() []string {
	return []string{"Technical Lead", "HR Manager"}
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"slot": func(t time.Time) string { return t.Format("Monday, January 2, 2006 at 15:04 MST") },
}

var formalTmpl = template.Must(template.New("formal").Funcs(funcs).Parse(`Dear {{.Candidate}},

Thank you for your interest in the {{.JobTitle}} position. We are pleased to invite you to a {{.Type}} interview.

Date: {{.Date}}
Time: {{.Time}}
Duration: {{.Duration}} minutes
Format: {{.Format}}
{{- if .Topics}}
Topics: {{join .Topics ", "}}
{{- end}}

If this time does not suit you, the following alternatives are available:
{{- range .Alternatives}}
- {{slot .}}
{{- end}}

Please confirm your availability at your earliest convenience.

Best regards,
Hiring Team
`))

var friendlyTmpl = template.Must(template.New("friendly").Funcs(funcs).Parse(`Hi {{.Candidate}},

Great news! We'd love to chat with you about the {{.JobTitle}} role.

How about {{.Date}} at {{.Time}}? It's a {{.Duration}}-minute {{.Format}} {{.Type}} interview
{{- if .Topics}} where we'll talk about {{join .Topics ", "}}{{end}}.

Can't make it? Any of these work too:
{{- range .Alternatives}}
- {{slot .}}
{{- end}}

Just reply to let us know. Looking forward to meeting you!

Cheers,
The Hiring Team
`))

type emailData struct {
	Candidate    string
	JobTitle     string
	Date         string
	Time         string
	Duration     int
	Type         string
	Format       string
	Topics       []string
	Alternatives []time.Time
}

func newEmailData(job *types.Job, c *types.Candidate, iv *types.Interview) emailData {
	d := emailData{
		Candidate: "Candidate",
		JobTitle:  "open",
		Date:      iv.ScheduledAt.Format(dateLayout),
		Time:      iv.ScheduledAt.Format(clockLayout),
		Duration:  iv.DurationMinutes,
		Type:      iv.Type,
		Format:    iv.Format,
		Topics:    iv.Topics,
	}
	if c != nil && strings.TrimSpace(c.Name) != "" {
		d.Candidate = strings.TrimSpace(c.Name)
	}
	if job != nil && strings.TrimSpace(job.Title) != "" {
		d.JobTitle = strings.TrimSpace(job.Title)
	}
	if len(iv.SuggestedSlots) > 1 {
		d.Alternatives = iv.SuggestedSlots[1:]
	}
	return d
}

// DefaultInvitation renders the built-in formal and friendly invitations.
// A template that fails to execute is replaced by a plain body.
func DefaultInvitation(job *types.Job, c *types.Candidate, iv *types.Interview, logger *zap.Logger) types.Invitation {
	data := newEmailData(job, c, iv)
	subject := "Interview Invitation"
	if job != nil && strings.TrimSpace(job.Title) != "" {
		subject += " - " + data.JobTitle
	}
	return types.Invitation{
		Subject:  subject,
		Formal:   render(formalTmpl, data, logger),
		Friendly: render(friendlyTmpl, data, logger),
	}
}

func render(t *template.Template, data emailData, logger *zap.Logger) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		logging.OrNop(logger).Warn("failed to render invitation template, using plain body",
			zap.String("template", t.Name()), zap.Error(err))
		return plainBody(data)
	}
	return sb.String()
}

func plainBody(d emailData) string {
	return fmt.Sprintf("Dear %s,\n\nWe would like to invite you to an interview for the %s position on %s at %s (%d minutes, %s).\n\nBest regards,\nHiring Team\n",
		d.Candidate, d.JobTitle, d.Date, d.Time, d.Duration, d.Format)
}
