package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"cliphunt/internal/models"
	"cliphunt/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendBlueprintReport mails the outcome of one scheduled run: the run
// manifest plus the assembled blueprint.
func (s *Sender) SendBlueprintReport(record models.RunRecord, structure *models.FinalVideoStructure) error {
	if structure == nil {
		return fmt.Errorf("structure cannot be nil")
	}

	subject := fmt.Sprintf("Video Blueprint: %s - %d segments (%s)",
		record.Topic, record.SegmentCount, record.StartedAt.Format("Jan 2, 2006"))

	body, err := s.generateReportBody(record, structure)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto;">
  <h1>{{.Structure.Title}}</h1>
  <p><strong>Topic:</strong> {{.Record.Topic}}</p>
  <p><strong>Goal:</strong> {{.Structure.Goal}}</p>
  <p>
    Generated in {{.Record.Duration}} with {{.Record.MaxIdeators}} ideator(s).
    {{.Record.SegmentCount}} segments, {{.Record.ConceptFallback}} concept fallback(s).
  </p>
  {{range .Structure.Segments}}
  <div style="border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin-bottom: 12px;">
    <h3>{{.TimeRange}} — {{.Title}}</h3>
    <ul>
      {{range .Visual}}
      <li>
        <strong>{{.Kind}}</strong> ({{.SubTimeRange}}): {{.Description}}
        {{if .Source}}<br><a href="{{.Source}}">{{.Source}}</a>{{end}}
      </li>
      {{end}}
    </ul>
    <p style="color: #666;">{{.Audio}}</p>
  </div>
  {{end}}
</body>
</html>`

func (s *Sender) generateReportBody(record models.RunRecord, structure *models.FinalVideoStructure) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Record    models.RunRecord
		Structure *models.FinalVideoStructure
	}{Record: record, Structure: structure}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
