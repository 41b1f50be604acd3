package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

const summaryTemplate = `
<html>
<body>
	<h2>Lead import finished</h2>
	<p>{{.Created}} of {{.Total}} leads were created.</p>
	{{if gt .Failed 0}}<p><strong>{{.Failed}} record(s) failed</strong>; check the import report for the field issues.</p>{{end}}
</body>
</html>
`

type summaryData struct {
	Created int
	Failed  int
	Total   int
}

func (s *EmailSender) SendImportSummary(to string, created, failed, total int) error {
	t, err := template.New("summary").Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse summary template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, summaryData{Created: created, Failed: failed, Total: total}); err != nil {
		return fmt.Errorf("failed to render summary template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Lead import: %d created, %d failed", created, failed))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	return nil
}
