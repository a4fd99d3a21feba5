// Package report delivers the plain-text run summary mail.
package report

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"trendsync/internal/models"
)

// Mailer sends run summaries over SMTP with plain auth.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	to       string
	location *time.Location
}

// NewMailer creates a summary mailer. loc controls the timestamp shown in the
// summary body.
func NewMailer(host, port, username, password, to string, loc *time.Location) *Mailer {
	if loc == nil {
		loc = time.Local
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
		location: loc,
	}
}

// SendRunSummary mails the counts of one completed run.
func (m *Mailer) SendRunSummary(result models.RunResult, total int) error {
	if m.to == "" {
		return fmt.Errorf("no report recipient configured")
	}

	now := time.Now().In(m.location).Format("02.01.2006 15:04:05")
	body := fmt.Sprintf(`Trendyol sync report - %s

Newly inserted: %d
Updated:        %d
Skipped:        %d
Total products: %d
`, now, result.Inserted, result.Updated, result.Skipped, total)

	msg := strings.Join([]string{
		"From: " + m.username,
		"To: " + m.to,
		"Subject: Daily Trendyol sync report",
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.username, []string{m.to}, []byte(msg)); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	return nil
}
