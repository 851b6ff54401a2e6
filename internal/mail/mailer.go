package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/vamsidadi/playstore-backend/internal/config"
	gomail "gopkg.in/gomail.v2"
)

var bodyTemplate = template.Must(template.New("notification").Parse(`<html>
<body>
	<h2>CRUD Operation Notification</h2>
	<p>A <strong>{{.Action}}</strong> operation was performed on {{if eq .ItemType "user"}}user{{else}}app{{end}} <strong>{{.ItemName}}</strong>.</p>
	{{if .Extra}}<p>{{.Extra}}</p>{{end}}
</body>
</html>`))

// Mailer delivers CRUD notification mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New returns nil when no SMTP host is configured; callers treat a nil
// mailer as a disabled transport.
func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// SendCRUDNotification renders and delivers one notification message.
// itemType must be "user" or "app".
func (m *Mailer) SendCRUDNotification(recipients []string, action, itemName, itemType, extra string) error {
	subject, err := buildSubject(action, itemName, itemType)
	if err != nil {
		return err
	}

	body, err := renderBody(action, itemName, itemType, extra)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

func buildSubject(action, itemName, itemType string) (string, error) {
	switch itemType {
	case "user":
		return fmt.Sprintf("CRUD Operation: %s on User %s", strings.ToUpper(action), itemName), nil
	case "app":
		return fmt.Sprintf("CRUD Operation: %s on %s App", strings.ToUpper(action), itemName), nil
	default:
		return "", fmt.Errorf("invalid item type %q", itemType)
	}
}

func renderBody(action, itemName, itemType, extra string) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Action   string
		ItemName string
		ItemType string
		Extra    string
	}{action, itemName, itemType, extra})
	if err != nil {
		return "", fmt.Errorf("failed to render notification body: %w", err)
	}
	return buf.String(), nil
}
