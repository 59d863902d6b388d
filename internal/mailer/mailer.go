package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"go.uber.org/zap"
)

const (
	MAX_RETRY = 3
)

type MailTemplateFile string

const (
	TemplateTeamInvitation     MailTemplateFile = "templates/team_invitation.tmpl"
	TemplateInvitationResponse MailTemplateFile = "templates/invitation_response.tmpl"
	TemplateLeadNotification   MailTemplateFile = "templates/lead_notification.tmpl"
	TemplateLeadWelcome        MailTemplateFile = "templates/lead_welcome.tmpl"
	TemplatePasswordReset      MailTemplateFile = "templates/password_reset.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toEmail string, data any) (int, error)
}

// Render executes the "subject" and "body" blocks of a template.
func Render(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, string(templateFile))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse mail template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to execute subject of %s: %w", templateFile, err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to execute body of %s: %w", templateFile, err)
	}

	return subject.String(), body.String(), nil
}

// New picks the transport from MAIL_DRIVER. Gmail SMTP is used when the driver is "smtp".
func New(cfg config.Config, logger *zap.SugaredLogger) Client {
	if cfg.Mail.DRIVER == "smtp" {
		return NewGmailMailer(cfg.Mail.GMAIL_USERNAME, cfg.Mail.GMAIL_APP_PASSWORD, logger)
	}

	return NewSendgrid(cfg.Mail.SEND_GRID.API_KEY, cfg.Mail.FROM_EMAIL, cfg.IsProduction(), logger)
}
