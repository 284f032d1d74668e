// Package email renders the transactional email templates and sends them
// through Resend.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/deppfellow/tourism/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names a file under templates/ without its extension.
type Template string

const (
	TemplateWelcome         Template = "welcome"
	TemplateBookingReceived Template = "booking_received"
	TemplateBookingStatus   Template = "booking_status"
	TemplateContactAck      Template = "contact_ack"
)

// Templates lists every template that can be sent.
var Templates = []Template{
	TemplateWelcome,
	TemplateBookingReceived,
	TemplateBookingStatus,
	TemplateContactAck,
}

type Client struct {
	client    *resend.Client
	from      string
	templates *template.Template
	logger    *zerolog.Logger
}

// NewClient parses the embedded templates. Without a Resend API key the
// client renders but only logs outgoing mail.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	c := &Client{
		from:      cfg.Integration.EmailFrom,
		templates: tmpl,
		logger:    logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c, nil
}

// ParseTemplates loads the embedded templates with the sprig functions.
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("emails").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}
	return tmpl, nil
}

// Render executes name with data.
func Render(tmpl *template.Template, name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders name with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, name Template, data any) error {
	html, err := Render(c.templates, name, data)
	if err != nil {
		return err
	}

	if c.client == nil {
		c.logger.Info().
			Str("to", to).
			Str("template", string(name)).
			Str("subject", subject).
			Msg("email delivery disabled, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
