package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"go-contact-backend/config"
	"go-contact-backend/internal/domain"
)

// Identity is the fixed site identity stamped on every notification.
type Identity struct {
	SiteName string
	SiteURL  string
	AdminTo  string // operator mailbox
	BCC      string // monitoring blind copy
}

func NewIdentity(cfg *config.Config) Identity {
	return Identity{
		SiteName: cfg.SiteName,
		SiteURL:  cfg.SiteURL,
		AdminTo:  cfg.ContactEmailTo,
		BCC:      cfg.ContactBCC,
	}
}

// templateData carries pre-escaped values into the templates. Field
// values were entity-escaped at intake, so they are injected as-is to
// avoid double escaping.
type templateData struct {
	SiteName string
	SiteURL  string
	FullName template.HTML
	Email    template.HTML
	Phone    template.HTML
	Message  template.HTML
}

const adminNotificationTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Contact Message</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f6f6f6; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 8px; padding: 40px 30px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.05); }
        h2 { color: #D9A836; text-align: center; }
        p { color: #333333; line-height: 1.6; }
        strong { color: #000000; }
        .message { background-color: #f0f0f0; padding: 15px; border-radius: 6px; font-style: italic; color: #444444; }
        .footer { font-size: 12px; color: #aaaaaa; text-align: center; margin-top: 30px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>New Contact Message from Website</h2>
        <p><strong>Name:</strong> {{.FullName}}</p>
        <p><strong>Email:</strong> {{.Email}}</p>
        <p><strong>Phone:</strong> {{.Phone}}</p>
        <p><strong>Message:</strong></p>
        <div class="message">{{.Message}}</div>
        <div class="footer">
            <p>{{.SiteName}} Team</p>
        </div>
    </div>
</body>
</html>`

const acknowledgmentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Email Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f6f6f6; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 8px; padding: 40px 30px; text-align: center; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.05); }
        .header { color: #D9A836; }
        p { color: #666666; line-height: 1.6; }
        .btn { display: inline-block; background-color: #D9A836; color: #ffffff !important; padding: 12px 24px; border-radius: 30px; text-decoration: none; font-weight: bold; margin-top: 30px; }
        .footer { font-size: 12px; color: #aaaaaa; margin-top: 30px; }
    </style>
</head>
<body>
    <div class="container">
        <h2 class="header">Hi {{.FullName}},</h2>
        <p>Thank you for reaching out to us. We&rsquo;ve received your message and will get back to you shortly.</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p><strong>Your Message:</strong></p>
        <p style="font-style: italic; color: #444444;">{{.Message}}</p>
        <a href="{{.SiteURL}}" class="btn">VISIT WEBSITE</a>
        <div class="footer">
            <p>Regards,<br>{{.SiteName}} Team</p>
        </div>
    </div>
</body>
</html>`

var (
	adminTmpl = template.Must(template.New("admin").Parse(adminNotificationTemplate))
	ackTmpl   = template.Must(template.New("ack").Parse(acknowledgmentTemplate))
)

// NewAdminNotification renders the operator-facing envelope. Reply-To is
// the submitter so the operator can answer directly.
func NewAdminNotification(id Identity, rec *domain.ContactFormRecord) (domain.Envelope, error) {
	body, err := render(adminTmpl, id, rec)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{
		To:       id.AdminTo,
		BCC:      id.BCC,
		ReplyTo:  rec.Email,
		Subject:  fmt.Sprintf("New Contact Form Submission - %s", id.SiteName),
		HTMLBody: body,
	}, nil
}

// NewAcknowledgment renders the thank-you envelope sent to the submitter.
func NewAcknowledgment(id Identity, rec *domain.ContactFormRecord) (domain.Envelope, error) {
	body, err := render(ackTmpl, id, rec)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{
		To:       rec.Email,
		ToName:   rec.FullName,
		BCC:      id.BCC,
		Subject:  fmt.Sprintf("Thanks for contacting %s!", id.SiteName),
		HTMLBody: body,
	}, nil
}

func render(tmpl *template.Template, id Identity, rec *domain.ContactFormRecord) (string, error) {
	data := templateData{
		SiteName: id.SiteName,
		SiteURL:  id.SiteURL,
		FullName: template.HTML(rec.FullName),
		Email:    template.HTML(rec.Email),
		Phone:    template.HTML(rec.Phone),
		Message:  nl2br(rec.Message),
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// nl2br preserves line breaks of the (already escaped) message text.
func nl2br(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(s, "\n", "<br>"))
}
