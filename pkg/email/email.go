package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// Config holds SMTP settings plus the frontend URL reset links point at.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	AppName      string
}

// Sender delivers transactional mail over SMTP.
type Sender struct {
	config Config
}

// NewSender creates a new mail sender
func NewSender(config Config) *Sender {
	return &Sender{config: config}
}

// SendPasswordResetEmail mails a reset link carrying the given token.
func (s *Sender) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderPasswordReset(toEmail, resetURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", s.config.AppName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.send(toEmail, message)
}

func (s *Sender) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

func (s *Sender) renderPasswordReset(email, resetURL string) (string, error) {
	tmpl, err := template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Email    string
		ResetURL string
		AppName  string
	}{
		Email:    email,
		ResetURL: resetURL,
		AppName:  s.config.AppName,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; background-color: #f5f6f8;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 32px 0;">
                <table role="presentation" style="max-width: 560px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1d4ed8; padding: 28px 24px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px 24px;">
                            <h2 style="color: #111827; margin: 0 0 16px 0; font-size: 20px;">Reset Your Password</h2>
                            <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 16px 0;">
                                We received a request to reset the password for the account
                                registered to <strong>{{.Email}}</strong>.
                            </p>
                            <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 24px 0;">
                                Click the button below to choose a new password. The link expires
                                in <strong>1 hour</strong>.
                            </p>
                            <table role="presentation" style="margin: 0 auto 24px auto;">
                                <tr>
                                    <td style="background-color: #1d4ed8; border-radius: 6px;">
                                        <a href="{{.ResetURL}}" style="display: inline-block; padding: 12px 28px; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600;">
                                            Reset Password
                                        </a>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #6b7280; font-size: 13px; line-height: 1.6; margin: 0 0 12px 0;">
                                If you did not request this, you can ignore this email and your
                                password will stay unchanged.
                            </p>
                            <p style="color: #6b7280; font-size: 13px; line-height: 1.6; margin: 0; word-break: break-all;">
                                Or paste this link into your browser:
                                <a href="{{.ResetURL}}" style="color: #1d4ed8;">{{.ResetURL}}</a>
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f9fafb; padding: 20px 24px; text-align: center; border-top: 1px solid #e5e7eb;">
                            <p style="color: #9ca3af; font-size: 12px; margin: 0;">
                                Sent by {{.AppName}}
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
