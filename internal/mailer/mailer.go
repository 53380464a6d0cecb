package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/stayviet/stayviet/pkg/logger"
)

type Service interface {
	SendVerificationEmail(toEmail, toName, verifyURL string) error
}

type MailerSendClient struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	return &MailerSendClient{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSendClient) SendVerificationEmail(toEmail, toName, verifyURL string) error {
	subject := "Verify your StayViet account"
	html := fmt.Sprintf(`
		<h2>Welcome to StayViet!</h2>
		<p>Hi %s,</p>
		<p>Please verify your email address by clicking the link below:</p>
		<p><a href="%s">Verify Email</a></p>
		<p>This link will expire in 2 hours.</p>
		<p>If you didn't create an account with us, please ignore this email.</p>
	`, toName, verifyURL)
	text := fmt.Sprintf("Please verify your email by clicking this link: %s", verifyURL)

	message := m.client.Email.NewMessage()
	message.SetFrom(m.from)
	message.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	message.SetSubject(subject)
	message.SetHTML(html)
	message.SetText(text)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.client.Email.Send(ctx, message)
	return err
}

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (d *DevMailer) SendVerificationEmail(toEmail, toName, verifyURL string) error {
	logger.Info("[DEV MAIL] verification email",
		"to", toEmail,
		"name", toName,
		"verify_url", verifyURL,
	)
	return nil
}
