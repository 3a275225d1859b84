package service

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"inkwell/internal/config"
	"inkwell/internal/model"
)

// Mailer is the outbound mail collaborator. The SMTP implementation lives
// behind an interface so the onboarding flow is testable without a relay.
type Mailer interface {
	SendOTP(to, name, code string) error
	SendContact(req *model.ContactRequest) error
}

// SMTPMailer delivers mail through a configured SMTP relay via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.MailFrom,
		inbox:  cfg.ContactInbox,
	}
}

// SendOTP dispatches a verification code to a pending registration.
func (m *SMTPMailer) SendOTP(to, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s. It expires in %d minutes.\n",
		name, code, int(model.OTPCodeTTL.Minutes()),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: send otp mail: %v", model.ErrUpstream, err)
	}
	return nil
}

// SendContact forwards a contact-form submission to the site inbox.
func (m *SMTPMailer) SendContact(req *model.ContactRequest) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.inbox)
	msg.SetHeader("Reply-To", req.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Contact form: %s", req.Name))
	msg.SetBody("text/plain", req.Message)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: send contact mail: %v", model.ErrUpstream, err)
	}
	return nil
}
