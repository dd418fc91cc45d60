package utils

import (
	"crm-app/config"

	"gopkg.in/gomail.v2"
)

// Mail is one outgoing HTML message.
type Mail struct {
	To      []string
	Subject string
	Body    string
}

// SMTPMailer sends through the configured SMTP server.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailerFromConfig() *SMTPMailer {
	return &SMTPMailer{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUser,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(mail Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.Body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(msg)
}
