package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSummaryPublished(toEmail, consultationDate string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

// SendSummaryPublished notifies the patient that their doctor released
// a consultation summary. Best effort: callers log failures and move on.
func (s *emailService) SendSummaryPublished(toEmail, consultationDate string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your consultation summary is available")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Consultation summary available</h2>
			<p>Your doctor has published the summary of your consultation on %s.</p>
			<p><a href="%s/dashboard">View it on your dashboard</a></p>
			<p>If you were not expecting this email, please contact your practice.</p>
		</div>
	`, consultationDate, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send summary notification to %s: %w", toEmail, err)
	}
	return nil
}
