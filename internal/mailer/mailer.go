package mailer

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
)

// Mailer sends booking confirmations. Implementations report transport
// success as a boolean and never propagate errors past their boundary.
type Mailer interface {
	SendAppointmentConfirmation(patient, doctor *models.User, appointment *models.Appointment) bool
}

// SMTPMailer delivers confirmation emails over an authenticated SMTP
// connection configured from the environment.
type SMTPMailer struct {
	cfg config.MailerConfig
}

// NewSMTPMailer creates a mailer for the given transport configuration.
func NewSMTPMailer(cfg config.MailerConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendAppointmentConfirmation formats and sends the confirmation to the
// patient's email address. Returns true on transport success.
func (m *SMTPMailer) SendAppointmentConfirmation(patient, doctor *models.User, appointment *models.Appointment) bool {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("Clinic360 <%s>", m.cfg.From))
	msg.SetHeader("To", patient.Email)
	msg.SetHeader("Subject", ConfirmationSubject(doctor))
	msg.SetBody("text/plain", ConfirmationBody(patient, doctor, appointment))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("Error sending appointment email to %s: %v", patient.Email, err)
		return false
	}

	log.Printf("Appointment confirmation email sent to %s", patient.Email)
	return true
}

// ConfirmationSubject builds the subject line for a booking confirmation.
func ConfirmationSubject(doctor *models.User) string {
	return fmt.Sprintf("Appointment Confirmation with Dr. %s", doctor.FullName)
}

// ConfirmationBody builds the plain-text confirmation message.
func ConfirmationBody(patient, doctor *models.User, appointment *models.Appointment) string {
	reason := appointment.Reason
	if reason == "" {
		reason = "Not specified"
	}

	return fmt.Sprintf(`Dear %s,

Your appointment has been scheduled with Dr. %s.

Appointment Details:
- Date: %s
- Time: %s - %s
- Reason: %s

Location: Clinic360 Medical Center

Please arrive 15 minutes before your scheduled time. If you need to reschedule or cancel your appointment, please contact us as soon as possible.

Best regards,
Clinic360 Team
`, patient.FullName, doctor.FullName,
		FormatDateTime(appointment.StartTime),
		FormatDateTime(appointment.StartTime), FormatDateTime(appointment.EndTime),
		reason)
}

// FormatDateTime renders a timestamp like "January 02, 2006 at 03:04 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("January 02, 2006 at 03:04 PM")
}
