package notifier

import "log"

// EmailNotifier is the notification stub. It logs the outgoing message;
// swapping in a real SMTP/SendGrid sender only touches this type.
type EmailNotifier struct{}

func New() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) SendEmail(to, subject, body string) {
	log.Printf("notifier: email to %s: %s - %s", to, subject, body)
}
