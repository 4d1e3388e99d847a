// Package notification delivers user-facing notifications.
//
// Define a Notification:
//
//	type OrderPlacedNotification struct { Order models.Order }
//	func (n *OrderPlacedNotification) Via() []string { return []string{"mail"} }
//	func (n *OrderPlacedNotification) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Order successful.",
//	        Text:    "You've placed an order successfully.",
//	    }
//	}
//
// Send:
//
//	notification.Send("user@example.com", &OrderPlacedNotification{Order: order})
package notification

import (
	"fmt"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/mail"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names. Only "mail" is wired.
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Transport delivers mail for one recipient. Swappable in tests.
type Transport func(to string, d MailData) error

var transport Transport = smtpTransport

// SetTransport replaces the delivery mechanism. Pass nil to restore SMTP.
func SetTransport(t Transport) {
	if t == nil {
		t = smtpTransport
	}
	transport = t
}

// Send dispatches the notification through all channels returned by Via().
// address is the email address used for the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			metrics.MailSent("error")
			errs = append(errs, err)
			continue
		}
		if channel == "mail" {
			metrics.MailSent("ok")
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
func SendAsync(address string, n Notification) {
	go func() {
		if errs := Send(address, n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	}()
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	return transport(to, d)
}

func smtpTransport(to string, d MailData) error {
	if d.Body != "" {
		return mail.To(to).Subject(d.Subject).Body(d.Body).Send()
	}
	return mail.To(to).Subject(d.Subject).Text(d.Text).Send()
}
