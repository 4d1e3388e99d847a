// Package jobs defines the queued background work and wires the event
// listeners that dispatch it.
package jobs

import (
	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/notification"
	"github.com/shashiranjanraj/plantnet/pkg/queue"
)

// CustomerOrderEmailJob mails the buyer their order confirmation.
type CustomerOrderEmailJob struct {
	Email   string `json:"email"`
	OrderID string `json:"order_id"`
}

func (j *CustomerOrderEmailJob) Handle() error {
	errs := notification.Send(j.Email, &orderPlacedNotification{orderID: j.OrderID})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// SellerOrderEmailJob mails the seller that an order needs processing.
type SellerOrderEmailJob struct {
	Email        string `json:"email"`
	CustomerName string `json:"customer_name"`
}

func (j *SellerOrderEmailJob) Handle() error {
	errs := notification.Send(j.Email, &orderToProcessNotification{customerName: j.CustomerName})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// NewOrderJobs builds the two jobs an order.created event fans out into.
func NewOrderJobs(order models.Order) []queue.Job {
	return []queue.Job{
		&CustomerOrderEmailJob{
			Email:   order.Customer.Email,
			OrderID: order.ID.Hex(),
		},
		&SellerOrderEmailJob{
			Email:        order.Seller,
			CustomerName: order.Customer.Name,
		},
	}
}

// ─── Notifications ────────────────────────────────────────────────────────────

type orderPlacedNotification struct {
	orderID string
}

func (n *orderPlacedNotification) Via() []string { return []string{"mail"} }

func (n *orderPlacedNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Order successful.",
		Text:    "You've placed an order successfully. Transaction id: " + n.orderID,
	}
}

type orderToProcessNotification struct {
	customerName string
}

func (n *orderToProcessNotification) Via() []string { return []string{"mail"} }

func (n *orderToProcessNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Hurray!, You have an order to process.",
		Text:    "Get the plants ready for " + n.customerName,
	}
}
