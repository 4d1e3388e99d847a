package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/notification"
)

func captureMail(t *testing.T) *[]notification.MailData {
	t.Helper()
	var sent []notification.MailData
	notification.SetTransport(func(to string, d notification.MailData) error {
		d.To = to
		sent = append(sent, d)
		return nil
	})
	t.Cleanup(func() { notification.SetTransport(nil) })
	return &sent
}

func TestCustomerOrderEmail(t *testing.T) {
	sent := captureMail(t)

	job := &CustomerOrderEmailJob{Email: "buyer@example.com", OrderID: "65f000000000000000000001"}
	require.NoError(t, job.Handle())

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "buyer@example.com", mail.To)
	assert.Equal(t, "Order successful.", mail.Subject)
	assert.Equal(t, "You've placed an order successfully. Transaction id: 65f000000000000000000001", mail.Text)
}

func TestSellerOrderEmail(t *testing.T) {
	sent := captureMail(t)

	job := &SellerOrderEmailJob{Email: "seller@example.com", CustomerName: "Buyer"}
	require.NoError(t, job.Handle())

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "seller@example.com", mail.To)
	assert.Equal(t, "Hurray!, You have an order to process.", mail.Subject)
	assert.Equal(t, "Get the plants ready for Buyer", mail.Text)
}

func TestNewOrderJobsFansOutToBothParties(t *testing.T) {
	id := primitive.NewObjectID()
	order := models.Order{
		ID:       id,
		Customer: models.Customer{Email: "buyer@example.com", Name: "Buyer"},
		Seller:   "seller@example.com",
	}

	jobs := NewOrderJobs(order)
	require.Len(t, jobs, 2)

	customer, ok := jobs[0].(*CustomerOrderEmailJob)
	require.True(t, ok)
	assert.Equal(t, "buyer@example.com", customer.Email)
	assert.Equal(t, id.Hex(), customer.OrderID)

	seller, ok := jobs[1].(*SellerOrderEmailJob)
	require.True(t, ok)
	assert.Equal(t, "seller@example.com", seller.Email)
	assert.Equal(t, "Buyer", seller.CustomerName)
}
