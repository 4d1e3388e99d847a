package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotification struct {
	via  []string
	data MailData
}

func (n *stubNotification) Via() []string   { return n.via }
func (n *stubNotification) ToMail() MailData { return n.data }

func TestSendDeliversMail(t *testing.T) {
	var gotTo string
	var gotData MailData
	SetTransport(func(to string, d MailData) error {
		gotTo = to
		gotData = d
		return nil
	})
	t.Cleanup(func() { SetTransport(nil) })

	n := &stubNotification{
		via:  []string{"mail"},
		data: MailData{Subject: "Order successful.", Text: "hi"},
	}
	errs := Send("buyer@example.com", n)

	require.Empty(t, errs)
	assert.Equal(t, "buyer@example.com", gotTo)
	assert.Equal(t, "Order successful.", gotData.Subject)
}

func TestSendMailDataToOverridesAddress(t *testing.T) {
	var gotTo string
	SetTransport(func(to string, d MailData) error {
		gotTo = to
		return nil
	})
	t.Cleanup(func() { SetTransport(nil) })

	n := &stubNotification{
		via:  []string{"mail"},
		data: MailData{To: "seller@example.com", Subject: "s"},
	}
	Send("buyer@example.com", n)

	assert.Equal(t, "seller@example.com", gotTo)
}

func TestSendCollectsTransportErrors(t *testing.T) {
	SetTransport(func(to string, d MailData) error {
		return errors.New("smtp down")
	})
	t.Cleanup(func() { SetTransport(nil) })

	n := &stubNotification{via: []string{"mail"}}
	errs := Send("buyer@example.com", n)

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "smtp down")
}

func TestSendUnknownChannel(t *testing.T) {
	n := &stubNotification{via: []string{"sms"}}
	errs := Send("buyer@example.com", n)

	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "unknown channel")
}
