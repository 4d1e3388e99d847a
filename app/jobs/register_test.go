package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/queue"
)

// recordingDriver captures pushed payloads without processing them.
type recordingDriver struct {
	pushed [][]byte
}

func (d *recordingDriver) Push(payload []byte) error {
	d.pushed = append(d.pushed, payload)
	return nil
}

func (d *recordingDriver) Pop(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestOrderCreatedDispatchesBothEmails(t *testing.T) {
	event.Reset()
	t.Cleanup(func() {
		event.Reset()
		queue.SetDriver(queue.NewMemoryDriver())
	})

	driver := &recordingDriver{}
	queue.SetDriver(driver)

	Register()

	order := models.Order{
		Customer: models.Customer{Email: "buyer@example.com", Name: "Buyer"},
		Seller:   "seller@example.com",
	}
	event.Fire(services.OrderCreated, order)

	require.Len(t, driver.pushed, 2)

	var types []string
	for _, raw := range driver.pushed {
		var env struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		types = append(types, env.Type)
	}
	assert.Contains(t, types, "*jobs.CustomerOrderEmailJob")
	assert.Contains(t, types, "*jobs.SellerOrderEmailJob")
}

func TestOrderCreatedIgnoresWrongPayload(t *testing.T) {
	event.Reset()
	t.Cleanup(func() {
		event.Reset()
		queue.SetDriver(queue.NewMemoryDriver())
	})

	driver := &recordingDriver{}
	queue.SetDriver(driver)

	Register()
	event.Fire(services.OrderCreated, "not an order")

	assert.Empty(t, driver.pushed)
}
