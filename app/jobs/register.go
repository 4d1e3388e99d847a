package jobs

import (
	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/event"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/queue"
)

// Register wires the job type registry and the order.created listener.
// Call once at boot, before queue workers start.
func Register() {
	queue.Register("*jobs.CustomerOrderEmailJob", func() queue.Job { return &CustomerOrderEmailJob{} })
	queue.Register("*jobs.SellerOrderEmailJob", func() queue.Job { return &SellerOrderEmailJob{} })

	event.Listen(services.OrderCreated, func(payload any) {
		order, ok := payload.(models.Order)
		if !ok {
			logger.Error("jobs: unexpected order.created payload", "payload", payload)
			return
		}
		for _, job := range NewOrderJobs(order) {
			if err := queue.Dispatch(job); err != nil {
				// Fire and forget: a dead queue never fails the order.
				logger.Error("jobs: dispatch failed", "error", err)
			}
		}
	})
}
