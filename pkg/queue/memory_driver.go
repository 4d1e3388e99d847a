package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by MemoryDriver.Push when the buffer is at
// capacity. Dispatch is fire-and-forget on the request path, so the job is
// logged and dropped rather than blocking a handler.
var ErrQueueFull = errors.New("queue: memory buffer full")

const defaultMemoryCapacity = 1024

// MemoryDriver is an in-process, channel-backed queue driver. It is the
// default for development and tests; jobs do not survive a restart.
type MemoryDriver struct {
	jobs chan []byte
}

// NewMemoryDriver creates an in-memory queue with the default capacity.
func NewMemoryDriver() *MemoryDriver {
	return NewMemoryDriverSize(defaultMemoryCapacity)
}

// NewMemoryDriverSize creates an in-memory queue buffering up to capacity
// pending jobs.
func NewMemoryDriverSize(capacity int) *MemoryDriver {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryDriver{jobs: make(chan []byte, capacity)}
}

// Push enqueues a payload without blocking.
func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.jobs <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop blocks until a payload arrives or ctx is cancelled.
func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.jobs:
		return payload, nil
	}
}
