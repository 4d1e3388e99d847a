// Package queue runs background jobs for plantNet: order confirmation
// mail, seller notifications, and anything else that should not block an
// HTTP response. Jobs are serialized as JSON envelopes so the same code
// works against the in-memory driver and Redis.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// Job is the unit of background work. Implementations must be JSON
// marshalable, since the payload round-trips through the driver.
type Job interface {
	Handle() error
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	// Pop blocks until a payload is available or ctx is cancelled.
	// A (nil, nil) return means "nothing yet, poll again".
	Pop(ctx context.Context) ([]byte, error)
}

// DelayedDriver is implemented by drivers that can hold a payload until
// a due time, like the Redis driver's scheduled set.
type DelayedDriver interface {
	PushDelayed(payload []byte, delay time.Duration) error
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// envelope is the wire format: the concrete type name picks the factory
// on the consuming side.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager owns the driver, the job-type registry and the failure log.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the storage backend, e.g. for Redis in production.
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets how many attempts a job gets before it is recorded
// as failed.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register maps a job type name to its factory so workers can rebuild
// the job from its envelope. Call once at boot per job type.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

func (m *Manager) currentDriver() Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.driver
}

func seal(job Job) (typeName string, env []byte, err error) {
	typeName = fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return "", nil, fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}

	env, err = json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return "", nil, fmt.Errorf("queue: marshal envelope: %w", err)
	}
	return typeName, env, nil
}

// Dispatch pushes job onto the queue for immediate processing.
func Dispatch(job Job) error {
	typeName, env, err := seal(job)
	if err != nil {
		return err
	}
	if err := defaultManager.currentDriver().Push(env); err != nil {
		return err
	}
	metrics.QueueJobDispatched(typeName)
	return nil
}

// DispatchAfter schedules job to run once delay has passed. Drivers that
// implement DelayedDriver hold the payload themselves; otherwise a
// goroutine sleeps out the delay in-process, which does not survive a
// restart.
func DispatchAfter(job Job, delay time.Duration) {
	d := defaultManager.currentDriver()

	if dd, ok := d.(DelayedDriver); ok {
		typeName, env, err := seal(job)
		if err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
			return
		}
		if err := dd.PushDelayed(env, delay); err != nil {
			logger.Error("queue: delayed dispatch failed", "type", typeName, "error", err)
			return
		}
		metrics.QueueJobDispatched(typeName)
		return
	}

	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

// StartWorkers launches n workers consuming from the queue until ctx is
// cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.consume(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) consume(ctx context.Context) {
	for ctx.Err() == nil {
		raw, err := m.currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}
		m.handle(raw)
	}
}

// handle unwraps one envelope and runs the job with retries.
func (m *Manager) handle(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		lastErr = job.Handle()
		if lastErr == nil {
			logger.Info("queue: job processed", "type", env.Type)
			metrics.QueueJobProcessed(env.Type)
			return
		}
		logger.Warn("queue: job failed, retrying",
			"type", env.Type, "attempt", attempt, "error", lastErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	m.persistFailed(job, env.Type, lastErr, m.maxRetry)
	metrics.QueueJobFailed(env.Type)
	logger.Error("queue: job exhausted retries", "type", env.Type, "error", lastErr)
}

// FailedJobs returns a snapshot of the in-memory failure log.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
