// Package event is a tiny in-process event bus. Listeners register for a
// named event; Fire invokes them synchronously in registration order, and
// FireAsync hands them to goroutines tracked by a WaitGroup so a graceful
// shutdown can Flush before exit.
package event

import (
	"sync"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

// Listener handles a fired event. The payload type is event-specific.
type Listener func(payload any)

type bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	wg        sync.WaitGroup
}

var defaultBus = &bus{listeners: map[string][]Listener{}}

// Listen registers fn for the named event.
func Listen(name string, fn Listener) {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners[name] = append(defaultBus.listeners[name], fn)
}

// Fire invokes every listener for name synchronously, in registration order.
// A panicking listener is recovered and logged; later listeners still run.
func Fire(name string, payload any) {
	for _, fn := range snapshot(name) {
		call(name, fn, payload)
	}
}

// FireAsync invokes every listener for name in its own goroutine.
func FireAsync(name string, payload any) {
	for _, fn := range snapshot(name) {
		fn := fn
		defaultBus.wg.Add(1)
		go func() {
			defer defaultBus.wg.Done()
			call(name, fn, payload)
		}()
	}
}

// Flush blocks until all FireAsync listeners have returned.
func Flush() {
	defaultBus.wg.Wait()
}

// Reset removes all registered listeners. Intended for tests.
func Reset() {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners = map[string][]Listener{}
}

func snapshot(name string) []Listener {
	defaultBus.mu.RLock()
	defer defaultBus.mu.RUnlock()
	out := make([]Listener, len(defaultBus.listeners[name]))
	copy(out, defaultBus.listeners[name])
	return out
}

func call(name string, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event listener panicked", "event", name, "panic", r)
		}
	}()
	fn(payload)
}
