package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	var ran int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := p.SubmitWait(func() {
			defer wg.Done()
			atomic.AddInt64(&ran, 1)
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, int64(20), atomic.LoadInt64(&ran))
}

func TestPoolSubmitFullReturnsError(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	block := make(chan struct{})
	// Occupy the only worker, then fill the buffered queue.
	require.NoError(t, p.SubmitWait(func() { <-block }))

	saturated := false
	for i := 0; i < 10; i++ {
		if err := p.Submit(func() { <-block }); err != nil {
			assert.ErrorIs(t, err, ErrPoolFull)
			saturated = true
			break
		}
	}
	assert.True(t, saturated, "pool should eventually report full")
	close(block)
}

func TestPoolShutdownWaitsForInflight(t *testing.T) {
	p := New(2)

	var done int64
	for i := 0; i < 4; i++ {
		require.NoError(t, p.SubmitWait(func() {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&done, 1)
		}))
	}

	p.Shutdown()
	assert.Equal(t, int64(4), atomic.LoadInt64(&done))

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolRecoversFromPanic(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	require.NoError(t, p.SubmitWait(func() { panic("boom") }))

	var ok int64
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, p.SubmitWait(func() {
		defer wg.Done()
		atomic.AddInt64(&ok, 1)
	}))
	wg.Wait()
	assert.Equal(t, int64(1), atomic.LoadInt64(&ok))
}
