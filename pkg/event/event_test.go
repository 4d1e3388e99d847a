package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireInvokesListenersInOrder(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var got []string
	Listen("order.created", func(p any) { got = append(got, "first:"+p.(string)) })
	Listen("order.created", func(p any) { got = append(got, "second:"+p.(string)) })

	Fire("order.created", "abc")

	assert.Equal(t, []string{"first:abc", "second:abc"}, got)
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.NotPanics(t, func() { Fire("nothing.registered", nil) })
}

func TestFireAsyncFlush(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var n int64
	Listen("ping", func(any) { atomic.AddInt64(&n, 1) })
	Listen("ping", func(any) { atomic.AddInt64(&n, 1) })

	FireAsync("ping", nil)
	Flush()

	assert.Equal(t, int64(2), atomic.LoadInt64(&n))
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var ran bool
	Listen("boom", func(any) { panic("bad listener") })
	Listen("boom", func(any) { ran = true })

	assert.NotPanics(t, func() { Fire("boom", nil) })
	assert.True(t, ran)
}
