package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerCoalesces(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestTriggerRunsLastFn(t *testing.T) {
	d := New(20 * time.Millisecond)

	var got atomic.Int32
	d.Trigger(func() { got.Store(1) })
	d.Trigger(func() { got.Store(2) })

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), got.Load())
}

func TestStopCancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
