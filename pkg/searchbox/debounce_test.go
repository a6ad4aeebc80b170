package searchbox

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerFiresOnceWithLatest(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Int32
	var last atomic.Value

	for _, q := range []string{"a", "ab", "abc"} {
		q := q
		d.Trigger(func() {
			fired.Add(1)
			last.Store(q)
		})
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, "abc", last.Load())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, d.FireNow())
}

func TestDebouncerFireNow(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var fired atomic.Int32

	d.Trigger(func() { fired.Add(1) })

	assert.True(t, d.FireNow())
	assert.Equal(t, int32(1), fired.Load())

	// Consumed: a second fire does nothing.
	assert.False(t, d.FireNow())
	assert.Equal(t, int32(1), fired.Load())
}
