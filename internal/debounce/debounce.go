// Package debounce coalesces bursts of values into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the last value passed to Trigger once no further
// Trigger has happened for the configured delay.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	value   T
	pending bool
	seq     uint64 // incremented on every Trigger/Cancel; identifies the live timer
	stopped bool
}

// New creates a debouncer calling fn after delay of quiet.
// A non-positive delay makes Trigger call fn synchronously.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger records v as the latest value and restarts the quiet period
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.resetLocked()
		d.mu.Unlock()
		d.fn(v)
		return
	}

	d.seq++
	seq := d.seq
	d.value = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
	d.mu.Unlock()
}

// Flush delivers the pending value immediately, if any
func (d *Debouncer[T]) Flush() {
	if v, ok := d.Take(); ok {
		d.fn(v)
	}
}

// Take cancels the quiet period and returns the pending value instead of
// delivering it. ok is false when nothing was pending.
func (d *Debouncer[T]) Take() (v T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || d.stopped {
		return v, false
	}
	v = d.value
	d.resetLocked()
	return v, true
}

// Cancel drops the pending value without delivering it
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	d.resetLocked()
	d.mu.Unlock()
}

// Stop cancels any pending value and ignores all later triggers
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.resetLocked()
	d.stopped = true
	d.mu.Unlock()
}

// Pending reports whether a value is waiting for its quiet period to end
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	// A superseded timer may still run if Stop raced with expiry.
	if seq != d.seq || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.resetLocked()
	d.mu.Unlock()
	d.fn(v)
}

func (d *Debouncer[T]) resetLocked() {
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	var zero T
	d.value = zero
	d.pending = false
}
