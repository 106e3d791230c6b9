// Package button turns a raw digital line into a confirmed press
// stream via a four-state debounce machine.
//
// The machine strictly cycles Up -> DebouncingDown -> Down ->
// DebouncingUp -> Up. Edges move it into a debouncing state from
// interrupt context; Confirm re-samples the line from the cooperative
// loop once the debounce window has elapsed and either commits the
// transition or rolls it back as noise. Exactly one press is produced
// per full cycle, on confirmation of Down.
package button

import (
	"sync/atomic"
	"time"
)

type State uint32

const (
	Up State = iota
	DebouncingDown
	Down
	DebouncingUp
)

func (s State) String() string {
	switch s {
	case Up:
		return "Up"
	case DebouncingDown:
		return "DebouncingDown"
	case Down:
		return "Down"
	case DebouncingUp:
		return "DebouncingUp"
	default:
		return "Unknown"
	}
}

type Channel struct {
	state     atomic.Uint32
	changedAt atomic.Int64 // ns of the edge that started debouncing

	// pending is true while a confirmed press has not been delivered.
	// Confirm sets it, MarkDelivered clears it; both run in the
	// cooperative loop.
	pending bool

	debounce int64 // ns
}

func NewChannel(debounce time.Duration) *Channel {
	return &Channel{debounce: int64(debounce)}
}

// Edge feeds one edge of the button line, active meaning pressed.
// Interrupt context: it only moves Up->DebouncingDown and
// Down->DebouncingUp; everything else is left for Confirm.
func (c *Channel) Edge(active bool, now time.Time) {
	if active {
		if c.state.CompareAndSwap(uint32(Up), uint32(DebouncingDown)) {
			c.changedAt.Store(now.UnixNano())
		}
	} else {
		if c.state.CompareAndSwap(uint32(Down), uint32(DebouncingUp)) {
			c.changedAt.Store(now.UnixNano())
		}
	}
}

// Confirm advances the machine out of a debouncing state once the
// window has elapsed, using a fresh sample of the line. Cooperative
// context only. It returns true when a press was newly confirmed.
func (c *Channel) Confirm(active bool, now time.Time) bool {
	switch State(c.state.Load()) {
	case DebouncingDown:
		if now.UnixNano()-c.changedAt.Load() < c.debounce {
			return false
		}
		if !active {
			// Bounce that never settled; forget it.
			c.state.Store(uint32(Up))
			return false
		}
		c.state.Store(uint32(Down))
		c.pending = true
		return true
	case DebouncingUp:
		if now.UnixNano()-c.changedAt.Load() < c.debounce {
			return false
		}
		if active {
			c.state.Store(uint32(Down))
			return false
		}
		// Release confirmed; no event on release.
		c.state.Store(uint32(Up))
		return false
	default:
		return false
	}
}

// PendingPress reports whether a confirmed press still awaits
// delivery.
func (c *Channel) PendingPress() bool {
	return c.pending
}

// MarkDelivered records that the pending press was emitted.
func (c *Channel) MarkDelivered() {
	c.pending = false
}

// State returns the current debounce state.
func (c *Channel) State() State {
	return State(c.state.Load())
}
