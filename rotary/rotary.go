// Package rotary decodes the two-phase signal of a mechanical
// quadrature encoder into a signed step count.
//
// Edge runs in interrupt context and is the only writer of the
// position counter; Consume runs in the cooperative loop and is the
// only writer of the reported counter. The signed difference between
// the two is the number of not-yet-delivered steps.
package rotary

import (
	"sync/atomic"
	"time"
)

// Gray-code adjacency for the pin pair a<<1|b. Clockwise is the cycle
// 00 -> 01 -> 11 -> 10 -> 00, counter-clockwise its reverse. Any other
// jump is contact bounce and is ignored.
var (
	cwNext  = [4]uint8{0b01, 0b11, 0b00, 0b10}
	ccwNext = [4]uint8{0b10, 0b00, 0b11, 0b01}
)

type Channel struct {
	// Written only from interrupt context.
	pos          atomic.Int32
	prevPair     uint8
	lastAccepted int64 // ns, of the last accepted transition

	// Written only from the cooperative loop.
	reported int32

	debounce int64 // ns
}

// NewChannel seeds the decoder with the idle levels of the A and B
// lines so the first real transition is judged against them.
func NewChannel(a, b bool, debounce time.Duration) *Channel {
	return &Channel{
		prevPair: pinPair(a, b),
		debounce: int64(debounce),
	}
}

func pinPair(a, b bool) uint8 {
	var p uint8
	if a {
		p |= 0b10
	}
	if b {
		p |= 0b01
	}
	return p
}

// Edge feeds one sampled transition of either line. Interrupt context:
// bounded, non-blocking, no output side effects.
func (c *Channel) Edge(a, b bool, now time.Time) {
	pair := pinPair(a, b)
	if pair == c.prevPair {
		return
	}

	var dir int32
	switch pair {
	case cwNext[c.prevPair]:
		dir = 1
	case ccwNext[c.prevPair]:
		dir = -1
	default:
		// Both lines changed at once; not an adjacent Gray state.
		return
	}

	ns := now.UnixNano()
	if ns-c.lastAccepted < c.debounce {
		return
	}

	c.pos.Add(dir)
	c.prevPair = pair
	c.lastAccepted = ns
}

// Position returns the accepted step count.
func (c *Channel) Position() int32 {
	return c.pos.Load()
}

// Pending returns the number of steps not yet delivered as key events.
// The sign gives the direction.
func (c *Channel) Pending() int32 {
	return c.pos.Load() - c.reported
}

// Consume advances the reported counter one step toward the position
// and returns the direction taken: +1, -1, or 0 when nothing is
// pending. Cooperative context only.
func (c *Channel) Consume() int {
	switch d := c.pos.Load() - c.reported; {
	case d > 0:
		c.reported++
		return 1
	case d < 0:
		c.reported--
		return -1
	default:
		return 0
	}
}
