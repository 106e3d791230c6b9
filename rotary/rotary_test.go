package rotary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const debounce = 5 * time.Millisecond

var base = time.Unix(1000, 0)

// cwPairs is one full clockwise Gray cycle starting from 00.
var cwPairs = [][2]bool{
	{false, true},
	{true, true},
	{true, false},
	{false, false},
}

// feed plays the pin pairs with a safe gap between transitions.
func feed(c *Channel, pairs [][2]bool, start time.Time) time.Time {
	t := start
	for _, p := range pairs {
		t = t.Add(2 * debounce)
		c.Edge(p[0], p[1], t)
	}
	return t
}

// ccwPairs is one full counter-clockwise cycle starting from 00.
var ccwPairs = [][2]bool{
	{true, false},
	{true, true},
	{false, true},
	{false, false},
}

func TestClockwiseCycleCountsUp(t *testing.T) {
	c := NewChannel(false, false, debounce)
	feed(c, cwPairs, base)
	assert.Equal(t, int32(4), c.Position())
}

func TestCounterClockwiseCycleCountsDown(t *testing.T) {
	c := NewChannel(false, false, debounce)
	feed(c, ccwPairs, base)
	assert.Equal(t, int32(-4), c.Position())
}

func TestMixedSequenceIsSignedSum(t *testing.T) {
	c := NewChannel(false, false, debounce)
	end := feed(c, cwPairs, base) // +4
	end = feed(c, cwPairs, end)   // +4
	feed(c, ccwPairs, end)        // -4
	assert.Equal(t, int32(4), c.Position())
}

func TestIllegalJumpIgnored(t *testing.T) {
	c := NewChannel(false, false, debounce)
	// Both lines flip at once: 00 -> 11 is not Gray-adjacent.
	c.Edge(true, true, base.Add(2*debounce))
	assert.Equal(t, int32(0), c.Position())

	// Decoder state is untouched, a legal step from 00 still counts.
	c.Edge(false, true, base.Add(4*debounce))
	assert.Equal(t, int32(1), c.Position())
}

func TestRepeatedPairIgnored(t *testing.T) {
	c := NewChannel(false, false, debounce)
	c.Edge(false, false, base.Add(2*debounce))
	assert.Equal(t, int32(0), c.Position())
}

func TestChatterWithinDebounceRejected(t *testing.T) {
	c := NewChannel(false, false, debounce)
	c.Edge(false, true, base)
	// Legal next step, but only 1ms later.
	c.Edge(true, true, base.Add(time.Millisecond))
	assert.Equal(t, int32(1), c.Position())

	// Same step after the window is accepted.
	c.Edge(true, true, base.Add(2*debounce))
	assert.Equal(t, int32(2), c.Position())
}

func TestConsumeDrainsTowardPosition(t *testing.T) {
	c := NewChannel(false, false, debounce)
	feed(c, cwPairs[:2], base)
	assert.Equal(t, int32(2), c.Pending())

	assert.Equal(t, 1, c.Consume())
	assert.Equal(t, 1, c.Consume())
	assert.Equal(t, 0, c.Consume())
	assert.Equal(t, int32(0), c.Pending())
}

func TestConsumeNegativeDirection(t *testing.T) {
	c := NewChannel(false, false, debounce)
	feed(c, ccwPairs, base)

	for i := 0; i < 4; i++ {
		assert.Equal(t, -1, c.Consume())
	}
	assert.Equal(t, 0, c.Consume())
}
