package button

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const debounce = 50 * time.Millisecond

var t0 = time.Unix(1000, 0)

func TestFullPressCycleEmitsExactlyOnce(t *testing.T) {
	c := NewChannel(debounce)
	assert.Equal(t, Up, c.State())

	c.Edge(true, t0)
	assert.Equal(t, DebouncingDown, c.State())

	// Window not yet elapsed.
	assert.False(t, c.Confirm(true, t0.Add(debounce-time.Millisecond)))
	assert.Equal(t, DebouncingDown, c.State())

	assert.True(t, c.Confirm(true, t0.Add(debounce)))
	assert.Equal(t, Down, c.State())
	assert.True(t, c.PendingPress())

	// Further confirms while held do not produce more events.
	assert.False(t, c.Confirm(true, t0.Add(2*debounce)))
	c.MarkDelivered()
	assert.False(t, c.PendingPress())

	t1 := t0.Add(time.Second)
	c.Edge(false, t1)
	assert.Equal(t, DebouncingUp, c.State())

	// Release confirmation emits nothing.
	assert.False(t, c.Confirm(false, t1.Add(debounce)))
	assert.Equal(t, Up, c.State())
	assert.False(t, c.PendingPress())
}

func TestBounceFullyInsideWindowYieldsNothing(t *testing.T) {
	c := NewChannel(debounce)
	c.Edge(true, t0)
	// Pin reads inactive again by the time the window closes.
	assert.False(t, c.Confirm(false, t0.Add(debounce)))
	assert.Equal(t, Up, c.State())
	assert.False(t, c.PendingPress())
}

func TestReleaseBounceRevertsToDown(t *testing.T) {
	c := NewChannel(debounce)
	c.Edge(true, t0)
	c.Confirm(true, t0.Add(debounce))
	c.MarkDelivered()

	t1 := t0.Add(time.Second)
	c.Edge(false, t1)
	// Still held when the window closes: noise on release.
	assert.False(t, c.Confirm(true, t1.Add(debounce)))
	assert.Equal(t, Down, c.State())
	assert.False(t, c.PendingPress())
}

func TestNoStageSkipping(t *testing.T) {
	c := NewChannel(debounce)

	// Release edge in Up is a no-op.
	c.Edge(false, t0)
	assert.Equal(t, Up, c.State())

	c.Edge(true, t0)
	// Another press edge while already debouncing is a no-op.
	c.Edge(true, t0.Add(time.Millisecond))
	// A release edge in DebouncingDown is a no-op too.
	c.Edge(false, t0.Add(2*time.Millisecond))
	assert.Equal(t, DebouncingDown, c.State())

	c.Confirm(true, t0.Add(debounce))
	assert.Equal(t, Down, c.State())

	// Press edge while Down is a no-op.
	c.Edge(true, t0.Add(debounce+time.Millisecond))
	assert.Equal(t, Down, c.State())
}

func TestConfirmIsNoopOutsideDebouncingStates(t *testing.T) {
	c := NewChannel(debounce)
	assert.False(t, c.Confirm(true, t0))
	assert.Equal(t, Up, c.State())
}
