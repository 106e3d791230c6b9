// Package dispatch runs the cooperative control loop: it polls the
// decoders and debouncers, emits key events over the link and keeps
// the status pixel current. All confirmation, emission and time-based
// decisions happen here, never in interrupt context.
package dispatch

import (
	"time"

	"rotary-keypad/button"
	"rotary-keypad/hal"
	"rotary-keypad/keys"
	"rotary-keypad/link"
	"rotary-keypad/protocol"
	"rotary-keypad/rotary"
	"rotary-keypad/status"
)

// Encoder binds a decoder channel to its directional keys.
type Encoder struct {
	Channel *rotary.Channel
	CW, CCW keys.Code
}

// Button binds a debouncer channel to its re-sample pin and key.
type Button struct {
	Channel *button.Channel
	Pin     hal.PinReader
	Key     keys.Code
}

// Sink receives a copy of every emitted or observed event for
// diagnostics. It must not influence control flow; errors are
// swallowed by the binding.
type Sink func(protocol.Event)

type Dispatcher struct {
	dev      hal.Link
	mgr      *link.Manager
	pres     *status.Presenter
	encoders []Encoder
	buttons  []Button
	diag     Sink
	now      func() time.Time

	lastStatus link.Status
}

func New(dev hal.Link, mgr *link.Manager, pres *status.Presenter, encoders []Encoder, buttons []Button, diag Sink) *Dispatcher {
	return &Dispatcher{
		dev:      dev,
		mgr:      mgr,
		pres:     pres,
		encoders: encoders,
		buttons:  buttons,
		diag:     diag,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock, for tests.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Tick performs one pass of the fixed dispatch order: connection
// refresh, status render, encoder drain, button confirmation.
func (d *Dispatcher) Tick() {
	now := d.now()

	st := d.mgr.Poll(now)
	d.traceStatus(st)

	d.pres.Render(st, now)

	if st == link.Connected {
		for i := range d.encoders {
			d.drainEncoder(uint8(i), &d.encoders[i], now)
		}
	}

	for i := range d.buttons {
		b := &d.buttons[i]
		b.Channel.Confirm(b.Pin.Get(), now)
		if b.Channel.PendingPress() && st == link.Connected {
			d.dev.WriteKey(b.Key)
			b.Channel.MarkDelivered()
			d.emitTrace(protocol.EVENT_TYPE_PRESS, uint8(i), uint8(b.Key))
			d.pres.Flash(now)
		}
	}
}

// drainEncoder emits one discrete key per pending step so N steps
// always yield N events, never one aggregate.
func (d *Dispatcher) drainEncoder(id uint8, e *Encoder, now time.Time) {
	for {
		dir := e.Channel.Consume()
		if dir == 0 {
			return
		}
		if dir > 0 {
			d.dev.WriteKey(e.CW)
			d.emitTrace(protocol.EVENT_TYPE_CW, id, uint8(e.CW))
		} else {
			d.dev.WriteKey(e.CCW)
			d.emitTrace(protocol.EVENT_TYPE_CCW, id, uint8(e.CCW))
		}
		d.pres.Flash(now)
	}
}

func (d *Dispatcher) traceStatus(st link.Status) {
	if st == d.lastStatus {
		return
	}
	switch st {
	case link.Connected:
		d.emitTrace(protocol.EVENT_TYPE_LINK_UP, 0, 0)
	case link.Connecting:
		d.emitTrace(protocol.EVENT_TYPE_RETRY, 0, 0)
	case link.Disconnected:
		d.emitTrace(protocol.EVENT_TYPE_LINK_DOWN, 0, 0)
	}
	d.lastStatus = st
}

func (d *Dispatcher) emitTrace(t protocol.EventType, ch, v uint8) {
	if d.diag == nil {
		return
	}
	d.diag(protocol.Event{Type: t, Channel: ch, Value: v})
}

// Run ticks forever with a small sleep between passes. The sleep only
// throttles CPU; all debounce timing lives in the channels.
func (d *Dispatcher) Run(sleep time.Duration) {
	for {
		d.Tick()
		time.Sleep(sleep)
	}
}
