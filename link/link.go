// Package link tracks the BLE connection state and drives the retry
// clock.
package link

import (
	"sync/atomic"
	"time"

	"rotary-keypad/hal"
)

type Status uint8

const (
	Disconnected Status = iota
	Connecting
	Connected
)

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Unknown"
	}
}

// Manager observes the link capability and derives the connection
// status polled by the dispatcher. The Disconnected->Connecting
// transition only resets the retry baseline and relabels the status;
// the stack advertises autonomously, there is nothing to command.
type Manager struct {
	linked atomic.Bool

	status       Status
	lastAttempt  time.Time
	wasConnected bool
	retryAfter   time.Duration
}

// NewManager registers a link observer on dev and starts in
// Disconnected with the retry baseline at now.
func NewManager(dev hal.Link, retryAfter time.Duration, now time.Time) *Manager {
	m := &Manager{
		status:      Disconnected,
		lastAttempt: now,
		retryAfter:  retryAfter,
	}
	dev.OnLinkChange(func(up bool) {
		m.linked.Store(up)
	})
	return m
}

// Poll refreshes the status from the observed link state. Cooperative
// context only; this is the sole mutator of the status.
func (m *Manager) Poll(now time.Time) Status {
	if m.linked.Load() {
		m.status = Connected
		m.wasConnected = true
		return m.status
	}

	if m.status == Connected {
		m.status = Disconnected
		m.lastAttempt = now
		return m.status
	}

	if m.status == Disconnected && now.Sub(m.lastAttempt) >= m.retryAfter {
		m.status = Connecting
		m.lastAttempt = now
	}
	return m.status
}

// Status returns the status derived by the last Poll.
func (m *Manager) Status() Status {
	return m.status
}

// WasConnected reports whether the link has been up at least once
// since boot.
func (m *Manager) WasConnected() bool {
	return m.wasConnected
}
