// Package config holds the compile-time configuration of the device.
// There is no runtime configuration and no persisted state; pin
// assignments live in the firmware main next to the machine package.
package config

import (
	"time"

	"rotary-keypad/keys"
)

const (
	// DeviceName is the BLE advertising name.
	DeviceName = "Rotary Keypad"

	// EncoderDebounce rejects accepted-transition chatter on the
	// quadrature lines.
	EncoderDebounce = 5 * time.Millisecond

	// ButtonDebounce is the confirmation window of the button state
	// machine.
	ButtonDebounce = 50 * time.Millisecond

	// ReconnectDelay is how long the connection manager stays in
	// Disconnected before relabeling to Connecting.
	ReconnectDelay = 5000 * time.Millisecond

	// ActivityFlash is the blue override window after an emitted key.
	ActivityFlash = 10 * time.Millisecond

	// TickSleep throttles the dispatcher loop. CPU relief only, no
	// debounce semantics.
	TickSleep = 3 * time.Millisecond

	// LedBrightness scales the status colors, 0..255.
	LedBrightness = 40
)

// Key bindings, one entry per physical channel.
var (
	EncoderKeys = [...]struct{ CW, CCW keys.Code }{
		{CW: keys.VolumeUp, CCW: keys.VolumeDown},
		{CW: keys.RightArrow, CCW: keys.LeftArrow},
	}
	ButtonKeys = [...]keys.Code{
		keys.Mute,
		keys.Enter,
	}
)
