// Package hal declares the capability interfaces the core is wired
// against. The firmware main binds them to the BLE stack, the WS2812
// strip and the machine pins; tests bind them to fakes.
package hal

import (
	"image/color"

	"rotary-keypad/keys"
)

// Link is the BLE HID keyboard capability. Begin starts advertising;
// the stack keeps advertising (and re-advertising after a disconnect)
// on its own, there is no explicit reconnect primitive.
type Link interface {
	Begin() error
	Connected() bool
	// WriteKey enqueues one press+release report for the given key.
	WriteKey(c keys.Code) error
	// OnLinkChange registers an observer called from the stack's
	// connect/disconnect handler with the new link state.
	OnLinkChange(fn func(up bool))
}

// Pixels is the RGB status LED capability.
type Pixels interface {
	SetColor(index int, c color.RGBA)
	Show() error
}

// PinReader is the cooperative loop's re-sample access to a digital
// input. Pin configuration and edge subscription stay in the firmware
// binding.
type PinReader interface {
	// Get reports whether the line is active (pressed). Bindings for
	// pull-up wiring invert the raw level.
	Get() bool
}
