// Package status maps the connection state and recent key activity to
// the single RGB status pixel.
package status

import (
	"image/color"
	"time"

	"rotary-keypad/hal"
	"rotary-keypad/link"
)

// Base colors before brightness scaling.
var (
	red    = color.RGBA{R: 255}
	orange = color.RGBA{R: 255, G: 80}
	green  = color.RGBA{G: 255}
	blue   = color.RGBA{B: 255}
	off    = color.RGBA{}
)

type Presenter struct {
	px         hal.Pixels
	index      int
	brightness uint8
	flash      time.Duration
	flashUntil time.Time
}

func NewPresenter(px hal.Pixels, index int, brightness uint8, flash time.Duration) *Presenter {
	return &Presenter{
		px:         px,
		index:      index,
		brightness: brightness,
		flash:      flash,
	}
}

// Render recomputes the color for the current state and pushes it to
// the pixel. Called once per dispatcher tick.
func (p *Presenter) Render(s link.Status, now time.Time) {
	p.push(p.colorFor(s, now))
}

// Flash opens the activity override window and pushes blue
// immediately, without waiting for the next tick.
func (p *Presenter) Flash(now time.Time) {
	p.flashUntil = now.Add(p.flash)
	p.push(blue)
}

func (p *Presenter) colorFor(s link.Status, now time.Time) color.RGBA {
	if now.Before(p.flashUntil) {
		return blue
	}
	switch s {
	case link.Connected:
		return green
	case link.Connecting:
		// 1 Hz, 50% duty, phase from the wall clock so no timer is
		// needed.
		if now.UnixMilli()%1000 < 500 {
			return orange
		}
		return off
	default:
		return red
	}
}

func (p *Presenter) push(c color.RGBA) {
	p.px.SetColor(p.index, scale(c, p.brightness))
	p.px.Show()
}

func scale(c color.RGBA, brightness uint8) color.RGBA {
	b := uint16(brightness)
	return color.RGBA{
		R: uint8(uint16(c.R) * b / 255),
		G: uint8(uint16(c.G) * b / 255),
		B: uint8(uint16(c.B) * b / 255),
	}
}
