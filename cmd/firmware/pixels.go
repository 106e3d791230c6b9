//go:build tinygo

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// pixelStrip adapts the WS2812 driver to the Pixels capability.
type pixelStrip struct {
	dev ws2812.Device
	buf []color.RGBA
}

func newPixelStrip(pin machine.Pin, count int) *pixelStrip {
	return &pixelStrip{
		dev: ws2812.New(pin),
		buf: make([]color.RGBA, count),
	}
}

func (p *pixelStrip) SetColor(index int, c color.RGBA) {
	if index < 0 || index >= len(p.buf) {
		return
	}
	p.buf[index] = c
}

func (p *pixelStrip) Show() error {
	return p.dev.WriteColors(p.buf)
}
