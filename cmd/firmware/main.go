//go:build tinygo

package main

import (
	"machine"
	"time"

	"rotary-keypad/button"
	"rotary-keypad/config"
	"rotary-keypad/dispatch"
	"rotary-keypad/link"
	"rotary-keypad/link/blehid"
	"rotary-keypad/protocol"
	"rotary-keypad/rotary"
	"rotary-keypad/status"
)

// Pin assignment. Encoder lines and buttons are pull-up inputs, so
// everything reads active-low.
const (
	pinEnc0A   = machine.GPIO2
	pinEnc0B   = machine.GPIO3
	pinBtn0    = machine.GPIO4
	pinEnc1A   = machine.GPIO5
	pinEnc1B   = machine.GPIO6
	pinBtn1    = machine.GPIO7
	pinLed     = machine.GPIO16
	ledCount   = 1
	statusLed  = 0
	bothEdges  = machine.PinRising | machine.PinFalling
)

type activeLowPin struct {
	pin machine.Pin
}

func (p activeLowPin) Get() bool {
	return !p.pin.Get()
}

func main() {
	// Let the board and the debug serial settle before doing anything.
	time.Sleep(time.Second * 2)

	for _, p := range []machine.Pin{pinEnc0A, pinEnc0B, pinBtn0, pinEnc1A, pinEnc1B, pinBtn1} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	pinLed.Configure(machine.PinConfig{Mode: machine.PinOutput})
	px := newPixelStrip(pinLed, ledCount)

	enc0 := rotary.NewChannel(pinEnc0A.Get(), pinEnc0B.Get(), config.EncoderDebounce)
	enc1 := rotary.NewChannel(pinEnc1A.Get(), pinEnc1B.Get(), config.EncoderDebounce)
	btn0 := button.NewChannel(config.ButtonDebounce)
	btn1 := button.NewChannel(config.ButtonDebounce)

	// Interrupt handlers only feed the per-channel state; all
	// confirmation and emission happens in the dispatcher loop.
	pinEnc0A.SetInterrupt(bothEdges, func(machine.Pin) {
		enc0.Edge(pinEnc0A.Get(), pinEnc0B.Get(), time.Now())
	})
	pinEnc0B.SetInterrupt(bothEdges, func(machine.Pin) {
		enc0.Edge(pinEnc0A.Get(), pinEnc0B.Get(), time.Now())
	})
	pinEnc1A.SetInterrupt(bothEdges, func(machine.Pin) {
		enc1.Edge(pinEnc1A.Get(), pinEnc1B.Get(), time.Now())
	})
	pinEnc1B.SetInterrupt(bothEdges, func(machine.Pin) {
		enc1.Edge(pinEnc1A.Get(), pinEnc1B.Get(), time.Now())
	})
	pinBtn0.SetInterrupt(bothEdges, func(machine.Pin) {
		btn0.Edge(!pinBtn0.Get(), time.Now())
	})
	pinBtn1.SetInterrupt(bothEdges, func(machine.Pin) {
		btn1.Edge(!pinBtn1.Get(), time.Now())
	})

	kbd := blehid.New(config.DeviceName, "rotary-keypad")
	mgr := link.NewManager(kbd, config.ReconnectDelay, time.Now())
	if err := kbd.Begin(); err != nil {
		fatal("BLE init failed", err)
	}

	pres := status.NewPresenter(px, statusLed, config.LedBrightness, config.ActivityFlash)

	d := dispatch.New(kbd, mgr, pres,
		[]dispatch.Encoder{
			{Channel: enc0, CW: config.EncoderKeys[0].CW, CCW: config.EncoderKeys[0].CCW},
			{Channel: enc1, CW: config.EncoderKeys[1].CW, CCW: config.EncoderKeys[1].CCW},
		},
		[]dispatch.Button{
			{Channel: btn0, Pin: activeLowPin{pinBtn0}, Key: config.ButtonKeys[0]},
			{Channel: btn1, Pin: activeLowPin{pinBtn1}, Key: config.ButtonKeys[1]},
		},
		serialSink,
	)

	println("rotary-keypad up, advertising as", config.DeviceName)
	d.Run(config.TickSleep)
}

// serialSink mirrors dispatcher events to the USB serial bridge for
// the host monitor. Write errors are irrelevant here.
func serialSink(e protocol.Event) {
	machine.Serial.Write(protocol.Marshal(e))
}

// fatal never returns; there is nothing to recover once setup fails.
func fatal(msg string, err error) {
	for {
		println("FATAL:", msg, err.Error())
		time.Sleep(time.Second)
	}
}
