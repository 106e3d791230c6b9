package status

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rotary-keypad/link"
)

type fakePixels struct {
	last  color.RGBA
	shows int
}

func (f *fakePixels) SetColor(index int, c color.RGBA) { f.last = c }
func (f *fakePixels) Show() error {
	f.shows++
	return nil
}

const flash = 10 * time.Millisecond

// onPhase has the wall clock in the first half of the blink second.
var (
	onPhase  = time.UnixMilli(1_000_000_200)
	offPhase = time.UnixMilli(1_000_000_700)
)

func newTestPresenter() (*Presenter, *fakePixels) {
	px := &fakePixels{}
	// Full brightness so the raw palette comes through unscaled.
	return NewPresenter(px, 0, 255, flash), px
}

func TestStateColors(t *testing.T) {
	p, px := newTestPresenter()

	p.Render(link.Disconnected, onPhase)
	assert.Equal(t, red, px.last)

	p.Render(link.Connected, onPhase)
	assert.Equal(t, green, px.last)
}

func TestConnectingBlinksFromWallClock(t *testing.T) {
	p, px := newTestPresenter()

	p.Render(link.Connecting, onPhase)
	assert.Equal(t, orange, px.last)

	p.Render(link.Connecting, offPhase)
	assert.Equal(t, off, px.last)
}

func TestActivityFlashOverridesAndExpires(t *testing.T) {
	p, px := newTestPresenter()

	p.Flash(onPhase)
	assert.Equal(t, blue, px.last, "flash pushes immediately")

	p.Render(link.Connected, onPhase.Add(5*time.Millisecond))
	assert.Equal(t, blue, px.last, "override active inside the window")

	p.Render(link.Connected, onPhase.Add(flash))
	assert.Equal(t, green, px.last, "state color returns after the window")
}

func TestRenderPushesEveryTick(t *testing.T) {
	p, px := newTestPresenter()
	p.Render(link.Connected, onPhase)
	p.Render(link.Connected, onPhase.Add(time.Millisecond))
	assert.Equal(t, 2, px.shows)
}

func TestBrightnessScaling(t *testing.T) {
	px := &fakePixels{}
	p := NewPresenter(px, 0, 51, flash) // one fifth
	p.Render(link.Connected, onPhase)
	assert.Equal(t, color.RGBA{G: 51}, px.last)
}
