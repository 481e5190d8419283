package ws2812

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawer(t *testing.T) {
	s, _ := newStrip(t, 5, 100)

	assert.Equal(t, image.Rect(0, 0, 5, 1), s.Bounds())
	assert.Equal(t, color.NRGBAModel, s.ColorModel())
	assert.Equal(t, "ws2812", s.String())
}

func TestDrawPartial(t *testing.T) {
	s, rec := newStrip(t, 5, 100)
	require.NoError(t, s.Show([]Pixel{{R: 1}, {R: 1}, {R: 1}, {R: 1}, {R: 1}}))

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{G: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 20, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{G: 30, A: 255})

	// Two LEDs starting at 2, taken from the image from x=1.
	require.NoError(t, s.Draw(image.Rect(2, 0, 4, 1), img, image.Pt(1, 0)))

	f := rec.last()
	assert.Equal(t, wirePixel(Pixel{R: 1}), f[0:24])
	assert.Equal(t, wirePixel(Pixel{R: 1}), f[24:48])
	assert.Equal(t, wirePixel(Pixel{G: 20}), f[48:72])
	assert.Equal(t, wirePixel(Pixel{G: 30}), f[72:96])
	assert.Equal(t, wirePixel(Pixel{R: 1}), f[96:120])
}

func TestDrawClipsToStrip(t *testing.T) {
	s, rec := newStrip(t, 2, 100)

	img := image.NewNRGBA(image.Rect(0, 0, 10, 1))
	for x := 0; x < 10; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{B: uint8(x + 1), A: 255})
	}
	require.NoError(t, s.Draw(image.Rect(0, 0, 10, 1), img, image.Point{}))

	f := rec.last()
	assert.Equal(t, wirePixel(Pixel{B: 1}), f[0:24])
	assert.Equal(t, wirePixel(Pixel{B: 2}), f[24:48])

	sent := len(rec.frames)
	require.NoError(t, s.Draw(image.Rect(5, 0, 8, 1), img, image.Point{}))
	assert.Len(t, rec.frames, sent, "nothing to draw outside of the strip")
}

func TestHalt(t *testing.T) {
	s, rec := newStrip(t, 3, 100)
	require.NoError(t, s.Show([]Pixel{{R: 9}, {G: 9}}))

	require.NoError(t, s.Halt())
	assert.Equal(t, offFrame(3), rec.last())
}
