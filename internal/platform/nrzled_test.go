package platform

import (
	"bytes"
	"testing"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"
)

var nrzConfig = Config{Driver: DriverNRZLED, Frequency: defaultNRZFreq}

func newTestNRZ(t *testing.T, numPixels int, brightness uint8) (*nrzDevice, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	d, err := newNRZDevice(spitest.NewRecordRaw(buf), nrzConfig, numPixels, brightness, nil)
	require.NoError(t, err)
	return d, buf
}

// nrzReference records what a bare nrzled device sends for every write of raw.
func nrzReference(t *testing.T, numPixels int, raw ...[]byte) []byte {
	buf := &bytes.Buffer{}
	dev, err := nrzled.NewSPI(spitest.NewRecordRaw(buf), &nrzled.Opts{
		NumPixels: numPixels,
		Channels:  3,
		Freq:      nrzConfig.Frequency,
	})
	require.NoError(t, err)
	for _, r := range raw {
		_, err := dev.Write(r)
		require.NoError(t, err)
	}
	return buf.Bytes()
}

func TestNRZOpen(t *testing.T) {
	d, buf := newTestNRZ(t, 3, 100)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, nrzReference(t, 3, make([]byte, 9)), buf.Bytes(), "opening turns the LEDs off")

	_, err := newNRZDevice(spitest.NewRecordRaw(&bytes.Buffer{}), nrzConfig, 0, 100, nil)
	assert.ErrorIs(t, err, ws2812.ErrInvalidArgument)
}

func TestNRZShow(t *testing.T) {
	tt := []struct {
		name       string
		brightness uint8
		pixels     []ws2812.Pixel
		raw        []byte
	}{
		{
			"rgb order",
			100,
			[]ws2812.Pixel{{R: 0x11, G: 0x22, B: 0x33}, {R: 0xff}},
			[]byte{0x11, 0x22, 0x33, 0xff, 0, 0, 0, 0, 0},
		},
		{
			"scaled",
			50,
			[]ws2812.Pixel{{R: 255, G: 100, B: 1}},
			[]byte{127, 50, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			"all off",
			100,
			nil,
			make([]byte, 9),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d, buf := newTestNRZ(t, 3, tc.brightness)
			buf.Reset()

			require.NoError(t, d.Show(tc.pixels))
			assert.Equal(t, nrzReference(t, 3, tc.raw), buf.Bytes())
		})
	}
}

func TestNRZShowClearsTrailing(t *testing.T) {
	d, buf := newTestNRZ(t, 2, 100)
	require.NoError(t, d.Show([]ws2812.Pixel{{R: 1}, {G: 2}}))
	buf.Reset()

	require.NoError(t, d.Show([]ws2812.Pixel{{B: 3}}))
	assert.Equal(t, nrzReference(t, 2, []byte{0, 0, 3, 0, 0, 0}), buf.Bytes())
}

func TestNRZShowTooMany(t *testing.T) {
	d, buf := newTestNRZ(t, 2, 100)
	buf.Reset()

	err := d.Show(make([]ws2812.Pixel, 3))
	assert.ErrorIs(t, err, ws2812.ErrInvalidArgument)
	assert.Zero(t, buf.Len(), "nothing is sent")
}

func TestNRZSetBrightness(t *testing.T) {
	d, buf := newTestNRZ(t, 1, 100)

	assert.ErrorIs(t, d.SetBrightness(101), ws2812.ErrInvalidArgument)
	assert.EqualValues(t, 100, d.brightness)

	buf.Reset()
	require.NoError(t, d.SetBrightness(10))
	assert.Zero(t, buf.Len(), "brightness alone sends nothing")

	require.NoError(t, d.Show([]ws2812.Pixel{{R: 200, G: 100, B: 50}}))
	assert.Equal(t, nrzReference(t, 1, []byte{20, 10, 5}), buf.Bytes())
}

func TestNRZClose(t *testing.T) {
	buf := &bytes.Buffer{}
	closed := 0
	d, err := newNRZDevice(spitest.NewRecordRaw(buf), nrzConfig, 2, 100, func() error {
		closed++
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, d.Show([]ws2812.Pixel{{R: 255, G: 255, B: 255}}))
	buf.Reset()

	require.NoError(t, d.Close())
	assert.Equal(t, 1, closed)

	refBuf := &bytes.Buffer{}
	ref, err := nrzled.NewSPI(spitest.NewRecordRaw(refBuf), &nrzled.Opts{NumPixels: 2, Channels: 3, Freq: nrzConfig.Frequency})
	require.NoError(t, err)
	require.NoError(t, ref.Halt())
	assert.Equal(t, refBuf.Bytes(), buf.Bytes(), "close halts the strip")
}
