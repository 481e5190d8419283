package platform

import (
	"fmt"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
)

// nrzDevice drives the strip through periph's 3 bits per bit NRZ encoder.
type nrzDevice struct {
	dev        *nrzled.Dev
	closer     func() error
	numPixels  int
	brightness uint8
	raw        []byte
}

// newNRZDevice connects an nrzled encoder to port and turns the LEDs off.
// closer, if not nil, is called after the strip is halted on Close.
func newNRZDevice(port spi.Port, cfg Config, numPixels int, brightness uint8, closer func() error) (*nrzDevice, error) {
	if numPixels < 1 {
		return nil, fmt.Errorf("%w: need at least one LED, got %d", ws2812.ErrInvalidArgument, numPixels)
	}
	opts := nrzled.Opts{
		NumPixels: numPixels,
		Channels:  3,
		Freq:      cfg.Frequency,
	}
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("unable to create nrzled device: %w", err)
	}

	d := &nrzDevice{
		dev:        dev,
		closer:     closer,
		numPixels:  numPixels,
		brightness: brightness,
		raw:        make([]byte, numPixels*3),
	}
	if err := d.Show(nil); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *nrzDevice) String() string {
	return d.dev.String()
}

func (d *nrzDevice) Len() int {
	return d.numPixels
}

func (d *nrzDevice) SetBrightness(percent uint8) error {
	if percent > ws2812.MaxBrightness {
		return fmt.Errorf("%w: brightness %d%% is above %d%%", ws2812.ErrInvalidArgument, percent, ws2812.MaxBrightness)
	}
	d.brightness = percent
	return nil
}

// Show packs the scaled pixels as RGB triplets, with every LED after them
// off, and writes them in one go.
func (d *nrzDevice) Show(pixels []ws2812.Pixel) error {
	if len(pixels) > d.numPixels {
		return fmt.Errorf("%w: %d pixels for %d LEDs", ws2812.ErrInvalidArgument, len(pixels), d.numPixels)
	}
	for i, p := range pixels {
		p = p.Scale(d.brightness)
		d.raw[3*i], d.raw[3*i+1], d.raw[3*i+2] = p.R, p.G, p.B
	}
	for i := 3 * len(pixels); i < len(d.raw); i++ {
		d.raw[i] = 0
	}
	_, err := d.dev.Write(d.raw)
	return err
}

func (d *nrzDevice) Close() error {
	err := d.dev.Halt()
	if d.closer != nil {
		if cerr := d.closer(); err == nil {
			err = cerr
		}
	}
	return err
}
