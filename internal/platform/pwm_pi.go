//go:build pi

package platform

import (
	"fmt"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

// pwmDevice drives the strip with the PWM/DMA engine of the Raspberry Pi.
type pwmDevice struct {
	dev        *ws.WS2811
	numPixels  int
	brightness uint8
}

func openPWM(cfg Config, numPixels int, brightness uint8) (Device, error) {
	opt := ws.DefaultOptions
	// The channels are shared with the package defaults.
	opt.Channels = append([]ws.ChannelOption(nil), ws.DefaultOptions.Channels...)
	opt.DmaNum = cfg.DMA
	opt.Channels[0].GpioPin = cfg.GPIOPin
	opt.Channels[0].LedCount = numPixels
	// Scaling is done here to keep it identical across drivers.
	opt.Channels[0].Brightness = 255

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("unable to create ws281x device: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize ws281x device: %w", err)
	}
	log.Infof("Driving %d LEDs with PWM on GPIO%d", numPixels, cfg.GPIOPin)

	d := &pwmDevice{
		dev:        dev,
		numPixels:  numPixels,
		brightness: brightness,
	}
	if err := d.Show(nil); err != nil {
		dev.Fini()
		return nil, err
	}
	return d, nil
}

func (d *pwmDevice) Len() int {
	return d.numPixels
}

func (d *pwmDevice) SetBrightness(percent uint8) error {
	if percent > ws2812.MaxBrightness {
		return fmt.Errorf("%w: brightness %d%% is above %d%%", ws2812.ErrInvalidArgument, percent, ws2812.MaxBrightness)
	}
	d.brightness = percent
	return nil
}

func (d *pwmDevice) Show(pixels []ws2812.Pixel) error {
	if len(pixels) > d.numPixels {
		return fmt.Errorf("%w: %d pixels for %d LEDs", ws2812.ErrInvalidArgument, len(pixels), d.numPixels)
	}
	leds := d.dev.Leds(0)
	for i := range leds {
		leds[i] = 0
	}
	for i, p := range pixels {
		leds[i] = p.Scale(d.brightness).Uint32()
	}
	if err := d.dev.Render(); err != nil {
		return err
	}
	return d.dev.Wait()
}

func (d *pwmDevice) Close() error {
	err := d.Show(nil)
	d.dev.Fini()
	return err
}
