//go:build pi

package platform

import (
	"fmt"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func open(cfg Config, numPixels int, brightness uint8) (Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	switch cfg.Driver {
	case DriverNRZLED:
		return openNRZLED(cfg, numPixels, brightness)
	case DriverPWM:
		return openPWM(cfg, numPixels, brightness)
	}
	return openSPI(cfg, numPixels, brightness)
}

func openPort(cfg Config) (spi.PortCloser, error) {
	if cfg.DataPin != "" {
		pin := gpioreg.ByName(cfg.DataPin)
		if pin == nil {
			return nil, fmt.Errorf("no such data pin %q", cfg.DataPin)
		}
		if err := pin.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("unable to pull %s low: %w", cfg.DataPin, err)
		}
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("unable to open SPI port %q: %w", cfg.Port, err)
	}
	if p, ok := port.(spi.Pins); ok {
		log.Infof("Using pins CLK: %s MOSI: %s", p.CLK(), p.MOSI())
	}
	return port, nil
}

func openNRZLED(cfg Config, numPixels int, brightness uint8) (Device, error) {
	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}

	d, err := newNRZDevice(port, cfg, numPixels, brightness, port.Close)
	if err != nil {
		port.Close()
		return nil, err
	}
	log.Infof("Driving %d LEDs through %s", numPixels, d)
	return d, nil
}

func openSPI(cfg Config, numPixels int, brightness uint8) (Device, error) {
	port, err := openPort(cfg)
	if err != nil {
		return nil, err
	}

	c, err := port.Connect(cfg.Frequency, cfg.Mode, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("unable to connect to %s: %w", port, err)
	}
	size := numPixels * ws2812.BytesPerLED
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 && l.MaxTxSize() < size {
		port.Close()
		return nil, fmt.Errorf("%w: a %d byte frame does not fit the %d byte transfer limit of %s",
			ws2812.ErrInvalidArgument, size, l.MaxTxSize(), port)
	}

	log.Infof("Driving %d LEDs on %s at %s", numPixels, port, cfg.Frequency)
	d, err := newStripDevice(c, cfg, numPixels, brightness, port.Close)
	if err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}
