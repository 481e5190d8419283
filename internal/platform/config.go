package platform

import (
	"fmt"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	DriverSPI    = "spi"
	DriverNRZLED = "nrzled"
	DriverPWM    = "pwm"

	defaultNRZFreq = 2500 * physic.KiloHertz
	defaultGPIOPin = 18
	defaultDMA     = 10
)

// Config selects and configures the peripheral driving the LEDs. Nothing is
// detected from the host, every choice is explicit.
type Config struct {
	// Driver is one of DriverSPI, DriverNRZLED or DriverPWM.
	Driver string
	// Port is the periph SPI port name. Empty opens the first one.
	Port string
	// Frequency of the SPI clock.
	Frequency physic.Frequency
	// Mode of the SPI port. The zero value is spi.Mode0, DefaultConfig
	// carries ws2812.Mode.
	Mode spi.Mode
	// DataPin, if set, is driven low before the port is connected so the
	// line idles low.
	DataPin string
	// Exclusive brackets every transmit with the bus lock of Port.
	Exclusive bool
	// Layout of the encoded frame.
	Layout ws2812.Layout

	// GPIOPin carries the data line for DriverPWM.
	GPIOPin int
	// DMA channel for DriverPWM.
	DMA int
}

// DefaultConfig drives the LEDs from the first SPI port at the rate the
// symbol table is timed for.
var DefaultConfig = Config{
	Driver:    DriverSPI,
	Frequency: ws2812.Freq,
	Mode:      ws2812.Mode,
	GPIOPin:   defaultGPIOPin,
	DMA:       defaultDMA,
}

// Defaults returns a copy of c with every unset field filled in.
func (c Config) Defaults() Config {
	if c.Driver == "" {
		c.Driver = DriverSPI
	}
	if c.Frequency == 0 {
		switch c.Driver {
		case DriverNRZLED:
			c.Frequency = defaultNRZFreq
		default:
			c.Frequency = ws2812.Freq
		}
	}
	if c.GPIOPin == 0 {
		c.GPIOPin = defaultGPIOPin
	}
	if c.DMA == 0 {
		c.DMA = defaultDMA
	}
	return c
}

// Validate checks the configuration for values no driver can work with.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSPI, DriverNRZLED, DriverPWM:
	default:
		return fmt.Errorf("%w: unknown driver %q", ws2812.ErrInvalidArgument, c.Driver)
	}
	if c.Frequency < 0 {
		return fmt.Errorf("%w: negative frequency %s", ws2812.ErrInvalidArgument, c.Frequency)
	}
	if c.Mode < spi.Mode0 || c.Mode > spi.Mode3 {
		return fmt.Errorf("%w: SPI mode %d is not one of 0-3", ws2812.ErrInvalidArgument, c.Mode)
	}
	return nil
}

// Ignored lists the settings in c that the selected driver has no use for.
// Only the SPI driver encodes frames itself, so only it honours a layout or
// the bus lock.
func (c Config) Ignored() []string {
	if c.Driver != DriverNRZLED && c.Driver != DriverPWM {
		return nil
	}
	var ignored []string
	if c.Exclusive {
		ignored = append(ignored, "exclusive")
	}
	if c.Layout != ws2812.LayoutFull {
		ignored = append(ignored, "layout "+c.Layout.String())
	}
	if c.Driver == DriverPWM && c.DataPin != "" {
		ignored = append(ignored, "data pin "+c.DataPin)
	}
	return ignored
}

// Device is an opened strip of LEDs.
type Device interface {
	Len() int
	SetBrightness(percent uint8) error
	Show(pixels []ws2812.Pixel) error
	// Close turns the LEDs off and releases the peripheral.
	Close() error
}

// Open brings up the peripheral described by cfg for numPixels LEDs.
func Open(cfg Config, numPixels int, brightness uint8) (Device, error) {
	cfg = cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if brightness > ws2812.MaxBrightness {
		return nil, fmt.Errorf("%w: brightness %d%% is above %d%%", ws2812.ErrInvalidArgument, brightness, ws2812.MaxBrightness)
	}
	for _, setting := range cfg.Ignored() {
		log.Warnf("The %s driver ignores %s", cfg.Driver, setting)
	}
	return open(cfg, numPixels, brightness)
}

// stripDevice owns a Strip and the resource behind its transmitter.
type stripDevice struct {
	*ws2812.Strip
	closer func() error
}

func (d *stripDevice) Close() error {
	err := d.Strip.Close()
	if d.closer != nil {
		if cerr := d.closer(); err == nil {
			err = cerr
		}
	}
	return err
}

func newStripDevice(tx ws2812.Transmitter, cfg Config, numPixels int, brightness uint8, closer func() error) (*stripDevice, error) {
	opts := ws2812.DefaultOpts
	opts.NumPixels = numPixels
	opts.Brightness = brightness
	opts.Layout = cfg.Layout
	if cfg.Exclusive {
		opts.Exclusive = BusLock(cfg.Port)
	}
	s, err := ws2812.New(tx, &opts)
	if err != nil {
		return nil, err
	}
	return &stripDevice{Strip: s, closer: closer}, nil
}
