package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/callebjorkell/ws2812spi/internal/platform"
	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	defaultLeds       = 1
	defaultBrightness = ws2812.MaxBrightness
)

type Config struct {
	Leds       int    `yaml:"leds"`
	Brightness *uint8 `yaml:"brightness"`
	Driver     string `yaml:"driver"`
	Layout     string `yaml:"layout"`
	SPI        struct {
		Port      string `yaml:"port"`
		Frequency string `yaml:"frequency"`
		Mode      *int   `yaml:"mode"`
		DataPin   string `yaml:"dataPin"`
		Exclusive bool   `yaml:"exclusive"`
	} `yaml:"spi"`
	PWM struct {
		GPIOPin int `yaml:"gpioPin"`
		DMA     int `yaml:"dma"`
	} `yaml:"pwm"`
	Colors map[string]uint32 `yaml:"colors"`
}

func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(content)
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Leds == 0 {
		c.Leds = defaultLeds
	}
	if c.Leds < 0 {
		return nil, fmt.Errorf("number of LEDs must be positive, got %d", c.Leds)
	}
	if c.Brightness == nil {
		b := uint8(defaultBrightness)
		c.Brightness = &b
	}
	if *c.Brightness > ws2812.MaxBrightness {
		return nil, fmt.Errorf("brightness must be between 0 and %d, got %d", ws2812.MaxBrightness, *c.Brightness)
	}
	if _, err := ws2812.ParseLayout(c.Layout); err != nil {
		return nil, err
	}
	if c.SPI.Frequency != "" {
		var f physic.Frequency
		if err := f.Set(c.SPI.Frequency); err != nil {
			return nil, fmt.Errorf("invalid SPI frequency %q: %w", c.SPI.Frequency, err)
		}
	}
	for name, color := range c.Colors {
		if color > 0xffffff {
			return nil, fmt.Errorf("color %q is not a 24 bit RGB value: %x", name, color)
		}
	}

	return c, nil
}

// Platform translates the file format into the platform configuration.
func (c Config) Platform() (platform.Config, error) {
	p := platform.DefaultConfig
	if c.Driver != "" {
		p.Driver = c.Driver
		p.Frequency = 0
	}
	p.Port = c.SPI.Port
	p.DataPin = c.SPI.DataPin
	p.Exclusive = c.SPI.Exclusive
	if c.SPI.Frequency != "" {
		if err := p.Frequency.Set(c.SPI.Frequency); err != nil {
			return p, err
		}
	}
	if c.SPI.Mode != nil {
		p.Mode = spi.Mode(*c.SPI.Mode)
	}
	if c.PWM.GPIOPin != 0 {
		p.GPIOPin = c.PWM.GPIOPin
	}
	if c.PWM.DMA != 0 {
		p.DMA = c.PWM.DMA
	}

	l, err := ws2812.ParseLayout(c.Layout)
	if err != nil {
		return p, err
	}
	p.Layout = l

	p = p.Defaults()
	return p, p.Validate()
}

// Color resolves a configured color name, or a hex RGB value such as
// "ff8800", "#ff8800" or "0xff8800".
func (c Config) Color(s string) (uint32, error) {
	if color, ok := c.Colors[s]; ok {
		return color, nil
	}
	h := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil || v > 0xffffff {
		return 0, fmt.Errorf("%q is neither a configured color nor a hex RGB value", s)
	}
	return uint32(v), nil
}
