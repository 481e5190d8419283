package main

import (
	"testing"

	"github.com/callebjorkell/ws2812spi/internal/platform"
	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

func TestReadConfig(t *testing.T) {
	c, err := readConfig("testdata/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 144, c.Leds)
	assert.EqualValues(t, 50, *c.Brightness)
	assert.Equal(t, "/dev/spidev0.0", c.SPI.Port)
	assert.Equal(t, uint32(0xff8800), c.Colors["warning"])

	p, err := c.Platform()
	require.NoError(t, err)
	assert.Equal(t, platform.Config{
		Driver:    platform.DriverSPI,
		Port:      "/dev/spidev0.0",
		Frequency: 8 * physic.MegaHertz,
		Mode:      spi.Mode1,
		DataPin:   "GPIO10",
		Layout:    ws2812.LayoutFull,
		GPIOPin:   18,
		DMA:       10,
	}, p)
}

func TestParseConfigDefaults(t *testing.T) {
	c, err := parseConfig([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, 1, c.Leds)
	assert.EqualValues(t, 100, *c.Brightness)

	p, err := c.Platform()
	require.NoError(t, err)
	assert.Equal(t, platform.DefaultConfig, p)
}

func TestParseConfigZeroBrightness(t *testing.T) {
	c, err := parseConfig([]byte("brightness: 0"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, *c.Brightness)
}

func TestParseConfigDrivers(t *testing.T) {
	c, err := parseConfig([]byte("driver: nrzled\nlayout: legacy\npwm:\n  gpioPin: 12"))
	require.NoError(t, err)

	p, err := c.Platform()
	require.NoError(t, err)
	assert.Equal(t, platform.DriverNRZLED, p.Driver)
	assert.Equal(t, 2500*physic.KiloHertz, p.Frequency)
	assert.Equal(t, ws2812.LayoutLegacy, p.Layout)
	assert.Equal(t, 12, p.GPIOPin)
}

func TestParseConfigInvalid(t *testing.T) {
	tt := []struct {
		name    string
		content string
	}{
		{"not yaml", "leds: [1"},
		{"negative leds", "leds: -3"},
		{"brightness too high", "brightness: 101"},
		{"unknown layout", "layout: diagonal"},
		{"bad frequency", "spi:\n  frequency: fast"},
		{"color too wide", "colors:\n  ultra: 0x1000000"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.content))
			assert.Error(t, err)
		})
	}
}

func TestPlatformInvalidDriver(t *testing.T) {
	c, err := parseConfig([]byte("driver: apa102"))
	require.NoError(t, err)

	_, err = c.Platform()
	assert.ErrorIs(t, err, ws2812.ErrInvalidArgument)
}

func TestColor(t *testing.T) {
	c := Config{Colors: map[string]uint32{"warning": 0xff8800}}

	tt := []struct {
		input  string
		output uint32
	}{
		{"warning", 0xff8800},
		{"00ff00", 0x00ff00},
		{"#0000FF", 0x0000ff},
		{"0x123456", 0x123456},
	}
	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			color, err := c.Color(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.output, color)
		})
	}

	for _, bad := range []string{"purple", "1000000", ""} {
		_, err := c.Color(bad)
		assert.Error(t, err, bad)
	}
}

func TestFlagOverrides(t *testing.T) {
	tt := []struct {
		name       string
		flags      flagOverrides
		leds       int
		brightness uint8
		port       string
		fails      bool
	}{
		{"nothing set", flagOverrides{brightness: -1}, 144, 50, "/dev/spidev0.0", false},
		{"leds", flagOverrides{leds: 8, brightness: -1}, 8, 50, "/dev/spidev0.0", false},
		{"negative leds", flagOverrides{leds: -1, brightness: -1}, 0, 0, "", true},
		{"brightness", flagOverrides{brightness: 20}, 144, 20, "/dev/spidev0.0", false},
		{"zero brightness", flagOverrides{brightness: 0}, 144, 0, "/dev/spidev0.0", false},
		{"brightness too high", flagOverrides{brightness: 101}, 0, 0, "", true},
		{"port", flagOverrides{brightness: -1, port: "/dev/spidev1.0"}, 144, 50, "/dev/spidev1.0", false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c, err := readConfig("testdata/config.yaml")
			require.NoError(t, err)

			err = tc.flags.apply(c)
			if tc.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.leds, c.Leds)
			assert.Equal(t, tc.brightness, *c.Brightness)
			assert.Equal(t, tc.port, c.SPI.Port)
		})
	}
}
