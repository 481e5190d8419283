//go:build !pi

package platform

import (
	log "github.com/sirupsen/logrus"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
)

// mockPort stands in for the SPI port on machines without one. It logs the
// colours it would have put on the wire.
type mockPort struct {
	name   string
	frames int
}

func (m *mockPort) String() string {
	return "mock(" + m.name + ")"
}

func (m *mockPort) Tx(w, _ []byte) error {
	m.frames++
	log.Debugf("%s: frame %d, %d bytes", m, m.frames, len(w))
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("colors: %v", ws2812.Decode(w))
	}
	return nil
}

func open(cfg Config, numPixels int, brightness uint8) (Device, error) {
	if cfg.Driver != DriverSPI {
		log.Warnf("Driver %q needs real hardware, using a mock SPI port", cfg.Driver)
	}
	log.Infof("Driving %d LEDs on a mock SPI port", numPixels)

	d, err := newStripDevice(&mockPort{name: cfg.Port}, cfg, numPixels, brightness, nil)
	if err != nil {
		return nil, err
	}
	return d, nil
}
