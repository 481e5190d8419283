// Package ws2812 encodes WS2812 LED colours into a SPI byte stream.
//
// Every bit on the LED data line is sent as one SPI byte clocked at 8MHz, so a
// byte with 3 leading ones is a short pulse (0) and a byte with 6 leading ones
// is a long pulse (1). Bits are handled two at a time through a table of four
// 16-bit symbols, giving 24 bytes per LED.
package ws2812

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	// Freq is the SPI clock the symbol table is timed for.
	Freq = 8 * physic.MegaHertz
	// Mode is the SPI mode the LEDs are driven with: idle low, sample on the
	// second edge.
	Mode = spi.Mode1

	// MaxBrightness is full brightness, in percent.
	MaxBrightness = 100
)

// ErrInvalidArgument is wrapped by every error caused by bad input.
var ErrInvalidArgument = errors.New("invalid argument")

// Transmitter writes a whole frame to the wire. spi.Conn implements it.
type Transmitter interface {
	Tx(w, r []byte) error
}

// Exclusive is held for the duration of a transmit. Platforms where other
// activity could stretch the bit timing provide one.
type Exclusive interface {
	Acquire() (release func())
}

// Opts configures a Strip.
type Opts struct {
	// NumPixels is the number of LEDs on the strip.
	NumPixels int
	// Brightness in percent, 0 to 100.
	Brightness uint8
	// Layout of the symbol bytes in the frame.
	Layout Layout
	// Exclusive, if set, brackets every transmit.
	Exclusive Exclusive
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	NumPixels:  1,
	Brightness: MaxBrightness,
	Layout:     LayoutFull,
}

// Strip is a chain of WS2812 LEDs behind a Transmitter.
//
// A Strip is not safe for concurrent use.
type Strip struct {
	tx         Transmitter
	exclusive  Exclusive
	numPixels  int
	brightness uint8
	layout     Layout
	buf        []byte
}

// New allocates the frame for opts.NumPixels LEDs and turns them all off.
// A nil opts is DefaultOpts.
func New(tx Transmitter, opts *Opts) (*Strip, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if tx == nil {
		return nil, fmt.Errorf("ws2812: %w: nil transmitter", ErrInvalidArgument)
	}
	if opts.NumPixels < 1 {
		return nil, fmt.Errorf("ws2812: %w: need at least one LED, got %d", ErrInvalidArgument, opts.NumPixels)
	}
	if opts.Brightness > MaxBrightness {
		return nil, fmt.Errorf("ws2812: %w: brightness %d%% is above %d%%", ErrInvalidArgument, opts.Brightness, MaxBrightness)
	}
	if opts.Layout != LayoutFull && opts.Layout != LayoutLegacy {
		return nil, fmt.Errorf("ws2812: %w: unknown layout %v", ErrInvalidArgument, opts.Layout)
	}

	s := &Strip{
		tx:         tx,
		exclusive:  opts.Exclusive,
		numPixels:  opts.NumPixels,
		brightness: opts.Brightness,
		layout:     opts.Layout,
		buf:        make([]byte, opts.NumPixels*BytesPerLED),
	}
	log.Debugf("ws2812: %d LEDs, %d byte frame, %v layout", s.numPixels, len(s.buf), s.layout)

	if err := s.Show(nil); err != nil {
		return nil, fmt.Errorf("ws2812: turning LEDs off: %w", err)
	}
	return s, nil
}

// Len returns the number of LEDs.
func (s *Strip) Len() int {
	return s.numPixels
}

// Brightness returns the current brightness in percent.
func (s *Strip) Brightness() uint8 {
	return s.brightness
}

// SetBrightness changes the brightness used from the next fill on. Nothing
// is sent to the LEDs.
func (s *Strip) SetBrightness(percent uint8) error {
	if percent > MaxBrightness {
		return fmt.Errorf("ws2812: %w: brightness %d%% is above %d%%", ErrInvalidArgument, percent, MaxBrightness)
	}
	s.brightness = percent
	return nil
}

// Show fills the frame with pixels, turns every LED after them off and sends
// the frame.
func (s *Strip) Show(pixels []Pixel) error {
	if err := s.Fill(pixels); err != nil {
		return err
	}
	return s.Flush()
}

// Fill encodes pixels from the first LED on and the off pattern for every LED
// after them. Nothing is sent.
func (s *Strip) Fill(pixels []Pixel) error {
	end, err := s.Update(0, pixels)
	if err != nil {
		return err
	}
	putOff(s.buf[end*BytesPerLED:])
	return nil
}

// Update encodes pixels starting at LED start and leaves every other LED as
// it is. It returns the index of the first LED after the written range.
func (s *Strip) Update(start int, pixels []Pixel) (int, error) {
	if start < 0 || start > s.numPixels {
		return start, fmt.Errorf("ws2812: %w: start %d outside of [0, %d]", ErrInvalidArgument, start, s.numPixels)
	}
	if len(pixels) > s.numPixels-start {
		return start, fmt.Errorf("ws2812: %w: %d pixels from %d do not fit %d LEDs", ErrInvalidArgument, len(pixels), start, s.numPixels)
	}

	i := start * BytesPerLED
	for _, p := range pixels {
		s.layout.putPixel(s.buf[i:i+BytesPerLED], p.Scale(s.brightness))
		i += BytesPerLED
	}
	return start + len(pixels), nil
}

// Flush sends the current frame.
func (s *Strip) Flush() error {
	if s.exclusive != nil {
		release := s.exclusive.Acquire()
		defer release()
	}
	if err := s.tx.Tx(s.buf, nil); err != nil {
		return fmt.Errorf("ws2812: transmit: %w", err)
	}
	return nil
}

// Frame returns a copy of the encoded frame.
func (s *Strip) Frame() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// Close turns all LEDs off. It does not close the transmitter.
func (s *Strip) Close() error {
	return s.Halt()
}
