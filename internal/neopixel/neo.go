// Package neopixel shares a strip of LEDs between the effects that draw on
// it.
package neopixel

import (
	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	log "github.com/sirupsen/logrus"
)

// Engine is the strip the controller draws on.
type Engine interface {
	Len() int
	SetBrightness(percent uint8) error
	Show(pixels []ws2812.Pixel) error
	Close() error
}

// LedController serialises everything drawn on one Engine.
type LedController struct {
	ws          Engine
	interruptor Queue
	frame       []ws2812.Pixel
}

func NewLedController(e Engine) *LedController {
	return &LedController{
		ws:    e,
		frame: make([]ws2812.Pixel, e.Len()),
	}
}

// Fill sets every LED to color.
func (l *LedController) Fill(color uint32) error {
	done := l.interruptor.Acquire()
	defer done()

	log.Infof("Filling with color %06x", color)
	return l.setColor(color)
}

// Clear turns every LED off.
func (l *LedController) Clear() error {
	done := l.interruptor.Acquire()
	defer done()

	return l.clear()
}

// Stop interrupts whatever is running and waits for it to let go.
func (l *LedController) Stop() {
	done := l.interruptor.Acquire()
	done()
}

// Close stops any running effect, turns the LEDs off and closes the engine.
func (l *LedController) Close() error {
	done := l.interruptor.Acquire()
	defer done()

	return l.ws.Close()
}

func (l *LedController) setColor(color uint32) error {
	p := ws2812.RGB(color)
	for i := range l.frame {
		l.frame[i] = p
	}
	return l.ws.Show(l.frame)
}

func (l *LedController) clear() error {
	return l.ws.Show(nil)
}
