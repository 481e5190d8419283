package neopixel

import (
	"errors"
	"fmt"
	"time"

	"github.com/callebjorkell/ws2812spi/internal/ws2812"
	log "github.com/sirupsen/logrus"
)

const breathStep = 10 * time.Millisecond

var errInterrupted = errors.New("animation was interrupted")

// Flash blinks the whole strip in color three times.
func (l *LedController) Flash(color uint32) error {
	done := l.interruptor.Acquire()
	defer done()

	log.Infof("Flashing color %06x", color)

	steps := []struct {
		color uint32
		hold  time.Duration
	}{
		{color, 250 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{color, 100 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{color, 100 * time.Millisecond},
	}
	for _, s := range steps {
		if err := l.setColor(s.color); err != nil {
			return err
		}
		<-time.After(s.hold)
	}

	log.Debug("Flashing done...")
	return l.clear()
}

// Wipe lights the LEDs one after the other in color, waiting delay between
// each of them.
func (l *LedController) Wipe(color uint32, delay time.Duration) error {
	done := l.interruptor.Acquire()
	defer done()

	log.Debugf("Wiping color %06x", color)
	p := ws2812.RGB(color)
	for i := range l.frame {
		if l.interruptor.IsInterrupted() {
			return errInterrupted
		}
		l.frame[i] = p
		if err := l.ws.Show(l.frame[:i+1]); err != nil {
			return err
		}
		time.Sleep(delay)
	}
	return nil
}

// Fade lights the strip in color and raises the brightness one percent per
// step, from off to percent. The strip keeps that brightness afterwards.
func (l *LedController) Fade(color uint32, percent uint8, step time.Duration) error {
	if percent > ws2812.MaxBrightness {
		return fmt.Errorf("%w: brightness %d%% is above %d%%", ws2812.ErrInvalidArgument, percent, ws2812.MaxBrightness)
	}
	done := l.interruptor.Acquire()
	defer done()

	log.Debugf("Fading color %06x in to %d%%", color, percent)
	for b := 0; b <= int(percent); b++ {
		if l.interruptor.IsInterrupted() {
			return errInterrupted
		}
		if err := l.ws.SetBrightness(uint8(b)); err != nil {
			return err
		}
		if err := l.setColor(color); err != nil {
			return err
		}
		time.Sleep(step)
	}
	return nil
}

// Breathe fades color in and out in the background until something else
// takes over the strip.
func (l *LedController) Breathe(color uint32) {
	done := l.interruptor.Acquire()

	go func() {
		defer done()
		defer l.clear()
		for {
			err := l.singleBreath(color)
			if err != nil {
				log.Debug("Stopping breathing: ", err)
				break
			}
		}
	}()
}

func (l *LedController) singleBreath(color uint32) error {
	light := uint8(0)
	increase := true
	log.Debugf("Breathing color: %06x", color)
	tick := time.NewTicker(breathStep)
	defer tick.Stop()
	for {
		if l.interruptor.IsInterrupted() {
			return errInterrupted
		}

		err := l.setColor(withBrightness(color, light))
		if err != nil {
			return err
		}

		if increase {
			light++
			if light >= ws2812.MaxBrightness {
				increase = false
			}
		} else {
			if light == 0 {
				break
			}
			light--
		}

		<-tick.C
	}
	return nil
}

// Get the same color, but with a lower or equal brightness, on a scale from
// 0-100, where 100 is the same as the input.
func withBrightness(color uint32, light uint8) uint32 {
	if light >= ws2812.MaxBrightness {
		return color & 0xffffff
	}
	return ws2812.RGB(color).Scale(light).Uint32()
}
