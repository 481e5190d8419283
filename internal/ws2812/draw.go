package ws2812

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
)

func (s *Strip) String() string {
	if st, ok := s.tx.(fmt.Stringer); ok {
		return "ws2812{" + st.String() + "}"
	}
	return "ws2812"
}

// Halt turns all LEDs off.
func (s *Strip) Halt() error {
	return s.Show(nil)
}

// ColorModel implements display.Drawer. There's no surprise, it is
// color.NRGBAModel.
func (s *Strip) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. The strip is one pixel high and X is the
// LED index.
func (s *Strip) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.numPixels, 1)
}

// Draw implements display.Drawer. Only the LEDs inside dstRect are
// re-encoded, the rest keep their colour.
func (s *Strip) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	r := dstRect.Intersect(s.Bounds())
	if r.Empty() {
		return nil
	}
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if srcR.Dx() < r.Dx() {
		r.Max.X = r.Min.X + srcR.Dx()
	}
	if r.Empty() || srcR.Dy() <= 0 {
		return nil
	}

	pixels := make([]Pixel, r.Dx())
	for i := range pixels {
		pixels[i] = FromColor(src.At(srcR.Min.X+i, srcR.Min.Y))
	}
	if _, err := s.Update(r.Min.X, pixels); err != nil {
		return err
	}
	return s.Flush()
}

var _ display.Drawer = &Strip{}
