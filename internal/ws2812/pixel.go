package ws2812

import (
	"fmt"
	"image/color"
)

// Pixel is the colour of a single LED.
type Pixel struct {
	R, G, B uint8
}

// RGB unpacks a 0xRRGGBB colour.
func RGB(c uint32) Pixel {
	return Pixel{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// Uint32 packs the pixel as 0xRRGGBB.
func (p Pixel) Uint32() uint32 {
	return uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

// Scale returns the pixel with every channel scaled by percent.
func (p Pixel) Scale(percent uint8) Pixel {
	return Pixel{
		R: Scale(p.R, percent),
		G: Scale(p.G, percent),
		B: Scale(p.B, percent),
	}
}

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}.RGBA()
}

func (p Pixel) String() string {
	return fmt.Sprintf("#%06x", p.Uint32())
}

// FromColor converts any colour to a Pixel. Alpha is dropped.
func FromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}
