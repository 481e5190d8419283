package ws2812

import "fmt"

// Layout selects how the two bytes of a symbol end up in the frame.
type Layout int

const (
	// LayoutFull writes both bytes of every symbol, low byte first.
	LayoutFull Layout = iota
	// LayoutLegacy writes only the low byte of every symbol and keeps the
	// off pattern in the byte after it. This is the stream older firmware
	// produced, where every second bit on the wire is always a 0.
	LayoutLegacy
)

func (l Layout) String() string {
	switch l {
	case LayoutFull:
		return "full"
	case LayoutLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout is the inverse of Layout.String.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "full":
		return LayoutFull, nil
	case "legacy":
		return LayoutLegacy, nil
	}
	return 0, fmt.Errorf("%w: unknown layout %q", ErrInvalidArgument, s)
}

const (
	// BytesPerLED is the size of one encoded LED in the frame.
	BytesPerLED = channelsPerLED * bytesPerChannel

	channelsPerLED   = 3
	groupsPerChannel = 4
	bytesPerChannel  = groupsPerChannel * 2
)

// symbols maps a 2-bit group onto the two SPI bytes that shape it. At 8MHz
// 0xE0 holds the line high for 375ns (a 0 bit) and 0xFC for 750ns (a 1 bit).
// The low byte carries the more significant bit of the group.
var symbols = [4]uint16{0xE0E0, 0xFCE0, 0xE0FC, 0xFCFC}

// Symbol returns the table entry for a 2-bit group.
func Symbol(group uint8) uint16 {
	return symbols[group&0x03]
}

// OffSymbol is the symbol of a group of two 0 bits.
func OffSymbol() uint16 {
	return symbols[0]
}

// Scale applies a brightness percentage to a channel value, rounding down.
func Scale(v, percent uint8) uint8 {
	return uint8(uint16(v) * uint16(percent) / 100)
}

// putChannel encodes one channel value into dst, most significant group
// first. dst must hold bytesPerChannel bytes.
func (l Layout) putChannel(dst []byte, v uint8) {
	_ = dst[bytesPerChannel-1]
	for g := 0; g < groupsPerChannel; g++ {
		sym := symbols[v>>(6-2*g)&0x03]
		dst[2*g] = byte(sym)
		if l == LayoutLegacy {
			dst[2*g+1] = byte(symbols[0])
		} else {
			dst[2*g+1] = byte(sym >> 8)
		}
	}
}

// putPixel encodes a pixel, already scaled, in the GRB order the LEDs expect.
func (l Layout) putPixel(dst []byte, p Pixel) {
	l.putChannel(dst[0:bytesPerChannel], p.G)
	l.putChannel(dst[bytesPerChannel:2*bytesPerChannel], p.R)
	l.putChannel(dst[2*bytesPerChannel:3*bytesPerChannel], p.B)
}

// putOff writes the off pattern over dst. Both layouts agree on it.
func putOff(dst []byte) {
	lo, hi := byte(symbols[0]), byte(symbols[0]>>8)
	for i := 0; i+1 < len(dst); i += 2 {
		dst[i] = lo
		dst[i+1] = hi
	}
}

// Decode reads the colours back out of an encoded frame, the way the LEDs
// would see them. Any trailing partial LED is ignored.
func Decode(frame []byte) []Pixel {
	out := make([]Pixel, len(frame)/BytesPerLED)
	for i := range out {
		led := frame[i*BytesPerLED : (i+1)*BytesPerLED]
		out[i] = Pixel{
			G: decodeChannel(led[0:bytesPerChannel]),
			R: decodeChannel(led[bytesPerChannel : 2*bytesPerChannel]),
			B: decodeChannel(led[2*bytesPerChannel : 3*bytesPerChannel]),
		}
	}
	return out
}

// decodeChannel treats a byte that is still high after 4 clocks as a 1 bit.
func decodeChannel(src []byte) uint8 {
	var v uint8
	for _, b := range src {
		v <<= 1
		if b&0x08 != 0 {
			v |= 1
		}
	}
	return v
}
