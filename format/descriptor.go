// descriptor.go defines the structured description of a frame's memory layout.

// Package format translates between structured frame-layout descriptors
// and the PixelFormat enumeration of the display side.
package format

import (
	"fmt"
)

type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "LE"
	case BigEndian:
		return "BE"
	default:
		return fmt.Sprintf("Endianness(%d)", int(e))
	}
}

// Descriptor describes a frame's memory layout the way an upstream
// producer declares it: RGB layouts carry bit depth and channel masks,
// YUV layouts carry a four-character code. Exactly one of the two sides
// is populated.
type Descriptor struct {
	// YUV side:
	FourCC FourCC

	// RGB side:
	BitsPerPixel int
	Depth        int
	Endianness   Endianness
	RedMask      uint32
	GreenMask    uint32
	BlueMask     uint32
	AlphaMask    uint32
	HasAlpha     bool
}

func (d Descriptor) IsYUV() bool {
	return d.FourCC != 0
}

func (d Descriptor) IsRGB() bool {
	return d.FourCC == 0 && d.BitsPerPixel != 0
}

func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

func (d Descriptor) String() string {
	switch {
	case d.IsYUV():
		return fmt.Sprintf("yuv(%s)", d.FourCC)
	case d.HasAlpha:
		return fmt.Sprintf(
			"rgb(bpp:%d depth:%d %s a:%#x r:%#x g:%#x b:%#x)",
			d.BitsPerPixel, d.Depth, d.Endianness,
			d.AlphaMask, d.RedMask, d.GreenMask, d.BlueMask,
		)
	case d.IsRGB():
		return fmt.Sprintf(
			"rgb(bpp:%d depth:%d %s r:%#x g:%#x b:%#x)",
			d.BitsPerPixel, d.Depth, d.Endianness,
			d.RedMask, d.GreenMask, d.BlueMask,
		)
	default:
		return "<empty>"
	}
}
