// translate.go implements the mapping between layout descriptors and pixel formats.

package format

import (
	"github.com/xaionaro-go/layersink/types"
)

// FormatFromDescriptor returns the PixelFormat matching the given layout
// descriptor, or PixelFormatUnknown if no rule matches. Matching is
// exact: the declared bit depth, byte order and channel masks (or the
// four-character code) must equal one of the known combinations; there
// is no best-effort guessing.
func FormatFromDescriptor(d Descriptor) types.PixelFormat {
	if d.IsYUV() {
		switch d.FourCC {
		case FourCCI420:
			return types.PixelFormatI420
		case FourCCYV12:
			return types.PixelFormatYV12
		case FourCCYUY2:
			return types.PixelFormatYUY2
		case FourCCUYVY:
			return types.PixelFormatUYVY
		case FourCCNV12:
			return types.PixelFormatNV12
		}
		return types.PixelFormatUnknown
	}

	if !d.IsRGB() || d.Endianness != BigEndian {
		return types.PixelFormatUnknown
	}

	if !d.HasAlpha {
		switch {
		case d.BitsPerPixel == 16 && d.Depth == 16 &&
			d.RedMask == 0xf800 && d.GreenMask == 0x07e0 && d.BlueMask == 0x001f:
			return types.PixelFormatRGB16
		case d.BitsPerPixel == 24 && d.Depth == 24 &&
			d.RedMask == 0xff0000 && d.GreenMask == 0x00ff00 && d.BlueMask == 0x0000ff:
			return types.PixelFormatRGB24
		case d.BitsPerPixel == 32 && d.Depth == 24 &&
			d.RedMask == 0x00ff0000 && d.GreenMask == 0x0000ff00 && d.BlueMask == 0x000000ff:
			return types.PixelFormatRGB32
		}
		return types.PixelFormatUnknown
	}

	if d.BitsPerPixel == 32 && d.Depth == 32 &&
		d.AlphaMask == 0xff000000 && d.RedMask == 0x00ff0000 &&
		d.GreenMask == 0x0000ff00 && d.BlueMask == 0x000000ff {
		return types.PixelFormatARGB
	}
	return types.PixelFormatUnknown
}

// DescriptorFromFormat is the inverse of FormatFromDescriptor: it
// produces the canonical layout descriptor of the given pixel format.
// It reports false for PixelFormatUnknown (and anything else outside
// the table).
func DescriptorFromFormat(f types.PixelFormat) (Descriptor, bool) {
	switch f {
	case types.PixelFormatRGB16:
		return Descriptor{
			BitsPerPixel: 16,
			Depth:        16,
			Endianness:   BigEndian,
			RedMask:      0xf800,
			GreenMask:    0x07e0,
			BlueMask:     0x001f,
		}, true
	case types.PixelFormatRGB24:
		return Descriptor{
			BitsPerPixel: 24,
			Depth:        24,
			Endianness:   BigEndian,
			RedMask:      0xff0000,
			GreenMask:    0x00ff00,
			BlueMask:     0x0000ff,
		}, true
	case types.PixelFormatRGB32:
		return Descriptor{
			BitsPerPixel: 32,
			Depth:        24,
			Endianness:   BigEndian,
			RedMask:      0x00ff0000,
			GreenMask:    0x0000ff00,
			BlueMask:     0x000000ff,
		}, true
	case types.PixelFormatARGB:
		return Descriptor{
			BitsPerPixel: 32,
			Depth:        32,
			Endianness:   BigEndian,
			AlphaMask:    0xff000000,
			RedMask:      0x00ff0000,
			GreenMask:    0x0000ff00,
			BlueMask:     0x000000ff,
			HasAlpha:     true,
		}, true
	case types.PixelFormatYUY2:
		return Descriptor{FourCC: FourCCYUY2}, true
	case types.PixelFormatUYVY:
		return Descriptor{FourCC: FourCCUYVY}, true
	case types.PixelFormatI420:
		return Descriptor{FourCC: FourCCI420}, true
	case types.PixelFormatYV12:
		return Descriptor{FourCC: FourCCYV12}, true
	case types.PixelFormatNV12:
		return Descriptor{FourCC: FourCCNV12}, true
	default:
		return Descriptor{}, false
	}
}
