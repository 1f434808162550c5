// pixel_format.go defines the PixelFormat enum and its methods.

package types

import (
	"fmt"
	"strings"
)

// PixelFormat is the memory layout of a video frame as understood by the
// display side. It is immutable once assigned to a buffer: it drives both
// the allocation size and the blit compatibility of that buffer.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatRGB16
	PixelFormatRGB24
	PixelFormatRGB32
	PixelFormatARGB
	PixelFormatYUY2
	PixelFormatUYVY
	PixelFormatI420
	PixelFormatYV12
	PixelFormatNV12
	EndOfPixelFormat
)

func PixelFormats() []PixelFormat {
	return []PixelFormat{
		PixelFormatRGB16,
		PixelFormatRGB24,
		PixelFormatRGB32,
		PixelFormatARGB,
		PixelFormatYUY2,
		PixelFormatUYVY,
		PixelFormatI420,
		PixelFormatYV12,
		PixelFormatNV12,
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB16:
		return "RGB16"
	case PixelFormatRGB24:
		return "RGB24"
	case PixelFormatRGB32:
		return "RGB32"
	case PixelFormatARGB:
		return "ARGB"
	case PixelFormatYUY2:
		return "YUY2"
	case PixelFormatUYVY:
		return "UYVY"
	case PixelFormatI420:
		return "I420"
	case PixelFormatYV12:
		return "YV12"
	case PixelFormatNV12:
		return "NV12"
	case PixelFormatUnknown:
		return "unknown"
	default:
		return "PixelFormat(" + fmt.Sprintf("%d", int(f)) + ")"
	}
}

func PixelFormatFromString(s string) (PixelFormat, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	for _, f := range PixelFormats() {
		if f.String() == s {
			return f, nil
		}
	}
	return PixelFormatUnknown, fmt.Errorf("unsupported pixel format '%s'", s)
}

// BitsPerPixel is the average amount of bits a pixel occupies, including
// the chroma planes for the planar layouts.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case PixelFormatRGB16, PixelFormatYUY2, PixelFormatUYVY:
		return 16
	case PixelFormatRGB24:
		return 24
	case PixelFormatRGB32, PixelFormatARGB:
		return 32
	case PixelFormatI420, PixelFormatYV12, PixelFormatNV12:
		return 12
	default:
		return 0
	}
}

func (f PixelFormat) IsRGB() bool {
	switch f {
	case PixelFormatRGB16, PixelFormatRGB24, PixelFormatRGB32, PixelFormatARGB:
		return true
	default:
		return false
	}
}

func (f PixelFormat) IsYUV() bool {
	switch f {
	case PixelFormatYUY2, PixelFormatUYVY, PixelFormatI420, PixelFormatYV12, PixelFormatNV12:
		return true
	default:
		return false
	}
}

func (f PixelFormat) HasAlpha() bool {
	return f == PixelFormatARGB
}

func (f PixelFormat) IsPlanar() bool {
	switch f {
	case PixelFormatI420, PixelFormatYV12, PixelFormatNV12:
		return true
	default:
		return false
	}
}

// FrameSize returns the amount of bytes a tightly packed frame of the
// given geometry occupies, or 0 for an unknown format.
func (f PixelFormat) FrameSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	switch f {
	case PixelFormatI420, PixelFormatYV12, PixelFormatNV12:
		return width*height + width*height/2
	case PixelFormatRGB16, PixelFormatYUY2, PixelFormatUYVY:
		return 2 * width * height
	case PixelFormatRGB24:
		return 3 * width * height
	case PixelFormatRGB32, PixelFormatARGB:
		return 4 * width * height
	default:
		return 0
	}
}
