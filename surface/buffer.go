package surface

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/layersink/types"
)

// Tag is the geometry a pooled buffer was allocated for. A buffer whose
// tag diverges from the currently negotiated geometry is destroyed
// instead of reused.
type Tag struct {
	Width       int
	Height      int
	PixelFormat types.PixelFormat
}

func (t Tag) String() string {
	return fmt.Sprintf("%dx%d:%s", t.Width, t.Height, t.PixelFormat)
}

// Buffer is one renderable frame buffer. It either wraps a native
// surface or, as a fallback, a plain memory block sized exactly to the
// requested byte count. Between a checkout and a release the consumer
// borrows the buffer for exactly one render cycle.
type Buffer struct {
	Tag Tag

	surface Surface
	data    []byte
}

// Bytes is the writable frame memory. Its length equals the byte size
// the buffer was acquired with.
func (b *Buffer) Bytes() []byte {
	if b.surface != nil {
		return b.surface.Bytes()
	}
	return b.data
}

// Pitch is the amount of bytes per line of the luma/packed plane.
func (b *Buffer) Pitch() int {
	if b.surface != nil {
		return b.surface.Pitch()
	}
	if b.Tag.Height <= 0 {
		return 0
	}
	return len(b.data) / b.Tag.Height
}

// HasSurface reports whether the buffer is backed by a native surface
// (and is therefore blittable without an intermediate copy).
func (b *Buffer) HasSurface() bool {
	return b.surface != nil
}

func (b *Buffer) Surface() Surface {
	return b.surface
}

func (b *Buffer) destroy(ctx context.Context) {
	if b.surface != nil {
		b.surface.Release(ctx)
		b.surface = nil
	}
	b.data = nil
}
