// Package surface provides renderable buffers and a recycling pool for
// them, keyed by frame geometry.
package surface

import (
	"context"

	"github.com/xaionaro-go/layersink/types"
)

// Surface is a native renderable memory region owned by the display
// side, usable as a blit source.
type Surface interface {
	// Bytes is the backing memory of the surface; its length is
	// Pitch() multiplied by the surface height.
	Bytes() []byte

	// Pitch is the amount of bytes per line, including any padding the
	// display side added.
	Pitch() int

	Resolution() types.Resolution
	PixelFormat() types.PixelFormat

	// Release returns the surface's resources to the display side. The
	// surface must not be used afterwards.
	Release(ctx context.Context)
}

// Allocator creates native surfaces. Implemented by display backends.
type Allocator interface {
	CreateSurface(
		ctx context.Context,
		width, height int,
		pixelFormat types.PixelFormat,
	) (Surface, error)
}
