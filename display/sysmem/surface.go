// Package sysmem is a system-memory implementation of the display
// boundary: surfaces are plain byte slices and the layer is a software
// framebuffer. It backs the tests and the example application; real
// hardware layers plug in through the same interfaces.
package sysmem

import (
	"context"

	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/types"
)

type Surface struct {
	data        []byte
	pitch       int
	resolution  types.Resolution
	pixelFormat types.PixelFormat
}

func (s *Surface) Bytes() []byte {
	return s.data
}

func (s *Surface) Pitch() int {
	return s.pitch
}

func (s *Surface) Resolution() types.Resolution {
	return s.resolution
}

func (s *Surface) PixelFormat() types.PixelFormat {
	return s.pixelFormat
}

func (s *Surface) Release(ctx context.Context) {
	logger.Tracef(ctx, "Release(%s:%s)", s.resolution, s.pixelFormat)
	s.data = nil
}
