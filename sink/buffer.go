// buffer.go implements the buffer-allocation path, including reverse
// size negotiation against the device's mode list.

package sink

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/negotiation"
	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
)

// AllocBuffer checks a renderable buffer out of the pool for the given
// frame geometry. Without hardware scaling it first considers proposing
// a different geometry to upstream (so the frames arrive pre-sized for
// the output and need no scaling); the proposal is applied only when
// accepted via Config.AcceptProposal.
func (s *Sink) AllocBuffer(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
	byteSize int,
) (_ret *surface.Buffer, _err error) {
	logger.Tracef(ctx, "AllocBuffer(%dx%d, %s, %d)", width, height, pixelFormat, byteSize)
	defer func() { logger.Tracef(ctx, "/AllocBuffer(%dx%d, %s, %d): %v", width, height, pixelFormat, byteSize, _err) }()
	if s.IsClosed() {
		return nil, fmt.Errorf("the sink is closed")
	}

	if !s.device.HardwareScaling() {
		req := types.Resolution{Width: width, Height: height}
		proposed, proposedSize := negotiation.ProposeSize(
			ctx,
			req,
			byteSize,
			s.modes,
			s.device.DefaultResolution(),
			false,
			s.cfg.KeepAspectRatio,
		)
		if proposed != req && s.acceptProposal(ctx, proposed) {
			logger.Debugf(ctx, "we would love to receive a %s video, buffer size is now %d bytes", proposed, proposedSize)
			width, height = proposed.Width, proposed.Height
			byteSize = proposedSize
		}
	}

	return s.pool.Acquire(ctx, width, height, pixelFormat, byteSize)
}

func (s *Sink) acceptProposal(
	ctx context.Context,
	proposed types.Resolution,
) bool {
	if s.cfg.AcceptProposal == nil {
		return true
	}
	accepted := s.cfg.AcceptProposal(ctx, proposed)
	if !accepted {
		logger.Debugf(ctx, "upstream does not accept the proposed geometry %s", proposed)
	}
	return accepted
}

// ReleaseBuffer hands a borrowed buffer back: it gets pooled while its
// geometry still matches the negotiated one, destroyed otherwise.
func (s *Sink) ReleaseBuffer(
	ctx context.Context,
	buf *surface.Buffer,
) {
	s.pool.Release(ctx, buf)
}
