// render.go implements the frame presentation path.

package sink

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/layersink/geometry"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
	"github.com/xaionaro-go/xsync"
)

// RenderFrame presents one borrowed buffer on the layer. Buffers backed
// by a native surface are blitted (stretch-blitted when the device
// scales in hardware); plain-memory buffers are copied line by line
// into a locked region of the layer, clipped or centered as the window
// allows.
func (s *Sink) RenderFrame(
	ctx context.Context,
	buf *surface.Buffer,
) (_err error) {
	logger.Tracef(ctx, "RenderFrame")
	defer func() { logger.Tracef(ctx, "/RenderFrame: %v", _err) }()
	if s.IsClosed() {
		return fmt.Errorf("the sink is closed")
	}
	if buf == nil {
		return fmt.Errorf("a nil buffer was submitted")
	}
	return xsync.DoA2R1(ctx, &s.Locker, s.renderFrame, ctx, buf)
}

func (s *Sink) renderFrame(
	ctx context.Context,
	buf *surface.Buffer,
) error {
	if buf.HasSurface() {
		if err := s.blitFrame(ctx, buf); err != nil {
			return err
		}
	} else {
		if err := s.copyFrame(ctx, buf); err != nil {
			return err
		}
	}

	if !s.firstRendered {
		s.firstRendered = true
		if s.cfg.OnFirstFrame != nil {
			s.cfg.OnFirstFrame(ctx)
		}
	}
	return nil
}

func (s *Sink) blitFrame(
	ctx context.Context,
	buf *surface.Buffer,
) error {
	src := types.Rectangle{Width: s.videoWidth, Height: s.videoHeight}
	hwScaling := s.device.HardwareScaling()
	result := geometry.Fit(src, s.window, hwScaling, s.cfg.KeepAspectRatio)
	logger.Debugf(ctx, "blitting %s into %s", src, result)
	if result.Empty() {
		return nil
	}

	if err := s.waitForSync(ctx); err != nil {
		return err
	}
	if hwScaling {
		if err := s.layer.StretchBlit(ctx, buf.Surface(), result); err != nil {
			return fmt.Errorf("unable to stretch-blit the frame: %w", err)
		}
		return nil
	}
	clip := types.Rectangle{Width: result.Width, Height: result.Height}
	if err := s.layer.Blit(ctx, buf.Surface(), clip, result.X, result.Y); err != nil {
		return fmt.Errorf("unable to blit the frame: %w", err)
	}
	return nil
}

func (s *Sink) copyFrame(
	ctx context.Context,
	buf *surface.Buffer,
) error {
	// no surface to blit from, so no acceleration either: the frame is
	// centered when the window is bigger, clipped when it is smaller
	src := types.Rectangle{Width: buf.Tag.Width, Height: buf.Tag.Height}
	if src.Empty() {
		src = types.Rectangle{Width: s.videoWidth, Height: s.videoHeight}
	}
	result := geometry.Fit(src, s.window, false, s.cfg.KeepAspectRatio)
	logger.Debugf(ctx, "copying %s into %s", src, result)
	if result.Empty() {
		return nil
	}

	if err := s.waitForSync(ctx); err != nil {
		return err
	}
	region, unlock, err := s.layer.LockRegion(ctx, result)
	if err != nil {
		return fmt.Errorf("unable to lock the target region %s: %w", result, err)
	}
	defer unlock()

	data := buf.Bytes()
	srcPitch := len(data) / src.Height
	for line := 0; line < result.Height; line++ {
		srcOff := line * srcPitch
		dstOff := line * region.Pitch
		if srcOff >= len(data) || dstOff >= len(region.Data) {
			break
		}
		n := min(srcPitch, region.Pitch, len(data)-srcOff, len(region.Data)-dstOff)
		copy(region.Data[dstOff:dstOff+n], data[srcOff:srcOff+n])
	}
	return nil
}

func (s *Sink) waitForSync(ctx context.Context) error {
	if !s.cfg.VSync {
		return nil
	}
	if err := s.layer.WaitForSync(ctx); err != nil {
		return fmt.Errorf("unable to wait for the vertical blank: %w", err)
	}
	return nil
}
