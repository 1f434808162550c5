// layer.go implements the software framebuffer layer.

package sysmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
)

// Layer is a software display plane backed by one contiguous
// framebuffer. Lock/unlock pairs from LockRegion serialize against the
// blit operations through a plain mutex.
type Layer struct {
	locker      sync.Mutex
	resolution  types.Resolution
	pixelFormat types.PixelFormat
	pitch       int
	framebuffer []byte
	balance     types.ColorBalance
}

var (
	_ display.Layer         = (*Layer)(nil)
	_ display.ColorAdjuster = (*Layer)(nil)
)

func NewLayer(resolution types.Resolution, pixelFormat types.PixelFormat) (*Layer, error) {
	if resolution.IsZero() {
		return nil, fmt.Errorf("invalid layer resolution %s", resolution)
	}
	if pixelFormat == types.PixelFormatUnknown {
		return nil, fmt.Errorf("a layer requires a known pixel format")
	}
	l := &Layer{
		resolution: resolution,
		balance:    types.DefaultColorBalance(),
	}
	l.setPixelFormat(pixelFormat)
	return l, nil
}

func (l *Layer) setPixelFormat(f types.PixelFormat) {
	l.pixelFormat = f
	l.pitch = (l.resolution.Width*f.BitsPerPixel() + 7) / 8
	l.framebuffer = make([]byte, l.pitch*l.resolution.Height)
}

func (l *Layer) Configure(ctx context.Context, cfg display.LayerConfig) error {
	logger.Debugf(ctx, "Configure(%s)", cfg.PixelFormat)
	if cfg.PixelFormat == types.PixelFormatUnknown {
		return fmt.Errorf("refusing to configure the layer to an unknown pixel format")
	}
	l.locker.Lock()
	defer l.locker.Unlock()
	if cfg.PixelFormat != l.pixelFormat {
		l.setPixelFormat(cfg.PixelFormat)
	}
	return nil
}

func (l *Layer) Resolution() types.Resolution {
	return l.resolution
}

func (l *Layer) PixelFormat() types.PixelFormat {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.pixelFormat
}

// Framebuffer exposes the raw plane memory (for tests and for pushing
// the composed image somewhere else).
func (l *Layer) Framebuffer() []byte {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.framebuffer
}

func (l *Layer) Pitch() int {
	return l.pitch
}

func (l *Layer) bytesPerPixel() int {
	if l.resolution.Width == 0 {
		return 0
	}
	return l.pitch / l.resolution.Width
}

func (l *Layer) Blit(
	ctx context.Context,
	src surface.Surface,
	srcRect types.Rectangle,
	x, y int,
) error {
	logger.Tracef(ctx, "Blit(%s -> %d,%d)", srcRect, x, y)
	l.locker.Lock()
	defer l.locker.Unlock()

	srcRes := src.Resolution()
	if srcRes.IsZero() || srcRect.Empty() {
		return nil
	}
	srcPitch := src.Pitch()
	srcRowBytes := srcRect.Width * srcPitch / srcRes.Width

	bpp := l.bytesPerPixel()
	for line := 0; line < srcRect.Height; line++ {
		dstY := y + line
		srcY := srcRect.Y + line
		if dstY < 0 || dstY >= l.resolution.Height || srcY < 0 || srcY >= srcRes.Height {
			continue
		}
		dstOff := dstY*l.pitch + x*bpp
		srcOff := srcY*srcPitch + srcRect.X*srcPitch/srcRes.Width
		if dstOff < 0 || dstOff >= len(l.framebuffer) || srcOff < 0 || srcOff >= len(src.Bytes()) {
			continue
		}
		n := min(srcRowBytes, len(l.framebuffer)-dstOff, len(src.Bytes())-srcOff)
		copy(l.framebuffer[dstOff:dstOff+n], src.Bytes()[srcOff:srcOff+n])
	}
	return nil
}

func (l *Layer) StretchBlit(
	ctx context.Context,
	src surface.Surface,
	dstRect types.Rectangle,
) error {
	logger.Tracef(ctx, "StretchBlit(-> %s)", dstRect)
	l.locker.Lock()
	defer l.locker.Unlock()

	srcRes := src.Resolution()
	if srcRes.IsZero() || dstRect.Empty() {
		return nil
	}
	srcPitch := src.Pitch()
	srcBPP := srcPitch / srcRes.Width
	dstBPP := l.bytesPerPixel()

	// nearest-neighbor; format conversion is out of scope, mismatched
	// pixel sizes copy the overlapping bytes only
	n := min(srcBPP, dstBPP)
	for dy := 0; dy < dstRect.Height; dy++ {
		y := dstRect.Y + dy
		if y < 0 || y >= l.resolution.Height {
			continue
		}
		sy := dy * srcRes.Height / dstRect.Height
		for dx := 0; dx < dstRect.Width; dx++ {
			x := dstRect.X + dx
			if x < 0 || x >= l.resolution.Width {
				continue
			}
			sx := dx * srcRes.Width / dstRect.Width
			srcOff := sy*srcPitch + sx*srcBPP
			dstOff := y*l.pitch + x*dstBPP
			if srcOff+n > len(src.Bytes()) || dstOff+n > len(l.framebuffer) {
				continue
			}
			copy(l.framebuffer[dstOff:dstOff+n], src.Bytes()[srcOff:srcOff+n])
		}
	}
	return nil
}

func (l *Layer) LockRegion(
	ctx context.Context,
	rect types.Rectangle,
) (display.Region, func(), error) {
	logger.Tracef(ctx, "LockRegion(%s)", rect)
	if rect.Empty() {
		return display.Region{}, nil, fmt.Errorf("refusing to lock an empty region %s", rect)
	}

	l.locker.Lock()
	x := max(rect.X, 0)
	y := max(rect.Y, 0)
	if x >= l.resolution.Width || y >= l.resolution.Height {
		l.locker.Unlock()
		return display.Region{}, nil, fmt.Errorf("region %s is outside of the layer %s", rect, l.resolution)
	}
	off := y*l.pitch + x*l.bytesPerPixel()
	return display.Region{
		Data:  l.framebuffer[off:],
		Pitch: l.pitch,
	}, l.locker.Unlock, nil
}

func (l *Layer) Clear(ctx context.Context) error {
	logger.Tracef(ctx, "Clear")
	l.locker.Lock()
	defer l.locker.Unlock()
	clear(l.framebuffer)
	return nil
}

// WaitForSync on a software layer returns immediately: there is no
// vertical blank to wait for.
func (l *Layer) WaitForSync(ctx context.Context) error {
	return ctx.Err()
}

func (l *Layer) SetColorAdjustment(
	ctx context.Context,
	cb types.ColorBalance,
) error {
	logger.Debugf(ctx, "SetColorAdjustment(%+v)", cb)
	l.locker.Lock()
	defer l.locker.Unlock()
	l.balance = cb.Clamp()
	return nil
}

func (l *Layer) ColorAdjustment() types.ColorBalance {
	l.locker.Lock()
	defer l.locker.Unlock()
	return l.balance
}
