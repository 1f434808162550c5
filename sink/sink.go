// sink.go implements the video sink: negotiated geometry, the buffer
// pool and the presentation path on top of a display device and layer.

// Package sink ties the pieces together: it negotiates frame geometry
// against the output device's mode list, recycles renderable buffers,
// computes frame placement and presents frames on a display layer.
package sink

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/helpers/closuresignaler"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/negotiation"
	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
	"github.com/xaionaro-go/xsync"
)

// Config is the static configuration of a Sink.
type Config struct {
	// Window is where frames land on the layer. A zero width/height
	// means the whole layer; out-of-range offsets wrap around the
	// layer dimensions.
	Window types.Rectangle

	KeepAspectRatio bool

	// VSync makes the render path wait for the vertical blank before
	// touching the layer.
	VSync bool

	// ColorBalance, when set, is pushed to the layer at setup (layers
	// without the adjustment capability only get a warning).
	ColorBalance *types.ColorBalance

	// AcceptProposal is consulted when reverse negotiation wants a
	// different upstream frame size; nil accepts every proposal.
	AcceptProposal func(ctx context.Context, proposed types.Resolution) bool

	// OnFirstFrame fires once, after the first frame was presented.
	OnFirstFrame func(ctx context.Context)
}

type Sink struct {
	*closuresignaler.ClosureSignaler
	Locker xsync.Mutex

	cfg    Config
	device display.Device
	layer  display.Layer

	// captured once at setup, read-only afterwards:
	modes  []types.VideoMode
	window types.Rectangle

	pool *surface.Pool

	videoWidth    int
	videoHeight   int
	pixelFormat   types.PixelFormat
	outResolution types.Resolution
	balance       types.ColorBalance
	firstRendered bool
}

func New(
	ctx context.Context,
	cfg Config,
	device display.Device,
	layer display.Layer,
) (_ret *Sink, _err error) {
	logger.Tracef(ctx, "New")
	defer func() { logger.Tracef(ctx, "/New: %v", _err) }()
	if device == nil {
		return nil, fmt.Errorf("a display device is required")
	}
	if layer == nil {
		return nil, fmt.Errorf("a display layer is required")
	}

	out := layer.Resolution()
	window := cfg.Window.WrapInto(out)
	logger.Debugf(ctx, "using window %s on a %s layer", window, out)

	s := &Sink{
		ClosureSignaler: closuresignaler.New(),
		cfg:             cfg,
		device:          device,
		layer:           layer,
		modes:           device.Modes(),
		window:          window,
		pool:            surface.NewPool(device),
		outResolution:   out,
		balance:         types.DefaultColorBalance(),
	}
	if cfg.ColorBalance != nil {
		if err := s.SetColorBalance(ctx, *cfg.ColorBalance); err != nil {
			logger.Warnf(ctx, "unable to set the initial color balance: %v", err)
		}
	}
	return s, nil
}

// SetFormat applies a newly negotiated frame geometry: it adapts the
// device's video mode, reconfigures the layer's pixel format and
// invalidates the buffer pool when the geometry changed.
func (s *Sink) SetFormat(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
) (_err error) {
	logger.Tracef(ctx, "SetFormat(%dx%d, %s)", width, height, pixelFormat)
	defer func() { logger.Tracef(ctx, "/SetFormat(%dx%d, %s): %v", width, height, pixelFormat, _err) }()
	if s.IsClosed() {
		return fmt.Errorf("the sink is closed")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid video geometry %dx%d", width, height)
	}
	if pixelFormat == types.PixelFormatUnknown {
		return fmt.Errorf("refusing to negotiate an unknown pixel format")
	}
	if !s.device.SupportsPixelFormat(pixelFormat) {
		return fmt.Errorf("the device does not support pixel format %s", pixelFormat)
	}
	return xsync.DoA4R1(ctx, &s.Locker, s.setFormat, ctx, width, height, pixelFormat)
}

func (s *Sink) setFormat(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
) error {
	if mode, ok := negotiation.BestMode(s.modes, types.Resolution{Width: width, Height: height}); ok {
		logger.Debugf(ctx, "setting video mode to %s", mode)
		if err := s.device.SetVideoMode(ctx, mode); err != nil {
			logger.Warnf(ctx, "unable to set video mode %s: %v", mode, err)
		}
	}

	if err := s.layer.Configure(ctx, display.LayerConfig{PixelFormat: pixelFormat}); err != nil {
		logger.Warnf(ctx, "unable to configure the layer to %s: %v", pixelFormat, err)
	} else {
		s.outResolution = s.layer.Resolution()
		logger.Debugf(ctx, "the layer is now configured to %s %s", s.outResolution, s.layer.PixelFormat())
	}

	if width != s.videoWidth || height != s.videoHeight || pixelFormat != s.pixelFormat {
		s.pool.Clear(ctx)
	}
	s.videoWidth = width
	s.videoHeight = height
	s.pixelFormat = pixelFormat
	s.pool.SetCurrent(ctx, width, height, pixelFormat)
	return nil
}

// VideoResolution is the currently negotiated frame geometry.
func (s *Sink) VideoResolution(ctx context.Context) types.Resolution {
	return xsync.DoR1(ctx, &s.Locker, func() types.Resolution {
		return types.Resolution{Width: s.videoWidth, Height: s.videoHeight}
	})
}

func (s *Sink) PixelFormat(ctx context.Context) types.PixelFormat {
	return xsync.DoR1(ctx, &s.Locker, func() types.PixelFormat {
		return s.pixelFormat
	})
}

func (s *Sink) Window() types.Rectangle {
	return s.window
}

func (s *Sink) PoolStatistics() surface.PoolStatistics {
	return s.pool.Statistics()
}

// Close tears the sink down and destroys every pooled buffer. Callers
// must guarantee that no buffer is still borrowed.
func (s *Sink) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close") }()
	s.ClosureSignaler.Close(ctx)
	s.pool.Clear(ctx)
	return nil
}
