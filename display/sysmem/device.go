package sysmem

import (
	"context"
	"fmt"
	"slices"

	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
)

// DeviceConfig describes the software device being emulated.
type DeviceConfig struct {
	Modes             []types.VideoMode
	DefaultResolution types.Resolution

	// PitchAlign rounds every surface's line pitch up to a multiple of
	// this value (0/1: tight packing). Hardware-like alignments make
	// the allocated size diverge from the tight frame size, which
	// forces buffer consumers onto their plain-memory path.
	PitchAlign int

	// HardwareScaling emulates a device with a stretch-blitter.
	HardwareScaling bool

	// PixelFormats limits the supported formats; empty means all known
	// formats are supported.
	PixelFormats []types.PixelFormat
}

type Device struct {
	cfg         DeviceConfig
	currentMode types.VideoMode
}

var _ surface.Allocator = (*Device)(nil)

func NewDevice(cfg DeviceConfig) *Device {
	return &Device{
		cfg: cfg,
	}
}

func (d *Device) Modes() []types.VideoMode {
	return slices.Clone(d.cfg.Modes)
}

func (d *Device) DefaultResolution() types.Resolution {
	return d.cfg.DefaultResolution
}

func (d *Device) SupportsPixelFormat(f types.PixelFormat) bool {
	if f == types.PixelFormatUnknown {
		return false
	}
	if len(d.cfg.PixelFormats) == 0 {
		return true
	}
	return slices.Contains(d.cfg.PixelFormats, f)
}

func (d *Device) HardwareScaling() bool {
	return d.cfg.HardwareScaling
}

func (d *Device) SetVideoMode(
	ctx context.Context,
	mode types.VideoMode,
) error {
	logger.Debugf(ctx, "SetVideoMode(%s)", mode)
	if !slices.Contains(d.cfg.Modes, mode) {
		return fmt.Errorf("the device does not support mode %s", mode)
	}
	d.currentMode = mode
	return nil
}

func (d *Device) CurrentMode() types.VideoMode {
	return d.currentMode
}

func (d *Device) pitchFor(width int, f types.PixelFormat) int {
	pitch := (width*f.BitsPerPixel() + 7) / 8
	if align := d.cfg.PitchAlign; align > 1 {
		pitch = (pitch + align - 1) / align * align
	}
	return pitch
}

func (d *Device) CreateSurface(
	ctx context.Context,
	width, height int,
	pixelFormat types.PixelFormat,
) (surface.Surface, error) {
	logger.Tracef(ctx, "CreateSurface(%dx%d, %s)", width, height, pixelFormat)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface geometry %dx%d", width, height)
	}
	if !d.SupportsPixelFormat(pixelFormat) {
		return nil, fmt.Errorf("unsupported pixel format %s", pixelFormat)
	}

	pitch := d.pitchFor(width, pixelFormat)
	return &Surface{
		data:        make([]byte, pitch*height),
		pitch:       pitch,
		resolution:  types.Resolution{Width: width, Height: height},
		pixelFormat: pixelFormat,
	}, nil
}
