// Package display defines the boundary to the display library: devices
// with mode lists and surface allocation, layers that present frames,
// and input event sources. Real hardware bindings and the software
// implementation both live behind these interfaces.
package display

import (
	"context"

	"github.com/xaionaro-go/layersink/surface"
	"github.com/xaionaro-go/layersink/types"
)

// Device is an output device: it knows its supported video modes and
// native pixel formats, and allocates renderable surfaces.
type Device interface {
	surface.Allocator

	// Modes is the device's static mode list, discovered once at setup.
	Modes() []types.VideoMode

	DefaultResolution() types.Resolution
	SupportsPixelFormat(types.PixelFormat) bool

	// HardwareScaling reports whether the device can stretch-blit, which
	// makes reverse size negotiation unnecessary.
	HardwareScaling() bool

	SetVideoMode(ctx context.Context, mode types.VideoMode) error
}

// LayerConfig is the subset of a layer's configuration this library
// drives.
type LayerConfig struct {
	PixelFormat types.PixelFormat
}

// Region is a locked writable window into a layer's memory.
type Region struct {
	// Data starts at the region's top-left corner; line n begins at
	// offset n*Pitch.
	Data []byte

	// Pitch is the amount of bytes per line of the underlying layer,
	// not of the region.
	Pitch int
}

// Layer is a display plane frames are presented on.
type Layer interface {
	Configure(ctx context.Context, cfg LayerConfig) error
	Resolution() types.Resolution
	PixelFormat() types.PixelFormat

	// Blit copies srcRect of src to the given position, without scaling.
	Blit(ctx context.Context, src surface.Surface, srcRect types.Rectangle, x, y int) error

	// StretchBlit scales the whole of src into dstRect.
	StretchBlit(ctx context.Context, src surface.Surface, dstRect types.Rectangle) error

	// LockRegion grants write access to the given rectangle of the
	// layer (clipped to its bounds). The returned function unlocks the
	// region and must be called exactly once.
	LockRegion(ctx context.Context, rect types.Rectangle) (Region, func(), error)

	Clear(ctx context.Context) error

	// WaitForSync blocks until the next vertical blank.
	WaitForSync(ctx context.Context) error
}

// ColorAdjuster is an optional layer capability: hardware channels for
// brightness, contrast, hue and saturation.
type ColorAdjuster interface {
	SetColorAdjustment(ctx context.Context, cb types.ColorBalance) error
}

type EventType int

const (
	EventTypeUndefined EventType = iota
	EventTypeKeyPress
	EventTypeButtonPress
	EventTypeButtonRelease
	EventTypeAxisMotion
)

func (t EventType) String() string {
	switch t {
	case EventTypeKeyPress:
		return "key-press"
	case EventTypeButtonPress:
		return "button-press"
	case EventTypeButtonRelease:
		return "button-release"
	case EventTypeAxisMotion:
		return "axis-motion"
	default:
		return "undefined"
	}
}

// Event is one input event from the display side. Pointer coordinates
// are in output-window space.
type Event struct {
	Type   EventType
	Key    rune
	Button int
	X      float64
	Y      float64
}

// EventSource delivers input events. NextEvent blocks until an event
// arrives, the context is canceled, or the source is drained (in which
// case it reports false).
type EventSource interface {
	NextEvent(ctx context.Context) (Event, bool)
}
