package sink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/display/sysmem"
	"github.com/xaionaro-go/layersink/types"
)

var testModes = []types.VideoMode{
	{Width: 720, Height: 480, BitsPerPixel: 16},
	{Width: 1280, Height: 720, BitsPerPixel: 16},
}

func newTestSink(
	t *testing.T,
	cfg Config,
	deviceCfg sysmem.DeviceConfig,
) (*Sink, *sysmem.Device, *sysmem.Layer) {
	t.Helper()
	ctx := context.Background()
	if deviceCfg.Modes == nil {
		deviceCfg.Modes = testModes
	}
	if deviceCfg.DefaultResolution.IsZero() {
		deviceCfg.DefaultResolution = types.Resolution{Width: 1280, Height: 720}
	}
	device := sysmem.NewDevice(deviceCfg)
	layer, err := sysmem.NewLayer(types.Resolution{Width: 1280, Height: 720}, types.PixelFormatRGB16)
	require.NoError(t, err)
	s, err := New(ctx, cfg, device, layer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s, device, layer
}

func TestSinkSetFormat(t *testing.T) {
	ctx := context.Background()
	s, device, layer := newTestSink(t, Config{}, sysmem.DeviceConfig{})

	require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))
	require.Equal(t, types.Resolution{Width: 720, Height: 480}, s.VideoResolution(ctx))
	require.Equal(t, types.PixelFormatRGB16, s.PixelFormat(ctx))
	require.Equal(t, testModes[0], device.CurrentMode())
	require.Equal(t, types.PixelFormatRGB16, layer.PixelFormat())

	require.Error(t, s.SetFormat(ctx, 0, 480, types.PixelFormatRGB16))
	require.Error(t, s.SetFormat(ctx, 720, 480, types.PixelFormatUnknown))
}

func TestSinkSetFormatRejectsUnsupportedFormat(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{
		PixelFormats: []types.PixelFormat{types.PixelFormatRGB16},
	})
	require.Error(t, s.SetFormat(ctx, 720, 480, types.PixelFormatI420))
}

func TestSinkPoolInvalidationOnFormatChange(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{})

	require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))
	buf, err := s.AllocBuffer(ctx, 720, 480, types.PixelFormatRGB16, 720*480*2)
	require.NoError(t, err)
	s.ReleaseBuffer(ctx, buf)
	require.Equal(t, uint64(1), s.PoolStatistics().Misses)

	// the same geometry again: the pooled buffer must be reused
	buf, err = s.AllocBuffer(ctx, 720, 480, types.PixelFormatRGB16, 720*480*2)
	require.NoError(t, err)
	s.ReleaseBuffer(ctx, buf)
	require.Equal(t, uint64(1), s.PoolStatistics().Hits)

	// a different geometry: the pool is cleared, a fresh allocation happens
	require.NoError(t, s.SetFormat(ctx, 1280, 720, types.PixelFormatRGB16))
	buf, err = s.AllocBuffer(ctx, 1280, 720, types.PixelFormatRGB16, 1280*720*2)
	require.NoError(t, err)
	require.Equal(t, 1280, buf.Tag.Width)
	s.ReleaseBuffer(ctx, buf)
	require.Equal(t, uint64(2), s.PoolStatistics().Misses)
}

func TestSinkReverseNegotiation(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted by default", func(t *testing.T) {
		s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{})
		require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))

		// 640x480 does not match any mode, so the sink asks for the
		// closest one instead
		buf, err := s.AllocBuffer(ctx, 640, 480, types.PixelFormatRGB16, 640*480*2)
		require.NoError(t, err)
		require.Equal(t, 720, buf.Tag.Width)
		require.Equal(t, 480, buf.Tag.Height)
		require.Len(t, buf.Bytes(), 720*480*2)
		s.ReleaseBuffer(ctx, buf)
	})

	t.Run("rejected by the callback", func(t *testing.T) {
		var proposed types.Resolution
		s, _, _ := newTestSink(t, Config{
			AcceptProposal: func(ctx context.Context, res types.Resolution) bool {
				proposed = res
				return false
			},
		}, sysmem.DeviceConfig{})
		require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))

		buf, err := s.AllocBuffer(ctx, 640, 480, types.PixelFormatRGB16, 640*480*2)
		require.NoError(t, err)
		require.Equal(t, types.Resolution{Width: 720, Height: 480}, proposed)
		require.Equal(t, 640, buf.Tag.Width)
		require.Len(t, buf.Bytes(), 640*480*2)
		s.ReleaseBuffer(ctx, buf)
	})

	t.Run("skipped with hardware scaling", func(t *testing.T) {
		s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{HardwareScaling: true})
		require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))

		buf, err := s.AllocBuffer(ctx, 640, 480, types.PixelFormatRGB16, 640*480*2)
		require.NoError(t, err)
		require.Equal(t, 640, buf.Tag.Width)
		s.ReleaseBuffer(ctx, buf)
	})
}

func TestSinkRenderFrameBlitPath(t *testing.T) {
	ctx := context.Background()
	var firstFrame bool
	s, _, layer := newTestSink(t, Config{
		OnFirstFrame: func(ctx context.Context) { firstFrame = true },
	}, sysmem.DeviceConfig{})
	require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))

	buf, err := s.AllocBuffer(ctx, 720, 480, types.PixelFormatRGB16, 720*480*2)
	require.NoError(t, err)
	require.True(t, buf.HasSurface())
	for i := range buf.Bytes() {
		buf.Bytes()[i] = 0xaa
	}

	require.NoError(t, s.RenderFrame(ctx, buf))
	s.ReleaseBuffer(ctx, buf)
	require.True(t, firstFrame)

	// 720x480 lands centered on the 1280x720 layer
	fb := layer.Framebuffer()
	pitch := layer.Pitch()
	centerX := (1280 - 720) / 2
	centerY := (720 - 480) / 2
	require.Equal(t, byte(0xaa), fb[centerY*pitch+centerX*2])
	require.Equal(t, byte(0x00), fb[0])
}

func TestSinkRenderFrameCopyPath(t *testing.T) {
	ctx := context.Background()
	// a large pitch alignment makes native surfaces bigger than the
	// tight frame size, forcing buffers onto plain memory
	s, _, layer := newTestSink(t, Config{}, sysmem.DeviceConfig{PitchAlign: 4096})
	require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))

	buf, err := s.AllocBuffer(ctx, 720, 480, types.PixelFormatRGB16, 720*480*2)
	require.NoError(t, err)
	require.False(t, buf.HasSurface())
	require.Equal(t, uint64(1), s.PoolStatistics().Fallbacks)
	for i := range buf.Bytes() {
		buf.Bytes()[i] = 0xbb
	}

	require.NoError(t, s.RenderFrame(ctx, buf))
	s.ReleaseBuffer(ctx, buf)

	fb := layer.Framebuffer()
	pitch := layer.Pitch()
	centerX := (1280 - 720) / 2
	centerY := (720 - 480) / 2
	require.Equal(t, byte(0xbb), fb[centerY*pitch+centerX*2])
	require.Equal(t, byte(0x00), fb[0])
}

func TestSinkRenderFrameAfterClose(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{})
	require.NoError(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))
	require.NoError(t, s.Close(ctx))

	require.Error(t, s.SetFormat(ctx, 720, 480, types.PixelFormatRGB16))
	_, err := s.AllocBuffer(ctx, 720, 480, types.PixelFormatRGB16, 720*480*2)
	require.Error(t, err)
	require.Error(t, s.RenderFrame(ctx, nil))
}

func TestSinkTranslateCoordinates(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{})
	require.NoError(t, s.SetFormat(ctx, 640, 480, types.PixelFormatRGB16))

	// without scaling, 640x480 sits centered at 320,120 on the layer
	x, y := s.TranslateCoordinates(ctx, 320, 120)
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)

	x, y = s.TranslateCoordinates(ctx, 640, 360)
	require.Equal(t, 320.0, x)
	require.Equal(t, 240.0, y)

	// outside of the presented area
	x, y = s.TranslateCoordinates(ctx, 10, 10)
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)
}

func TestSinkServeEvents(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSink(t, Config{}, sysmem.DeviceConfig{})
	require.NoError(t, s.SetFormat(ctx, 640, 480, types.PixelFormatRGB16))

	events := sysmem.NewEventQueue(4)
	received := make(chan display.Event, 4)
	s.ServeEvents(ctx, events, func(ctx context.Context, ev display.Event) {
		received <- ev
	})

	require.True(t, events.Push(display.Event{Type: display.EventTypeKeyPress, Key: 'q'}))
	require.True(t, events.Push(display.Event{Type: display.EventTypeAxisMotion, X: 640, Y: 360}))
	events.Finish()

	ev := <-received
	require.Equal(t, display.EventTypeKeyPress, ev.Type)
	require.Equal(t, 'q', ev.Key)

	ev = <-received
	require.Equal(t, display.EventTypeAxisMotion, ev.Type)
	require.Equal(t, 320.0, ev.X)
	require.Equal(t, 240.0, ev.Y)

	select {
	case <-received:
		t.Fatal("no more events were expected")
	case <-time.After(10 * time.Millisecond):
	}
}

type plainLayer struct {
	display.Layer
}

func TestSinkColorBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("supported", func(t *testing.T) {
		s, _, layer := newTestSink(t, Config{}, sysmem.DeviceConfig{})
		require.NoError(t, s.SetColorBalance(ctx, types.ColorBalance{
			Brightness: 0x10000, // out of range, must be clamped
			Contrast:   0x8000,
			Hue:        0x8000,
			Saturation: 0x4000,
		}))
		cb := s.ColorBalance(ctx)
		require.Equal(t, types.ColorBalanceMax, cb.Brightness)
		require.Equal(t, 0x4000, cb.Saturation)
		require.Equal(t, cb, layer.ColorAdjustment())
	})

	t.Run("initial balance from the config", func(t *testing.T) {
		want := types.ColorBalance{
			Brightness: 0x9000,
			Contrast:   0x8000,
			Hue:        0x8000,
			Saturation: 0x8000,
		}
		s, _, layer := newTestSink(t, Config{ColorBalance: &want}, sysmem.DeviceConfig{})
		require.Equal(t, want, s.ColorBalance(ctx))
		require.Equal(t, want, layer.ColorAdjustment())
	})

	t.Run("unsupported layer", func(t *testing.T) {
		device := sysmem.NewDevice(sysmem.DeviceConfig{Modes: testModes})
		inner, err := sysmem.NewLayer(types.Resolution{Width: 1280, Height: 720}, types.PixelFormatRGB16)
		require.NoError(t, err)
		s, err := New(ctx, Config{}, device, plainLayer{Layer: inner})
		require.NoError(t, err)
		defer func() { _ = s.Close(ctx) }()

		err = s.SetColorBalance(ctx, types.DefaultColorBalance())
		require.ErrorIs(t, err, ErrColorBalanceNotSupported)
	})
}

func TestSinkWindowWrap(t *testing.T) {
	s, _, _ := newTestSink(t, Config{
		Window: types.Rectangle{X: 1290, Y: 10, Width: 100, Height: 100},
	}, sysmem.DeviceConfig{})
	require.Equal(t, types.Rectangle{X: 10, Y: 10, Width: 100, Height: 100}, s.Window())
}
