package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/display/sysmem"
	"github.com/xaionaro-go/layersink/sink"
	"github.com/xaionaro-go/layersink/types"
	"github.com/xaionaro-go/observability"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "renders a test pattern through the sink into a software layer\n")
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	windowX := pflag.IntP("x-offset", "x", 0, "the X offset of the window in the target layer")
	windowY := pflag.IntP("y-offset", "y", 0, "the Y offset of the window in the target layer")
	windowW := pflag.IntP("width", "w", 0, "the width of the window (0: the whole layer)")
	windowH := pflag.IntP("height", "h", 0, "the height of the window (0: the whole layer)")
	videoW := pflag.Int("video-width", 720, "the width of the generated frames")
	videoH := pflag.Int("video-height", 480, "the height of the generated frames")
	formatFlag := pflag.String("format", "RGB16", "the pixel format of the generated frames")
	frameCount := pflag.Int("frames", 300, "the amount of frames to render")
	keepAR := pflag.Bool("keep-aspect-ratio", false, "keep the aspect ratio when fitting into the window")
	hwScaling := pflag.Bool("hw-scaling", false, "emulate a device with a hardware stretch-blitter")
	pitchAlign := pflag.Int("pitch-align", 0, "emulate surfaces with line pitches aligned to this many bytes")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	pixFmt, err := types.PixelFormatFromString(*formatFlag)
	if err != nil {
		l.Fatal(err)
	}

	device := sysmem.NewDevice(sysmem.DeviceConfig{
		Modes: []types.VideoMode{
			{Width: 720, Height: 480, BitsPerPixel: 16},
			{Width: 1280, Height: 720, BitsPerPixel: 16},
			{Width: 1920, Height: 1080, BitsPerPixel: 16},
		},
		DefaultResolution: types.Resolution{Width: 1280, Height: 720},
		HardwareScaling:   *hwScaling,
		PitchAlign:        *pitchAlign,
	})
	layer, err := sysmem.NewLayer(types.Resolution{Width: 1280, Height: 720}, pixFmt)
	if err != nil {
		l.Fatal(err)
	}

	videoSink, err := sink.New(ctx, sink.Config{
		Window: types.Rectangle{
			X:      *windowX,
			Y:      *windowY,
			Width:  *windowW,
			Height: *windowH,
		},
		KeepAspectRatio: *keepAR,
		OnFirstFrame: func(ctx context.Context) {
			l.Infof("the first frame was rendered")
		},
	}, device, layer)
	if err != nil {
		l.Fatal(err)
	}

	if err := videoSink.SetFormat(ctx, *videoW, *videoH, pixFmt); err != nil {
		l.Fatal(err)
	}

	events := sysmem.NewEventQueue(16)
	videoSink.ServeEvents(ctx, events, func(ctx context.Context, ev display.Event) {
		switch ev.Type {
		case display.EventTypeKeyPress:
			l.Infof("key press: %c", ev.Key)
		default:
			l.Infof("%s at %f,%f", ev.Type, ev.X, ev.Y)
		}
	})

	byteSize := pixFmt.FrameSize(*videoW, *videoH)
	l.Debugf("rendering %d frames of %s each...", *frameCount, humanize.IBytes(uint64(byteSize)))
	for frameIdx := 0; frameIdx < *frameCount; frameIdx++ {
		buf, err := videoSink.AllocBuffer(ctx, *videoW, *videoH, pixFmt, byteSize)
		if err != nil {
			l.Fatal(err)
		}
		fillPattern(buf.Bytes(), frameIdx)
		if err := videoSink.RenderFrame(ctx, buf); err != nil {
			l.Fatal(err)
		}
		videoSink.ReleaseBuffer(ctx, buf)
	}

	stats := videoSink.PoolStatistics()
	l.Infof(
		"rendered %d frames of %s each: %d pool hits, %d misses, %d evictions, %d plain-memory fallbacks",
		*frameCount, humanize.IBytes(uint64(byteSize)),
		stats.Hits, stats.Misses, stats.Evictions, stats.Fallbacks,
	)

	events.Finish()
	if err := videoSink.Close(ctx); err != nil {
		l.Fatal(err)
	}
}

// fillPattern writes a cheap moving gradient, just so consecutive
// frames differ visibly.
func fillPattern(data []byte, frameIdx int) {
	for i := range data {
		data[i] = byte(i + frameIdx*3)
	}
}
