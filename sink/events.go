// events.go implements the input event loop.

package sink

import (
	"context"

	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/observability"
)

// EventHandler receives input events; pointer coordinates are already
// translated into video frame space.
type EventHandler func(ctx context.Context, ev display.Event)

// ServeEvents spawns a long-lived goroutine polling the given event
// source. It stops when the context is canceled, the sink is closed or
// the source is drained.
func (s *Sink) ServeEvents(
	ctx context.Context,
	events display.EventSource,
	handler EventHandler,
) {
	logger.Debugf(ctx, "ServeEvents")
	ctx, cancelFn := context.WithCancel(ctx)
	observability.Go(ctx, func(ctx context.Context) {
		select {
		case <-ctx.Done():
		case <-s.CloseChan():
		}
		cancelFn()
	})
	observability.Go(ctx, func(ctx context.Context) {
		defer logger.Debugf(ctx, "/ServeEvents")
		for {
			ev, ok := events.NextEvent(ctx)
			if !ok {
				return
			}

			switch ev.Type {
			case display.EventTypeButtonPress, display.EventTypeButtonRelease, display.EventTypeAxisMotion:
				ev.X, ev.Y = s.TranslateCoordinates(ctx, ev.X, ev.Y)
			}
			logger.Debugf(ctx, "received a %s event", ev.Type)
			if handler != nil {
				handler(ctx, ev)
			}
		}
	})
}
