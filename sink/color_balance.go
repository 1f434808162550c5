package sink

import (
	"context"
	"errors"

	"github.com/xaionaro-go/layersink/display"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/types"
	"github.com/xaionaro-go/xsync"
)

// ErrColorBalanceNotSupported is returned when the layer does not
// implement the color adjustment capability.
var ErrColorBalanceNotSupported = errors.New("the layer does not support color adjustment")

// SetColorBalance pushes the given channel values to the layer. Values
// are clamped to the valid range first.
func (s *Sink) SetColorBalance(
	ctx context.Context,
	cb types.ColorBalance,
) (_err error) {
	logger.Tracef(ctx, "SetColorBalance(%+v)", cb)
	defer func() { logger.Tracef(ctx, "/SetColorBalance(%+v): %v", cb, _err) }()
	adjuster, ok := s.layer.(display.ColorAdjuster)
	if !ok {
		return ErrColorBalanceNotSupported
	}

	cb = cb.Clamp()
	return xsync.DoR1(ctx, &s.Locker, func() error {
		if err := adjuster.SetColorAdjustment(ctx, cb); err != nil {
			return err
		}
		s.balance = cb
		return nil
	})
}

func (s *Sink) ColorBalance(ctx context.Context) types.ColorBalance {
	return xsync.DoR1(ctx, &s.Locker, func() types.ColorBalance {
		return s.balance
	})
}
