// Package negotiation decides whether an upstream producer should be
// asked for a different frame geometry to avoid scaling on the way to
// the output device.
package negotiation

import (
	"context"

	"github.com/xaionaro-go/layersink/geometry"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/types"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BestMode selects the device mode closest to the wanted resolution,
// minimizing the sum of the absolute width and height gaps. On an exact
// tie the first-seen mode wins. It reports false when the mode list is
// empty.
func BestMode(
	modes []types.VideoMode,
	want types.Resolution,
) (types.VideoMode, bool) {
	if len(modes) == 0 {
		return types.VideoMode{}, false
	}

	best := modes[0]
	for _, mode := range modes[1:] {
		gap := abs(mode.Width-want.Width) + abs(mode.Height-want.Height)
		bestGap := abs(best.Width-want.Width) + abs(best.Height-want.Height)
		if gap < bestGap {
			best = mode
		}
	}
	return best, true
}

// ProposeSize computes the frame geometry to request from upstream, and
// the matching buffer byte size. With hardware scaling available no
// negotiation is needed and the requested values come back unchanged.
// Otherwise the requested size is fitted into the closest device mode
// (or into the device's default resolution when no modes are known)
// with scaling allowed and the given aspect-ratio policy; the byte size
// of a changed proposal is recomputed from the per-pixel byte cost of
// the original request.
func ProposeSize(
	ctx context.Context,
	req types.Resolution,
	reqByteSize int,
	modes []types.VideoMode,
	deviceDefault types.Resolution,
	hwScaling bool,
	keepAspectRatio bool,
) (types.Resolution, int) {
	if hwScaling {
		return req, reqByteSize
	}
	if req.IsZero() {
		return req, reqByteSize
	}

	dst := deviceDefault
	if mode, ok := BestMode(modes, req); ok {
		logger.Debugf(ctx, "found video mode %s for input at %s", mode, req)
		dst = mode.Resolution()
	}

	fitted := geometry.Fit(
		types.Rectangle{Width: req.Width, Height: req.Height},
		types.Rectangle{Width: dst.Width, Height: dst.Height},
		true,
		keepAspectRatio,
	)
	if fitted.Width == req.Width && fitted.Height == req.Height {
		return req, reqByteSize
	}

	bytesPerPixel := reqByteSize / (req.Width * req.Height)
	proposed := types.Resolution{Width: fitted.Width, Height: fitted.Height}
	logger.Debugf(ctx, "proposing %s instead of %s", proposed, req)
	return proposed, bytesPerPixel * fitted.Width * fitted.Height
}
