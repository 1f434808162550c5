package sink

import (
	"context"

	"github.com/xaionaro-go/layersink/geometry"
	"github.com/xaionaro-go/layersink/logger"
	"github.com/xaionaro-go/layersink/types"
)

// TranslateCoordinates maps pointer coordinates from output space back
// into the non-scaled video frame space, undoing the centering and
// scaling the presentation applied. Coordinates outside the presented
// area map to 0.
func (s *Sink) TranslateCoordinates(
	ctx context.Context,
	x, y float64,
) (float64, float64) {
	var outX, outY float64
	s.Locker.Do(ctx, func() {
		src := types.Rectangle{Width: s.videoWidth, Height: s.videoHeight}
		dst := types.Rectangle{Width: s.outResolution.Width, Height: s.outResolution.Height}
		result := geometry.Fit(src, dst, s.device.HardwareScaling(), s.cfg.KeepAspectRatio)
		if result.Empty() {
			return
		}

		if x >= float64(result.X) && x <= float64(result.X+result.Width) {
			outX = (x - float64(result.X)) * float64(s.videoWidth) / float64(result.Width)
		}
		if y >= float64(result.Y) && y <= float64(result.Y+result.Height) {
			outY = (y - float64(result.Y)) * float64(s.videoHeight) / float64(result.Height)
		}
	})
	logger.Debugf(ctx, "translated pointer coordinates %f,%f to %f,%f", x, y, outX, outY)
	return outX, outY
}
