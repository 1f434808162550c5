// fit.go implements the placement arithmetic for presenting a source
// rectangle inside a destination window.

// Package geometry computes destination rectangles for presenting video
// frames: centering, clipping and aspect-preserving letterboxing. All
// arithmetic is integer; dimensions truncate toward zero.
package geometry

import (
	"github.com/xaionaro-go/layersink/types"
)

// CenterRect places src inside dst. Without scaling the source is only
// centered, clipped to the destination when it does not fit. With
// scaling the source is stretched to the destination while preserving
// its aspect ratio (letterboxing/pillarboxing as needed).
//
// The result is expressed relative to dst's origin. Degenerate inputs
// (a zero width or height on either side) produce a zero-sized
// rectangle rather than an error.
func CenterRect(src, dst types.Rectangle, scaling bool) types.Rectangle {
	if src.Empty() || dst.Empty() {
		return types.Rectangle{}
	}

	var result types.Rectangle
	if !scaling {
		result.Width = min(src.Width, dst.Width)
		result.Height = min(src.Height, dst.Height)
		result.X = (dst.Width - result.Width) / 2
		result.Y = (dst.Height - result.Height) / 2
		return result
	}

	// comparing src.Width/src.Height against dst.Width/dst.Height
	// without leaving integer arithmetic:
	switch {
	case src.Width*dst.Height > dst.Width*src.Height:
		result.Width = dst.Width
		result.Height = dst.Width * src.Height / src.Width
		result.Y = (dst.Height - result.Height) / 2
	case src.Width*dst.Height < dst.Width*src.Height:
		result.Height = dst.Height
		result.Width = dst.Height * src.Width / src.Height
		result.X = (dst.Width - result.Width) / 2
	default:
		result.Width = dst.Width
		result.Height = dst.Height
	}
	return result
}

// Fit computes where a source frame lands inside a destination window,
// in absolute coordinates.
//
// With scaling allowed and the aspect ratio not kept, the result is the
// destination verbatim (full stretch). Otherwise the source is centered
// (and letterboxed, when scaling is allowed) and translated by the
// destination's origin.
func Fit(src, dst types.Rectangle, scaling, keepAspectRatio bool) types.Rectangle {
	if scaling && !keepAspectRatio {
		return dst
	}
	result := CenterRect(src, dst, scaling)
	result.X += dst.X
	result.Y += dst.Y
	return result
}
