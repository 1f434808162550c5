package types

import (
	"fmt"
)

// Rectangle is an integer rectangle used for both source frame geometry
// and destination window geometry.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", r.Width, r.Height, r.X, r.Y)
}

// Empty reports whether the rectangle has no renderable area.
func (r Rectangle) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rectangle) Resolution() Resolution {
	return Resolution{
		Width:  r.Width,
		Height: r.Height,
	}
}

// WrapInto wraps out-of-range offsets around the given bounds instead of
// rejecting them: an X at or beyond the width comes back as X modulo width
// (and the same for Y/height). Zero-sized dimensions are filled in from
// the bounds.
func (r Rectangle) WrapInto(bounds Resolution) Rectangle {
	if r.Width == 0 {
		r.Width = bounds.Width
	}
	if r.Height == 0 {
		r.Height = bounds.Height
	}
	if bounds.Width > 0 && r.X >= bounds.Width {
		r.X %= bounds.Width
	}
	if bounds.Height > 0 && r.Y >= bounds.Height {
		r.Y %= bounds.Height
	}
	return r
}
