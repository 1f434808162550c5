// video_mode.go defines the VideoMode and Resolution value types.

package types

import (
	"fmt"
)

type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r Resolution) IsZero() bool {
	return r.Width <= 0 || r.Height <= 0
}

// VideoMode is one entry of the output device's static mode list. The
// list is discovered once at device-setup time and is read-only
// afterwards; it is passed around by value instead of being queried from
// ambient globals.
type VideoMode struct {
	Width        int
	Height       int
	BitsPerPixel int
}

func (m VideoMode) String() string {
	return fmt.Sprintf("%dx%d@%dbpp", m.Width, m.Height, m.BitsPerPixel)
}

func (m VideoMode) Resolution() Resolution {
	return Resolution{
		Width:  m.Width,
		Height: m.Height,
	}
}
