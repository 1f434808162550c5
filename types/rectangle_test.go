package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectangleWrapInto(t *testing.T) {
	bounds := Resolution{Width: 1280, Height: 720}

	t.Run("zero dimensions filled in from the bounds", func(t *testing.T) {
		r := Rectangle{X: 10, Y: 20}.WrapInto(bounds)
		require.Equal(t, Rectangle{X: 10, Y: 20, Width: 1280, Height: 720}, r)
	})

	t.Run("in-range offsets untouched", func(t *testing.T) {
		r := Rectangle{X: 1279, Y: 719, Width: 100, Height: 100}.WrapInto(bounds)
		require.Equal(t, Rectangle{X: 1279, Y: 719, Width: 100, Height: 100}, r)
	})

	t.Run("out-of-range offsets wrap around", func(t *testing.T) {
		r := Rectangle{X: 1290, Y: 1440, Width: 100, Height: 100}.WrapInto(bounds)
		require.Equal(t, Rectangle{X: 10, Y: 0, Width: 100, Height: 100}, r)
	})
}

func TestColorBalanceClamp(t *testing.T) {
	cb := ColorBalance{
		Brightness: -1,
		Contrast:   0x10000,
		Hue:        ColorBalanceNeutral,
		Saturation: ColorBalanceMax,
	}.Clamp()
	require.Equal(t, ColorBalance{
		Brightness: ColorBalanceMin,
		Contrast:   ColorBalanceMax,
		Hue:        ColorBalanceNeutral,
		Saturation: ColorBalanceMax,
	}, cb)
}
