package negotiation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xaionaro-go/layersink/types"
)

func TestBestMode(t *testing.T) {
	modes := []types.VideoMode{
		{Width: 720, Height: 480, BitsPerPixel: 24},
		{Width: 1280, Height: 720, BitsPerPixel: 24},
		{Width: 1920, Height: 1080, BitsPerPixel: 24},
	}

	t.Run("exact match", func(t *testing.T) {
		best, ok := BestMode(modes, types.Resolution{Width: 1280, Height: 720})
		require.True(t, ok)
		require.Equal(t, modes[1], best)
	})

	t.Run("closest by width+height gap", func(t *testing.T) {
		best, ok := BestMode(modes, types.Resolution{Width: 1600, Height: 900})
		require.True(t, ok)
		require.Equal(t, modes[2], best)
	})

	t.Run("first-seen wins the tie", func(t *testing.T) {
		// both modes are off by 400 in total for a 1000x600 input:
		// |720-1000|+|480-600| = 280+120, |1280-1000|+|720-600| = 280+120
		tied := []types.VideoMode{
			{Width: 720, Height: 480, BitsPerPixel: 24},
			{Width: 1280, Height: 720, BitsPerPixel: 24},
		}
		best, ok := BestMode(tied, types.Resolution{Width: 1000, Height: 600})
		require.True(t, ok)
		require.Equal(t, tied[0], best)
	})

	t.Run("empty mode list", func(t *testing.T) {
		_, ok := BestMode(nil, types.Resolution{Width: 640, Height: 480})
		require.False(t, ok)
	})
}

func TestProposeSize(t *testing.T) {
	ctx := context.Background()
	modes := []types.VideoMode{
		{Width: 720, Height: 480, BitsPerPixel: 16},
		{Width: 1280, Height: 720, BitsPerPixel: 16},
	}
	deviceDefault := types.Resolution{Width: 1280, Height: 720}

	t.Run("hardware scaling: unchanged", func(t *testing.T) {
		req := types.Resolution{Width: 640, Height: 480}
		res, size := ProposeSize(ctx, req, 640*480*2, modes, deviceDefault, true, false)
		require.Equal(t, req, res)
		require.Equal(t, 640*480*2, size)
	})

	t.Run("zero request: unchanged", func(t *testing.T) {
		res, size := ProposeSize(ctx, types.Resolution{}, 0, modes, deviceDefault, false, false)
		require.True(t, res.IsZero())
		require.Equal(t, 0, size)
	})

	t.Run("fits a mode exactly: unchanged", func(t *testing.T) {
		req := types.Resolution{Width: 720, Height: 480}
		res, size := ProposeSize(ctx, req, 720*480*2, modes, deviceDefault, false, false)
		require.Equal(t, req, res)
		require.Equal(t, 720*480*2, size)
	})

	t.Run("stretched to the closest mode, size recomputed", func(t *testing.T) {
		req := types.Resolution{Width: 640, Height: 480}
		res, size := ProposeSize(ctx, req, 640*480*2, modes, deviceDefault, false, false)
		require.Equal(t, types.Resolution{Width: 720, Height: 480}, res)
		require.Equal(t, 720*480*2, size)
	})

	t.Run("aspect ratio kept: letterboxed proposal", func(t *testing.T) {
		req := types.Resolution{Width: 640, Height: 480}
		res, size := ProposeSize(ctx, req, 640*480*2, modes, deviceDefault, false, true)
		// fitting 4:3 into 720x480 gives 640x480 back, so nothing changes
		require.Equal(t, req, res)
		require.Equal(t, 640*480*2, size)
	})

	t.Run("no modes: fitted into the device default", func(t *testing.T) {
		req := types.Resolution{Width: 640, Height: 480}
		res, size := ProposeSize(ctx, req, 640*480*2, nil, deviceDefault, false, false)
		require.Equal(t, deviceDefault, res)
		require.Equal(t, 1280*720*2, size)
	})
}
