package types

// ColorBalance is the fixed set of adjustable picture channels of a
// display layer. Values range from ColorBalanceMin to ColorBalanceMax;
// ColorBalanceNeutral leaves the channel untouched.
type ColorBalance struct {
	Brightness int
	Contrast   int
	Hue        int
	Saturation int
}

const (
	ColorBalanceMin     = 0x0000
	ColorBalanceNeutral = 0x8000
	ColorBalanceMax     = 0xFFFF
)

func DefaultColorBalance() ColorBalance {
	return ColorBalance{
		Brightness: ColorBalanceNeutral,
		Contrast:   ColorBalanceNeutral,
		Hue:        ColorBalanceNeutral,
		Saturation: ColorBalanceNeutral,
	}
}

func clampChannel(v int) int {
	if v < ColorBalanceMin {
		return ColorBalanceMin
	}
	if v > ColorBalanceMax {
		return ColorBalanceMax
	}
	return v
}

// Clamp returns a copy with every channel forced into the valid range.
func (cb ColorBalance) Clamp() ColorBalance {
	return ColorBalance{
		Brightness: clampChannel(cb.Brightness),
		Contrast:   clampChannel(cb.Contrast),
		Hue:        clampChannel(cb.Hue),
		Saturation: clampChannel(cb.Saturation),
	}
}
