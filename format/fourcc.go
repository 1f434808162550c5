package format

// FourCC is a four-character code identifying a packed or planar YUV
// layout, stored little-endian (the first character in the lowest byte).
type FourCC uint32

func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

var (
	FourCCI420 = MakeFourCC('I', '4', '2', '0')
	FourCCYV12 = MakeFourCC('Y', 'V', '1', '2')
	FourCCYUY2 = MakeFourCC('Y', 'U', 'Y', '2')
	FourCCUYVY = MakeFourCC('U', 'Y', 'V', 'Y')
	FourCCNV12 = MakeFourCC('N', 'V', '1', '2')
)

func (f FourCC) String() string {
	if f == 0 {
		return ""
	}
	return string([]byte{
		byte(f),
		byte(f >> 8),
		byte(f >> 16),
		byte(f >> 24),
	})
}
