package emath

// Some functions that only operate on basic types, that are useful

// ClampU8 truncates f toward zero and clips it into [0, 255], which is
// how 8 bit channel values come out of a blend.
func ClampU8(f float64) uint8 {
	i := int(f)
	if i < 0 {
		return 0
	} else if i > 0xFF {
		return 0xFF
	}
	return uint8(i)
}

// Percent turns a UI percentage (100 == unchanged) into a factor.
func Percent(pct int) float64 {
	return float64(pct) / 100.0
}
