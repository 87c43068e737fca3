package blend

// mulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
//
// Formula: (a * b + 127) / 255
//
// Rounded division keeps compositing deterministic and symmetric: 255 is the
// identity, 0 annihilates, and no channel drifts on repeated blends.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// addDiv255 adds two bytes and clamps to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
