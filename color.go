package ttygrid

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a straight-alpha color in "#RGB", "#RGBA", "#RRGGBB"
// or "#RRGGBBAA" form. The leading '#' is optional and alpha defaults
// to 255.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")

	var short bool
	switch len(hex) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfiguration, s)
	}

	step := 2
	if short {
		step = 1
	}
	ch := [4]uint8{3: 255}
	for i := 0; i*step < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*step:(i+1)*step], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfiguration, s)
		}
		if short {
			v *= 17
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
