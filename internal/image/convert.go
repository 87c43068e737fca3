package image

import (
	"image"
	"image/color"
)

// ToNRGBA returns a straight-alpha copy of img with bounds starting at (0,0).
// The result never aliases img's pixel storage.
func ToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	// Fast path: NRGBA rows are copied verbatim.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*out.Stride:], nrgba.Pix[srcStart:srcStart+width*4])
		}
		return out
	}

	// Generic slow path for any image type
	for y := range height {
		row := out.Pix[y*out.Stride:]
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := x * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
	return out
}

// ToRGBA returns a premultiplied copy of a straight-alpha buffer.
func ToRGBA(src *image.NRGBA) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := range bounds.Dy() {
		s := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		d := out.Pix[y*out.Stride:]
		for x := range bounds.Dx() {
			i := x * 4
			a := uint16(s[i+3])
			d[i+0] = premul(s[i+0], a)
			d[i+1] = premul(s[i+1], a)
			d[i+2] = premul(s[i+2], a)
			d[i+3] = byte(a)
		}
	}
	return out
}

// premul scales a channel by alpha, rounding to nearest.
func premul(c byte, a uint16) byte {
	return byte((uint16(c)*a + 127) / 255)
}
