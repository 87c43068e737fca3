package ttygrid

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/ttygrid/internal/blend"
)

// Compose merges fg over bg with source-over alpha blending and scales the
// result up by an integer factor. Both inputs are premultiplied; fg is placed
// at bg's origin and must not be larger than bg.
//
// For an opaque background each output channel is
//
//	out = fg*fgA + bg*(1-fgA)
//
// and in general outA = fgA + bgA*(1-fgA).
//
// The result is standard premultiplied source-over. Over a semi-transparent
// background the output is not the straight-alpha mix fg*fgA + bg*(1-fgA);
// un-premultiply it (divide each channel by outA) to read straight colors.
// Backgrounds whose alpha is only ever 0 or 255 are exact in both forms.
//
// Scaling replicates every pixel into a scale x scale block (nearest
// neighbor), keeping bitmap-font edges hard. Compose has no state: equal
// inputs give equal output.
func Compose(fg, bg *image.RGBA, scale int) (*image.RGBA, error) {
	if fg == nil || bg == nil {
		return nil, fmt.Errorf("%w: nil layer image", ErrInvalidConfiguration)
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrInvalidConfiguration, scale)
	}
	fb, bb := fg.Bounds(), bg.Bounds()
	if fb.Dx() > bb.Dx() || fb.Dy() > bb.Dy() {
		return nil, fmt.Errorf("%w: foreground %dx%d larger than background %dx%d",
			ErrInvalidConfiguration, fb.Dx(), fb.Dy(), bb.Dx(), bb.Dy())
	}

	merged := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	rowBytes := bb.Dx() * 4
	for y := range bb.Dy() {
		copy(merged.Pix[y*merged.Stride:][:rowBytes], bg.Pix[bg.PixOffset(bb.Min.X, bb.Min.Y+y):])
	}
	fgRowBytes := fb.Dx() * 4
	for y := range fb.Dy() {
		blend.SourceOverSpan(merged.Pix[y*merged.Stride:][:fgRowBytes],
			fg.Pix[fg.PixOffset(fb.Min.X, fb.Min.Y+y):][:fgRowBytes])
	}

	if scale == 1 {
		return merged, nil
	}
	return upscale(merged, scale), nil
}

// upscale replicates each pixel of src into a scale x scale block.
func upscale(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
