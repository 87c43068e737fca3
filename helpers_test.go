package ttygrid

import (
	"image"
	"image/color"
	"testing"
)

// testCell is the cell size of the synthetic test atlas.
const testCell = 4

// testLayout is the charmap of the synthetic atlas: 4 columns, 2 rows.
var testLayout = []string{"AB?x", "0123"}

var (
	glyphOn   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	glyphSoft = color.NRGBA{R: 255, G: 255, B: 255, A: 100}
	inkGray   = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// testAtlasImage draws a deterministic mix of opaque and translucent glyph
// pixels, non-glyph gray pixels and transparent pixels.
func testAtlasImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4*testCell, 2*testCell))
	for y := range 2 * testCell {
		for x := range 4 * testCell {
			switch {
			case (x+y)%3 == 0:
				img.SetNRGBA(x, y, glyphOn)
			case (x*y)%5 == 1:
				img.SetNRGBA(x, y, glyphSoft)
			case (x+2*y)%7 == 3:
				img.SetNRGBA(x, y, inkGray)
			}
		}
	}
	return img
}

func newTestCharmap(t testing.TB, fallback rune) *Charmap {
	t.Helper()
	cm, err := NewCharmap(testLayout, fallback)
	if err != nil {
		t.Fatalf("NewCharmap() error = %v", err)
	}
	return cm
}

func newTestAtlas(t testing.TB) *Atlas {
	t.Helper()
	a, err := NewAtlas(testAtlasImage(), testCell, newTestCharmap(t, '?'))
	if err != nil {
		t.Fatalf("NewAtlas() error = %v", err)
	}
	return a
}

func newTestRenderer(t testing.TB, cols, rows int, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(newTestAtlas(t), cols, rows, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

// isZero reports whether every byte of pix is zero.
func isZero(pix []byte) bool {
	for _, b := range pix {
		if b != 0 {
			return false
		}
	}
	return true
}
