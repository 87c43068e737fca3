// Package fontatlas rasterizes an OpenType or TrueType font into a glyph
// atlas bitmap for ttygrid.
//
// Each character of a Charmap is drawn into its own square cell, horizontally
// centered and on a shared baseline. The result is a stencil: every pixel is
// white with alpha equal to glyph coverage, so ttygrid colorizes it like a
// hand-drawn atlas.
//
//	atlas, err := fontatlas.Default(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := ttygrid.New(atlas, 80, 25)
//
// Characters the font does not cover are left transparent and reported
// through ttygrid.Logger at warn level.
package fontatlas
