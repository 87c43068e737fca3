// Package ttygrid renders a character grid from a bitmap glyph atlas.
//
// # Overview
//
// A Renderer keeps two layers the size of the grid: a foreground holding
// colorized glyphs and a background holding solid cell fills. A host loop
// writes characters, blocks and text runs, then asks for a frame once per
// tick. The frame is the foreground composited over the background and
// scaled up by an integer factor.
//
// # Quick Start
//
//	atlas, err := ttygrid.LoadAtlas("character_map.png", 8, ttygrid.DefaultCharmap())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := ttygrid.New(atlas, 40, 20, ttygrid.WithScale(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = r.Print(10, 2, "Available Characters")
//	frame, _ := r.Frame(0) // *image.RGBA, premultiplied
//
// # Atlases
//
// An atlas is a bitmap of square cells. Glyph pixels are pure white
// (R=G=B=255) with coverage in alpha; they are recolored to the text color
// on extraction. Any other pixel is copied unchanged. The fontatlas package
// builds such bitmaps from TrueType and OpenType fonts.
//
// # Frames
//
// Frame recomposes only when a layer was written since the previous call or
// the scale changed. Idle ticks return the same *image.RGBA without touching
// the layer buffers.
//
// # Coordinate System
//
//   - Cells are addressed by column and row, origin (0,0) at top-left
//   - Columns increase right, rows increase down
package ttygrid
