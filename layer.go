package ttygrid

import (
	"fmt"
	"image"
	"image/color"
)

// Layer is one compositing plane of the terminal grid: a straight-alpha RGBA
// buffer of cols x rows cells, fully transparent when created.
//
// Writes overwrite whole cells; nothing is blended inside a layer.
//
// Thread safety: Layer is not safe for concurrent access.
type Layer struct {
	buf      *image.NRGBA
	cols     int
	rows     int
	cellSize int
	dirty    bool
}

// NewLayer creates a transparent layer. The new layer is dirty so the first
// frame includes it.
func NewLayer(cols, rows, cellSize int) (*Layer, error) {
	if cols <= 0 || rows <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: layer %dx%d cells of %dpx",
			ErrInvalidConfiguration, cols, rows, cellSize)
	}
	l := &Layer{cols: cols, rows: rows, cellSize: cellSize}
	l.Clear()
	return l, nil
}

// Cols returns the grid width in cells.
func (l *Layer) Cols() int { return l.cols }

// Rows returns the grid height in cells.
func (l *Layer) Rows() int { return l.rows }

// CellSize returns the cell edge length in pixels.
func (l *Layer) CellSize() int { return l.cellSize }

// Image returns the layer buffer. The buffer is replaced by Clear, so do not
// hold on to it across calls, and do not modify it.
func (l *Layer) Image() *image.NRGBA { return l.buf }

// Dirty reports whether the layer changed since markClean.
func (l *Layer) Dirty() bool { return l.dirty }

func (l *Layer) markClean() { l.dirty = false }

// checkCell validates a grid position.
func (l *Layer) checkCell(col, row int) error {
	if col < 0 || row < 0 || col >= l.cols || row >= l.rows {
		return fmt.Errorf("%w: column %d, row %d on a %dx%d grid",
			ErrOutOfGridBounds, col, row, l.cols, l.rows)
	}
	return nil
}

// WriteGlyph copies glyph verbatim into the cell at (col, row).
// glyph must be exactly one cell in size.
func (l *Layer) WriteGlyph(col, row int, glyph *image.NRGBA) error {
	if err := l.checkCell(col, row); err != nil {
		return err
	}
	if glyph == nil {
		return fmt.Errorf("%w: nil glyph", ErrInvalidGlyph)
	}
	n := l.cellSize
	if b := glyph.Bounds(); b.Dx() != n || b.Dy() != n {
		return fmt.Errorf("%w: glyph is %dx%d, cell is %dx%d",
			ErrInvalidGlyph, b.Dx(), b.Dy(), n, n)
	}

	origin := glyph.Bounds().Min
	x0, y0 := col*n, row*n
	for y := range n {
		src := glyph.Pix[glyph.PixOffset(origin.X, origin.Y+y):][:n*4]
		copy(l.buf.Pix[l.buf.PixOffset(x0, y0+y):], src)
	}
	l.dirty = true
	return nil
}

// WriteBlock fills the cell at (col, row) with fill, replacing its content.
func (l *Layer) WriteBlock(col, row int, fill color.NRGBA) error {
	if err := l.checkCell(col, row); err != nil {
		return err
	}
	n := l.cellSize
	x0, y0 := col*n, row*n
	for y := range n {
		dst := l.buf.Pix[l.buf.PixOffset(x0, y0+y):][:n*4]
		for i := 0; i < len(dst); i += 4 {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = fill.R, fill.G, fill.B, fill.A
		}
	}
	l.dirty = true
	return nil
}

// Cell returns a copy of the cell at (col, row).
func (l *Layer) Cell(col, row int) (*image.NRGBA, error) {
	if err := l.checkCell(col, row); err != nil {
		return nil, err
	}
	n := l.cellSize
	out := image.NewNRGBA(image.Rect(0, 0, n, n))
	x0, y0 := col*n, row*n
	for y := range n {
		copy(out.Pix[y*out.Stride:], l.buf.Pix[l.buf.PixOffset(x0, y0+y):][:n*4])
	}
	return out, nil
}

// Clear replaces the buffer with a new fully transparent one and marks the
// layer dirty. Images previously returned by Image keep their old content.
func (l *Layer) Clear() {
	l.buf = image.NewNRGBA(image.Rect(0, 0, l.cols*l.cellSize, l.rows*l.cellSize))
	l.dirty = true
}
