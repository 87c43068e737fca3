package ttygrid

import (
	"fmt"
	"image"
	"image/color"
	"io"

	intImage "github.com/gogpu/ttygrid/internal/image"
)

// Atlas is a read-only glyph atlas: a straight-alpha bitmap divided into
// square cells, plus the charmap locating each rune's cell.
//
// Glyphs are stored as a stencil. A pixel whose red, green and blue channels
// are all 255 is part of the glyph and takes the text color when extracted;
// every other pixel is passed through as is.
type Atlas struct {
	img      *image.NRGBA
	charmap  *Charmap
	cellSize int
	cols     int
	rows     int
}

// NewAtlas builds an atlas from img. img is copied, so later changes to it
// do not affect the atlas. Every cell the charmap maps must lie inside the
// bitmap.
func NewAtlas(img image.Image, cellSize int, cm *Charmap) (*Atlas, error) {
	if img == nil || cm == nil {
		return nil, fmt.Errorf("%w: nil atlas image or charmap", ErrInvalidConfiguration)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidConfiguration, cellSize)
	}

	size := img.Bounds().Size()
	cols, rows := size.X/cellSize, size.Y/cellSize
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d is smaller than one %dpx cell",
			ErrInvalidConfiguration, size.X, size.Y, cellSize)
	}

	for r, c := range cm.cells {
		if c.Col >= cols || c.Row >= rows {
			return nil, fmt.Errorf("%w: rune %q mapped to (%d,%d), atlas is %dx%d cells",
				ErrAtlasBoundsExceeded, r, c.Col, c.Row, cols, rows)
		}
	}

	return &Atlas{
		img:      intImage.ToNRGBA(img),
		charmap:  cm,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
	}, nil
}

// LoadAtlas reads an atlas bitmap from a PNG, JPEG, GIF, BMP, TIFF or WebP
// file.
func LoadAtlas(path string, cellSize int, cm *Charmap) (*Atlas, error) {
	img, err := intImage.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("ttygrid: load atlas: %w", err)
	}
	return NewAtlas(img, cellSize, cm)
}

// DecodeAtlas reads an atlas bitmap from r, detecting the image format.
func DecodeAtlas(r io.Reader, cellSize int, cm *Charmap) (*Atlas, error) {
	img, err := intImage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("ttygrid: decode atlas: %w", err)
	}
	return NewAtlas(img, cellSize, cm)
}

// CellSize returns the cell edge length in pixels.
func (a *Atlas) CellSize() int { return a.cellSize }

// Cols returns the number of cell columns in the atlas bitmap.
func (a *Atlas) Cols() int { return a.cols }

// Rows returns the number of cell rows in the atlas bitmap.
func (a *Atlas) Rows() int { return a.rows }

// Charmap returns the atlas charmap.
func (a *Atlas) Charmap() *Charmap { return a.charmap }

// Lookup returns the atlas cell for r, resolving unmapped runes to the
// charmap fallback. Without a fallback it fails with ErrUnknownCharacter.
func (a *Atlas) Lookup(r rune) (Cell, error) {
	return a.charmap.Resolve(r)
}

// ExtractColoredGlyph returns a fresh cellSize x cellSize copy of the cell at
// (col, row) with every glyph pixel recolored to textColor's RGB. Alpha is
// kept from the atlas. The atlas itself is not modified.
func (a *Atlas) ExtractColoredGlyph(col, row int, textColor color.NRGBA) (*image.NRGBA, error) {
	if col < 0 || row < 0 || col >= a.cols || row >= a.rows {
		return nil, fmt.Errorf("%w: cell (%d,%d), atlas is %dx%d cells",
			ErrAtlasBoundsExceeded, col, row, a.cols, a.rows)
	}

	n := a.cellSize
	out := image.NewNRGBA(image.Rect(0, 0, n, n))
	x0, y0 := col*n, row*n
	for y := range n {
		src := a.img.Pix[a.img.PixOffset(x0, y0+y):][:n*4]
		dst := out.Pix[y*out.Stride:][:n*4]
		copy(dst, src)
		colorizeRow(dst, textColor)
	}
	return out, nil
}

// colorizeRow applies the stencil to one row of straight-alpha pixels.
func colorizeRow(row []byte, c color.NRGBA) {
	for i := 0; i+3 < len(row); i += 4 {
		if row[i] == 255 && row[i+1] == 255 && row[i+2] == 255 {
			row[i], row[i+1], row[i+2] = c.R, c.G, c.B
		}
	}
}

// Image returns the atlas bitmap. Callers must not modify it.
func (a *Atlas) Image() *image.NRGBA { return a.img }
