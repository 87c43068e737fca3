package fontatlas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"unicode"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ttygrid"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("fontatlas: invalid font")

// Option configures Render.
type Option func(*config)

type config struct {
	size    float64
	hinting font.Hinting
}

// WithSize sets the font size in pixels per em. The default is 80% of the
// cell size, which keeps ascenders and descenders of most fonts inside
// the cell.
func WithSize(px float64) Option {
	return func(c *config) {
		c.size = px
	}
}

// WithHinting sets the outline hinting mode. The default is full hinting.
func WithHinting(h font.Hinting) Option {
	return func(c *config) {
		c.hinting = h
	}
}

// Render draws every character of cm from fontData into a stencil bitmap
// laid out the way cm describes: cell (col, row) holds the glyph for the
// character at that charmap position.
func Render(fontData []byte, cellSize int, cm *ttygrid.Charmap, opts ...Option) (*image.NRGBA, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ttygrid.ErrInvalidConfiguration, cellSize)
	}
	if cm == nil {
		return nil, fmt.Errorf("%w: nil charmap", ttygrid.ErrInvalidConfiguration)
	}

	cfg := config{size: float64(cellSize) * 0.8, hinting: font.HintingFull}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		return nil, fmt.Errorf("%w: font size %g", ttygrid.ErrInvalidConfiguration, cfg.size)
	}

	// go-text reads the cmap for coverage; x/image rasterizes outlines.
	coverage, err := gotext.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    cfg.size,
		DPI:     72,
		Hinting: cfg.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	defer func() {
		_ = face.Close()
	}()

	cols, rows := cm.Extent()
	out := image.NewNRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))
	mask := image.NewAlpha(image.Rect(0, 0, cellSize, cellSize))
	baseline := baselineFor(face.Metrics(), cellSize)

	var missing int
	for row, line := range cm.Rows() {
		col := -1
		for _, r := range line {
			col++
			if !unicode.IsGraphic(r) || unicode.IsSpace(r) {
				continue
			}
			if _, ok := coverage.NominalGlyph(r); !ok {
				missing++
				ttygrid.Logger().Warn("fontatlas: glyph missing from font",
					slog.String("rune", string(r)),
					slog.Int("col", col),
					slog.Int("row", row))
				continue
			}

			clear(mask.Pix)
			advance, ok := face.GlyphAdvance(r)
			if !ok {
				continue
			}
			d := &font.Drawer{
				Dst:  mask,
				Src:  image.White,
				Face: face,
				Dot: fixed.Point26_6{
					X: (fixed.I(cellSize) - advance) / 2,
					Y: baseline,
				},
			}
			d.DrawString(string(r))
			stamp(out, mask, col*cellSize, row*cellSize)
		}
	}
	if missing > 0 {
		ttygrid.Logger().Debug("fontatlas: atlas rendered with gaps",
			slog.Int("missing", missing),
			slog.Int("glyphs", cm.Len()))
	}
	return out, nil
}

// baselineFor places the baseline so the font's ascent and descent are
// centered vertically in the cell.
func baselineFor(m font.Metrics, cellSize int) fixed.Int26_6 {
	extent := m.Ascent + m.Descent
	return (fixed.I(cellSize)-extent)/2 + m.Ascent
}

// stamp writes mask into dst at (x0, y0) as white with alpha = coverage.
func stamp(dst *image.NRGBA, mask *image.Alpha, x0, y0 int) {
	b := mask.Bounds()
	for y := range b.Dy() {
		src := mask.Pix[y*mask.Stride:][:b.Dx()]
		row := dst.Pix[dst.PixOffset(x0, y0+y):][:b.Dx()*4]
		for x, a := range src {
			if a == 0 {
				continue
			}
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = 255, 255, 255, a
		}
	}
}

// Build renders fontData and wraps the result in an Atlas for cm.
func Build(fontData []byte, cellSize int, cm *ttygrid.Charmap, opts ...Option) (*ttygrid.Atlas, error) {
	img, err := Render(fontData, cellSize, cm, opts...)
	if err != nil {
		return nil, err
	}
	return ttygrid.NewAtlas(img, cellSize, cm)
}

// Default builds an atlas for ttygrid.DefaultCharmap from the Go Mono font.
func Default(cellSize int, opts ...Option) (*ttygrid.Atlas, error) {
	return Build(gomono.TTF, cellSize, ttygrid.DefaultCharmap(), opts...)
}
