package ttygrid

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/ttygrid/internal/cache"
	intImage "github.com/gogpu/ttygrid/internal/image"
)

// Renderer owns a glyph atlas and the foreground and background layers of a
// character grid, and hands out composed frames to a host loop.
//
// A host calls the write methods and then Frame once per tick. Frame only
// recomposes when a layer changed since the previous frame; otherwise it
// returns the cached frame unchanged.
//
// Renderer is NOT safe for concurrent use. Drive it from one goroutine.
type Renderer struct {
	atlas *Atlas
	fg    *Layer
	bg    *Layer
	cols  int
	rows  int

	textColor color.NRGBA
	bgColor   color.NRGBA
	scale     int
	wrap      Wrap
	layout    []LayoutOption
	log       *slog.Logger

	glyphs *cache.Cache[glyphKey, *image.NRGBA]

	// Cached snapshots of each layer and the last composed frame.
	fgImage    *image.RGBA
	bgImage    *image.RGBA
	frame      *image.RGBA
	frameScale int
	frameStale bool

	stats Stats
}

// glyphKey identifies one colorized atlas cell.
type glyphKey struct {
	cell  Cell
	color color.NRGBA
}

// Stats counts the work a Renderer has done. It exists so hosts and tests
// can verify that idle frames are free.
type Stats struct {
	// Compositions is the number of frames composed.
	Compositions uint64
	// ForegroundSnapshots and BackgroundSnapshots count how often each
	// layer buffer was converted into its cached image.
	ForegroundSnapshots uint64
	BackgroundSnapshots uint64
	// GlyphCacheHits and GlyphCacheMisses count colorized glyph lookups.
	GlyphCacheHits   uint64
	GlyphCacheMisses uint64
	// GlyphCacheEvictions counts glyphs dropped to stay under the soft limit.
	GlyphCacheEvictions uint64
}

// GlyphCacheHitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) GlyphCacheHitRate() float64 {
	total := s.GlyphCacheHits + s.GlyphCacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.GlyphCacheHits) / float64(total)
}

// New creates a renderer for a cols x rows grid using atlas's cell size.
func New(atlas *Atlas, cols, rows int, opts ...Option) (*Renderer, error) {
	if atlas == nil {
		return nil, fmt.Errorf("%w: nil atlas", ErrInvalidConfiguration)
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfiguration, cols, rows)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrInvalidConfiguration, o.scale)
	}
	if o.glyphCacheSize < 0 {
		return nil, fmt.Errorf("%w: glyph cache size %d", ErrInvalidConfiguration, o.glyphCacheSize)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	fg, err := NewLayer(cols, rows, atlas.CellSize())
	if err != nil {
		return nil, err
	}
	bg, err := NewLayer(cols, rows, atlas.CellSize())
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		atlas:     atlas,
		fg:        fg,
		bg:        bg,
		cols:      cols,
		rows:      rows,
		textColor: o.textColor,
		bgColor:   o.bgColor,
		scale:     o.scale,
		wrap:      o.wrap,
		layout:    o.layout,
		log:       o.logger,
	}
	if o.glyphCacheSize > 0 {
		r.glyphs = cache.New[glyphKey, *image.NRGBA](o.glyphCacheSize)
	}
	return r, nil
}

// Size returns the grid size in cells.
func (r *Renderer) Size() (cols, rows int) {
	return r.cols, r.rows
}

// PixelSize returns the unscaled frame size in pixels.
func (r *Renderer) PixelSize() (width, height int) {
	n := r.atlas.CellSize()
	return r.cols * n, r.rows * n
}

// Atlas returns the renderer's glyph atlas.
func (r *Renderer) Atlas() *Atlas { return r.atlas }

// Foreground returns the glyph layer. Callers must not write to it directly.
func (r *Renderer) Foreground() *Layer { return r.fg }

// Background returns the fill layer. Callers must not write to it directly.
func (r *Renderer) Background() *Layer { return r.bg }

// TextColor returns the color used by PutChar and Print.
func (r *Renderer) TextColor() color.NRGBA { return r.textColor }

// SetTextColor changes the color of subsequent PutChar and Print calls.
// Text already on the grid keeps its color.
func (r *Renderer) SetTextColor(c color.NRGBA) { r.textColor = c }

// BackgroundColor returns the color used by FillBlock.
func (r *Renderer) BackgroundColor() color.NRGBA { return r.bgColor }

// SetBackgroundColor changes the color of subsequent FillBlock calls.
func (r *Renderer) SetBackgroundColor(c color.NRGBA) { r.bgColor = c }

// Scale returns the scale Frame(0) uses.
func (r *Renderer) Scale() int { return r.scale }

// glyph returns the colorized atlas cell for ch. Cached glyphs are shared
// and must only be read.
func (r *Renderer) glyph(ch rune, c color.NRGBA) (*image.NRGBA, error) {
	cell, err := r.atlas.Lookup(ch)
	if err != nil {
		return nil, err
	}
	if r.glyphs == nil {
		return r.atlas.ExtractColoredGlyph(cell.Col, cell.Row, c)
	}
	return r.glyphs.GetOrCreate(glyphKey{cell: cell, color: c}, func() (*image.NRGBA, error) {
		return r.atlas.ExtractColoredGlyph(cell.Col, cell.Row, c)
	})
}

// WriteChar draws ch in color c into the foreground cell at (col, row).
// Nothing is written if ch cannot be resolved or the cell is off the grid.
func (r *Renderer) WriteChar(col, row int, ch rune, c color.NRGBA) error {
	if err := r.fg.checkCell(col, row); err != nil {
		return err
	}
	g, err := r.glyph(ch, c)
	if err != nil {
		return err
	}
	return r.fg.WriteGlyph(col, row, g)
}

// PutChar is WriteChar with the current text color.
func (r *Renderer) PutChar(col, row int, ch rune) error {
	return r.WriteChar(col, row, ch, r.textColor)
}

// WriteBlock fills the background cell at (col, row) with c.
func (r *Renderer) WriteBlock(col, row int, c color.NRGBA) error {
	return r.bg.WriteBlock(col, row, c)
}

// FillBlock is WriteBlock with the current background color.
func (r *Renderer) FillBlock(col, row int) error {
	return r.WriteBlock(col, row, r.bgColor)
}

// RenderText draws text in color c starting at (col, row), laid out by
// Placements with the renderer's layout options. Each rune other than '\n'
// is one write. The first failing character stops the call with a
// *WriteError; characters drawn before it stay on the grid.
func (r *Renderer) RenderText(col, row int, text string, wrapX, wrapY bool, c color.NRGBA) error {
	for p := range Placements(col, row, text, r.cols, r.rows, Wrap{X: wrapX, Y: wrapY}, r.layout...) {
		if err := r.WriteChar(p.Col, p.Row, p.Rune, c); err != nil {
			return &WriteError{Index: p.Index, Rune: p.Rune, Col: p.Col, Row: p.Row, Err: err}
		}
	}
	return nil
}

// Print is RenderText with the current text color and the configured wrap
// mode.
func (r *Renderer) Print(col, row int, text string) error {
	return r.RenderText(col, row, text, r.wrap.X, r.wrap.Y, r.textColor)
}

// Clear resets both layers to transparent and drops the cached frame.
func (r *Renderer) Clear() {
	r.fg.Clear()
	r.bg.Clear()
	r.frame = nil
	r.frameStale = true
}

// refreshForeground re-snapshots the foreground layer if it changed.
func (r *Renderer) refreshForeground() {
	if r.fgImage != nil && !r.fg.Dirty() {
		return
	}
	r.fgImage = intImage.ToRGBA(r.fg.Image())
	r.fg.markClean()
	r.frameStale = true
	r.stats.ForegroundSnapshots++
}

// refreshBackground re-snapshots the background layer if it changed.
func (r *Renderer) refreshBackground() {
	if r.bgImage != nil && !r.bg.Dirty() {
		return
	}
	r.bgImage = intImage.ToRGBA(r.bg.Image())
	r.bg.markClean()
	r.frameStale = true
	r.stats.BackgroundSnapshots++
}

// ForegroundImage returns the premultiplied snapshot of the glyph layer,
// refreshed only if the layer changed. Hosts that display the two layers as
// separate textures use this instead of Frame. Do not modify the result.
func (r *Renderer) ForegroundImage() *image.RGBA {
	r.refreshForeground()
	return r.fgImage
}

// BackgroundImage returns the premultiplied snapshot of the fill layer,
// refreshed only if the layer changed. Do not modify the result.
func (r *Renderer) BackgroundImage() *image.RGBA {
	r.refreshBackground()
	return r.bgImage
}

// Frame returns the composed frame scaled by scale, or by the configured
// scale when scale is 0. Only layers written since the last call are
// re-snapshotted; with no writes in between, the previous frame is returned
// as is. The frame is shared with later calls and must not be modified.
func (r *Renderer) Frame(scale int) (*image.RGBA, error) {
	if scale == 0 {
		scale = r.scale
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrInvalidConfiguration, scale)
	}

	r.refreshForeground()
	r.refreshBackground()
	if r.frame != nil && !r.frameStale && r.frameScale == scale {
		return r.frame, nil
	}

	frame, err := Compose(r.fgImage, r.bgImage, scale)
	if err != nil {
		return nil, err
	}
	r.frame = frame
	r.frameScale = scale
	r.frameStale = false
	r.stats.Compositions++
	r.log.Debug("ttygrid: frame composed",
		slog.Int("scale", scale),
		slog.Int("width", frame.Bounds().Dx()),
		slog.Int("height", frame.Bounds().Dy()),
		slog.Uint64("compositions", r.stats.Compositions))
	return frame, nil
}

// Stats returns work counters for this renderer.
func (r *Renderer) Stats() Stats {
	s := r.stats
	if r.glyphs != nil {
		cs := r.glyphs.Stats()
		s.GlyphCacheHits = cs.Hits
		s.GlyphCacheMisses = cs.Misses
		s.GlyphCacheEvictions = cs.Evictions
	}
	return s
}
