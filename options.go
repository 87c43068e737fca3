package ttygrid

import (
	"image/color"
	"log/slog"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := ttygrid.New(atlas, 40, 20,
//	    ttygrid.WithScale(3),
//	    ttygrid.WithTextColor(color.NRGBA{R: 127, G: 127, B: 255, A: 255}),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	textColor      color.NRGBA
	bgColor        color.NRGBA
	scale          int
	wrap           Wrap
	glyphCacheSize int
	layout         []LayoutOption
	logger         *slog.Logger
}

// DefaultGlyphCacheSize is the default soft limit of colorized glyphs kept
// per renderer.
const DefaultGlyphCacheSize = 512

// defaultOptions returns the defaults: opaque white text, transparent
// background blocks, scale 1, vertical wrap only.
func defaultOptions() options {
	return options{
		textColor:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		bgColor:        color.NRGBA{},
		scale:          1,
		wrap:           Wrap{X: false, Y: true},
		glyphCacheSize: DefaultGlyphCacheSize,
	}
}

// WithTextColor sets the initial text color used by PutChar and Print.
func WithTextColor(c color.NRGBA) Option {
	return func(o *options) {
		o.textColor = c
	}
}

// WithBackgroundColor sets the initial fill color used by FillBlock.
func WithBackgroundColor(c color.NRGBA) Option {
	return func(o *options) {
		o.bgColor = c
	}
}

// WithScale sets the scale used by Frame(0). It must be at least 1.
func WithScale(scale int) Option {
	return func(o *options) {
		o.scale = scale
	}
}

// WithWrap sets the wrap mode used by Print.
func WithWrap(x, y bool) Option {
	return func(o *options) {
		o.wrap = Wrap{X: x, Y: y}
	}
}

// WithTextLayout sets the layout options RenderText and Print pass to
// Placements. By default every rune takes one cell and only '\n' breaks
// lines.
func WithTextLayout(opts ...LayoutOption) Option {
	return func(o *options) {
		o.layout = opts
	}
}

// WithGlyphCacheSize sets how many colorized glyphs are memoized.
// Zero disables the cache; every write then colorizes from the atlas.
func WithGlyphCacheSize(n int) Option {
	return func(o *options) {
		o.glyphCacheSize = n
	}
}

// WithLogger gives the renderer its own logger instead of the package
// logger returned by Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
