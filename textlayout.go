package ttygrid

import (
	"iter"

	"golang.org/x/text/unicode/norm"
)

// Wrap selects how text running past the grid edges is placed.
type Wrap struct {
	// X moves characters past the last column to the start of the following
	// row.
	X bool
	// Y cycles rows past the bottom back to the top. It has no effect
	// unless X is set.
	Y bool
}

// Placement is the resolved grid position of one character of a text run.
type Placement struct {
	Index int  // rune index within the text
	Rune  rune // character to draw
	Col   int
	Row   int
}

// LayoutOption changes how Placements splits text into cells.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	nfc      bool
	crBreaks bool
}

// NormalizeNFC composes the text to NFC before layout, so a letter followed
// by a combining mark takes one cell when the charmap has the composed form.
// Placement indices then count runes of the normalized text.
func NormalizeNFC() LayoutOption {
	return func(c *layoutConfig) {
		c.nfc = true
	}
}

// CarriageReturnBreaks treats '\r' as a line break, with "\r\n" counting as
// one break. Without it '\r' is an ordinary character.
func CarriageReturnBreaks() LayoutOption {
	return func(c *layoutConfig) {
		c.crBreaks = true
	}
}

// Placements lays out text starting at column c0, row r0 on a cols x rows
// grid and yields the position of every character other than '\n', one
// cell per rune. A '\n' moves to the next line at column c0.
//
// With wrap.X, a column past the grid edge is folded back with
// col mod cols and the run shifts down by col / cols rows. That shift is
// kept for the rest of the call; a newline resets only the column. With
// wrap.X and wrap.Y, rows past the bottom are taken mod rows. Positions
// left outside the grid are still yielded; writing them fails with
// ErrOutOfGridBounds.
func Placements(c0, r0 int, text string, cols, rows int, wrap Wrap, opts ...LayoutOption) iter.Seq[Placement] {
	var cfg layoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.nfc {
		text = norm.NFC.String(text)
	}

	return func(yield func(Placement) bool) {
		var (
			xOffset    int
			yOffset    int
			lineOffset int
			index      = -1
			pendingCR  bool
		)
		for _, r := range text {
			index++
			if pendingCR {
				pendingCR = false
				if r == '\n' {
					continue
				}
			}
			if r == '\n' || (cfg.crBreaks && r == '\r') {
				pendingCR = r == '\r'
				lineOffset++
				xOffset = 0
				continue
			}

			col := c0 + xOffset
			if wrap.X && cols > 0 && col >= cols {
				yOffset = col / cols
				col %= cols
			}
			row := r0 + yOffset + lineOffset
			if wrap.X && wrap.Y && rows > 0 && row >= rows {
				row %= rows
			}
			xOffset++

			if !yield(Placement{Index: index, Rune: r, Col: col, Row: row}) {
				return
			}
		}
	}
}
