package ttygrid

import (
	"errors"
	"fmt"
)

// Sentinel errors. Failures are wrapped with detail via fmt.Errorf("%w: ...");
// test for them with errors.Is.
var (
	// ErrUnknownCharacter is returned when a rune is not in the charmap and
	// no fallback rune is configured.
	ErrUnknownCharacter = errors.New("ttygrid: unknown character")

	// ErrAtlasBoundsExceeded is returned when a cell coordinate lies outside
	// the loaded atlas bitmap.
	ErrAtlasBoundsExceeded = errors.New("ttygrid: atlas bounds exceeded")

	// ErrOutOfGridBounds is returned when a write targets a column or row
	// outside the terminal grid.
	ErrOutOfGridBounds = errors.New("ttygrid: out of grid bounds")

	// ErrInvalidConfiguration is returned at construction time for zero or
	// negative dimensions, malformed charmaps and similar setup mistakes.
	ErrInvalidConfiguration = errors.New("ttygrid: invalid configuration")

	// ErrInvalidGlyph is returned when a glyph bitmap is not exactly one cell.
	ErrInvalidGlyph = errors.New("ttygrid: invalid glyph bitmap")
)

// WriteError reports which character of a RenderText call failed.
// Characters before Index were written and stay written.
type WriteError struct {
	Index int  // rune index within the text, after NormalizeNFC if set
	Rune  rune // the character being written
	Col   int  // resolved grid column
	Row   int  // resolved grid row
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("ttygrid: write %q (index %d) at column %d, row %d: %v",
		e.Rune, e.Index, e.Col, e.Row, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *WriteError) Unwrap() error {
	return e.Err
}
