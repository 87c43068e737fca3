package ttygrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"
)

// NoFallback disables fallback resolution of unmapped runes.
const NoFallback rune = -1

// Cell is a column/row coordinate on a grid of square cells, used both for
// atlas cells and terminal grid positions.
type Cell struct {
	Col, Row int
}

// Charmap maps displayable runes to atlas cells. It is immutable once built.
type Charmap struct {
	cells     map[rune]Cell
	layout    [][]rune
	fallback  rune
	foldWidth bool
	cols      int
}

// CharmapOption configures a Charmap.
type CharmapOption func(*Charmap)

// FoldWidth makes lookups retry unmapped runes in their canonical width form
// before falling back, so fullwidth 'Ａ' resolves to the cell of 'A'.
func FoldWidth() CharmapOption {
	return func(cm *Charmap) {
		cm.foldWidth = true
	}
}

// defaultLayout mirrors a 16x6 printable-ASCII atlas. The last cell holds a
// tab glyph.
var defaultLayout = []string{
	" !\"#$%&'()*+,-./",
	"0123456789:;<=>?",
	"@ABCDEFGHIJKLMNO",
	"PQRSTUVWXYZ[\\]^_",
	"`abcdefghijklmno",
	"pqrstuvwxyz{|}~\t",
}

// DefaultCharmap returns the 16x6 printable-ASCII layout with '?' as fallback.
func DefaultCharmap() *Charmap {
	cm, err := NewCharmap(defaultLayout, '?')
	if err != nil {
		panic(err) // static table
	}
	return cm
}

// NewCharmap builds a charmap from a row layout: layout[row] lists the runes
// of one atlas row, one rune per column. fallback must be mapped by the
// layout, or NoFallback.
func NewCharmap(layout []string, fallback rune, opts ...CharmapOption) (*Charmap, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: empty charmap layout", ErrInvalidConfiguration)
	}

	cm := &Charmap{
		cells:    make(map[rune]Cell),
		layout:   make([][]rune, len(layout)),
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(cm)
	}

	for row, line := range layout {
		runes := []rune(line)
		cm.layout[row] = runes
		cm.cols = max(cm.cols, len(runes))
		for col, r := range runes {
			if prev, dup := cm.cells[r]; dup {
				return nil, fmt.Errorf("%w: rune %q mapped twice, at (%d,%d) and (%d,%d)",
					ErrInvalidConfiguration, r, prev.Col, prev.Row, col, row)
			}
			cm.cells[r] = Cell{Col: col, Row: row}
		}
	}

	if fallback != NoFallback {
		if _, ok := cm.cells[fallback]; !ok {
			return nil, fmt.Errorf("%w: fallback rune %q is not mapped", ErrInvalidConfiguration, fallback)
		}
	}
	return cm, nil
}

// ParseCharmap reads a layout from a text file, one atlas row per line.
// Blank lines and lines starting with '#' are skipped. The escapes \t, \n,
// \s (space), \# and \\ stand for their characters; a leading or trailing
// space must be written as \s and a row starting with '#' as \#.
func ParseCharmap(r io.Reader, fallback rune, opts ...CharmapOption) (*Charmap, error) {
	var layout []string
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := unescapeRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: charmap line %d: %w", ErrInvalidConfiguration, lineNo, err)
		}
		layout = append(layout, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ttygrid: read charmap: %w", err)
	}
	return NewCharmap(layout, fallback, opts...)
}

func unescapeRow(line string) (string, error) {
	var b strings.Builder
	escaped := false
	for _, r := range line {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		escaped = false
		switch r {
		case 't':
			b.WriteRune('\t')
		case 'n':
			b.WriteRune('\n')
		case 's':
			b.WriteRune(' ')
		case '#', '\\':
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("unknown escape \\%c", r)
		}
	}
	if escaped {
		return "", errors.New("dangling backslash")
	}
	return b.String(), nil
}

// Cell returns the cell mapped to r without fallback resolution.
func (cm *Charmap) Cell(r rune) (Cell, bool) {
	c, ok := cm.cells[r]
	return c, ok
}

// Resolve returns the cell for r: the mapped cell, then the width-folded
// rune's cell when FoldWidth is set, then the fallback cell.
func (cm *Charmap) Resolve(r rune) (Cell, error) {
	if c, ok := cm.cells[r]; ok {
		return c, nil
	}
	if cm.foldWidth {
		if folded := []rune(width.Fold.String(string(r))); len(folded) == 1 {
			if c, ok := cm.cells[folded[0]]; ok {
				return c, nil
			}
		}
	}
	if cm.fallback != NoFallback {
		return cm.cells[cm.fallback], nil
	}
	return Cell{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, r)
}

// Fallback returns the fallback rune, or NoFallback.
func (cm *Charmap) Fallback() rune {
	return cm.fallback
}

// Len returns the number of mapped runes.
func (cm *Charmap) Len() int {
	return len(cm.cells)
}

// Extent returns the number of columns and rows the layout spans.
func (cm *Charmap) Extent() (cols, rows int) {
	return cm.cols, len(cm.layout)
}

// Rows returns the layout rows as strings.
func (cm *Charmap) Rows() []string {
	rows := make([]string, len(cm.layout))
	for i, r := range cm.layout {
		rows[i] = string(r)
	}
	return rows
}

// Table renders the layout as text for display on a grid: every rune is
// preceded by a space and rows are separated by newlines. Newline runes in
// the layout are shown as spaces.
func (cm *Charmap) Table() string {
	var b strings.Builder
	for i, row := range cm.layout {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			if r == '\n' {
				r = ' '
			}
			b.WriteByte(' ')
			b.WriteRune(r)
		}
	}
	return b.String()
}
