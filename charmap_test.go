package ttygrid

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultCharmap(t *testing.T) {
	cm := DefaultCharmap()

	tests := []struct {
		r    rune
		want Cell
	}{
		{' ', Cell{0, 0}},
		{'/', Cell{15, 0}},
		{'0', Cell{0, 1}},
		{'?', Cell{15, 1}},
		{'A', Cell{1, 2}},
		{'\\', Cell{12, 3}},
		{'a', Cell{1, 4}},
		{'~', Cell{14, 5}},
		{'\t', Cell{15, 5}},
	}
	for _, tt := range tests {
		got, ok := cm.Cell(tt.r)
		if !ok || got != tt.want {
			t.Errorf("Cell(%q) = (%v, %v), want (%v, true)", tt.r, got, ok, tt.want)
		}
	}

	if cm.Len() != 96 {
		t.Errorf("Len() = %d, want 96", cm.Len())
	}
	cols, rows := cm.Extent()
	if cols != 16 || rows != 6 {
		t.Errorf("Extent() = (%d, %d), want (16, 6)", cols, rows)
	}
	if cm.Fallback() != '?' {
		t.Errorf("Fallback() = %q, want '?'", cm.Fallback())
	}
}

func TestCharmapResolveFallback(t *testing.T) {
	cm := DefaultCharmap()

	want, err := cm.Resolve('?')
	if err != nil {
		t.Fatalf("Resolve('?') error = %v", err)
	}
	got, err := cm.Resolve('§')
	if err != nil {
		t.Fatalf("Resolve('§') error = %v", err)
	}
	if got != want {
		t.Errorf("Resolve('§') = %v, want fallback cell %v", got, want)
	}
}

func TestCharmapResolveNoFallback(t *testing.T) {
	cm, err := NewCharmap([]string{"ab"}, NoFallback)
	if err != nil {
		t.Fatalf("NewCharmap() error = %v", err)
	}
	if _, err := cm.Resolve('z'); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("Resolve('z') error = %v, want ErrUnknownCharacter", err)
	}
	if c, err := cm.Resolve('b'); err != nil || c != (Cell{1, 0}) {
		t.Errorf("Resolve('b') = (%v, %v), want ({1 0}, nil)", c, err)
	}
}

func TestCharmapFoldWidth(t *testing.T) {
	plain, err := NewCharmap([]string{"AB"}, NoFallback)
	if err != nil {
		t.Fatalf("NewCharmap() error = %v", err)
	}
	if _, err := plain.Resolve('Ｂ'); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("Resolve(fullwidth B) without folding error = %v, want ErrUnknownCharacter", err)
	}

	folded, err := NewCharmap([]string{"AB"}, NoFallback, FoldWidth())
	if err != nil {
		t.Fatalf("NewCharmap(FoldWidth) error = %v", err)
	}
	if c, err := folded.Resolve('Ｂ'); err != nil || c != (Cell{1, 0}) {
		t.Errorf("Resolve(fullwidth B) = (%v, %v), want ({1 0}, nil)", c, err)
	}
}

func TestNewCharmapInvalid(t *testing.T) {
	tests := []struct {
		name     string
		layout   []string
		fallback rune
	}{
		{"empty layout", nil, NoFallback},
		{"duplicate rune", []string{"ab", "ca"}, NoFallback},
		{"unmapped fallback", []string{"ab"}, '?'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCharmap(tt.layout, tt.fallback)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("NewCharmap() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestParseCharmap(t *testing.T) {
	src := `# tiles for a tiny atlas
\sab

01\t\\
\#xy
`
	cm, err := ParseCharmap(strings.NewReader(src), 'a')
	if err != nil {
		t.Fatalf("ParseCharmap() error = %v", err)
	}

	tests := []struct {
		r    rune
		want Cell
	}{
		{' ', Cell{0, 0}},
		{'a', Cell{1, 0}},
		{'b', Cell{2, 0}},
		{'0', Cell{0, 1}},
		{'1', Cell{1, 1}},
		{'\t', Cell{2, 1}},
		{'\\', Cell{3, 1}},
		{'#', Cell{0, 2}},
		{'x', Cell{1, 2}},
	}
	for _, tt := range tests {
		if got, ok := cm.Cell(tt.r); !ok || got != tt.want {
			t.Errorf("Cell(%q) = (%v, %v), want (%v, true)", tt.r, got, ok, tt.want)
		}
	}
	if rows := cm.Rows(); len(rows) != 3 || rows[1] != "01\t\\" || rows[2] != "#xy" {
		t.Errorf("Rows() = %q", rows)
	}
}

func TestParseCharmapBadEscape(t *testing.T) {
	for _, src := range []string{`ab\q`, `ab\`} {
		if _, err := ParseCharmap(strings.NewReader(src), NoFallback); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ParseCharmap(%q) error = %v, want ErrInvalidConfiguration", src, err)
		}
	}
}

func TestCharmapTable(t *testing.T) {
	cm, err := NewCharmap([]string{"ab", "c\n"}, NoFallback)
	if err != nil {
		t.Fatalf("NewCharmap() error = %v", err)
	}
	if got, want := cm.Table(), " a b\n c  "; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}
