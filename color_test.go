package ttygrid

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"f00", color.NRGBA{R: 255, A: 255}},
		{"#0f08", color.NRGBA{G: 255, A: 136}},
		{"#7f7fff", color.NRGBA{R: 127, G: 127, B: 255, A: 255}},
		{"102030", color.NRGBA{R: 16, G: 32, B: 48, A: 255}},
		{"#00000080", color.NRGBA{A: 128}},
		{"#ABCDEF", color.NRGBA{R: 0xab, G: 0xcd, B: 0xef, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#gg0000", "#+f0", "#123456789"} {
		if _, err := ParseHexColor(in); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ParseHexColor(%q) error = %v, want ErrInvalidConfiguration", in, err)
		}
	}
}
