// Command ttydemo renders the ttygrid demo scene headlessly and saves the
// composed frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/ttygrid"
	"github.com/gogpu/ttygrid/fontatlas"
	intImage "github.com/gogpu/ttygrid/internal/image"
)

func main() {
	var (
		atlasPath   = flag.String("atlas", "", "glyph atlas image (default: rasterize Go Mono)")
		charmapPath = flag.String("charmap", "", "charmap file, one atlas row per line (default: 16x6 ASCII)")
		cell        = flag.Int("cell", 8, "atlas cell size in pixels")
		cols        = flag.Int("cols", 40, "grid columns")
		rows        = flag.Int("rows", 20, "grid rows")
		scale       = flag.Int("scale", 3, "integer frame scale")
		frames      = flag.Int("frames", 1, "number of clock ticks to render before saving")
		output      = flag.String("output", "ttydemo.png", "output file")
		text        = flag.String("text", "", "extra line printed at the bottom")
		fg          = flag.String("fg", "#ffffff", "text color")
		bg          = flag.String("bg", "#000000", "backdrop color, empty for transparent")
		nfc         = flag.Bool("nfc", false, "compose letters and combining marks before layout")
		crBreaks    = flag.Bool("cr", false, "treat carriage returns as line breaks")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		ttygrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	textColor, err := ttygrid.ParseHexColor(*fg)
	if err != nil {
		log.Fatalf("-fg: %v", err)
	}

	cm, err := loadCharmap(*charmapPath)
	if err != nil {
		log.Fatalf("Failed to load charmap: %v", err)
	}
	atlas, err := loadAtlas(*atlasPath, *cell, cm)
	if err != nil {
		log.Fatalf("Failed to load atlas: %v", err)
	}

	var layout []ttygrid.LayoutOption
	if *nfc {
		layout = append(layout, ttygrid.NormalizeNFC())
	}
	if *crBreaks {
		layout = append(layout, ttygrid.CarriageReturnBreaks())
	}

	r, err := ttygrid.New(atlas, *cols, *rows,
		ttygrid.WithScale(*scale),
		ttygrid.WithTextColor(textColor),
		ttygrid.WithTextLayout(layout...),
	)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	if *bg != "" {
		backdrop, err := ttygrid.ParseHexColor(*bg)
		if err != nil {
			log.Fatalf("-bg: %v", err)
		}
		fillBackdrop(r, backdrop)
	}
	if err := drawScene(r, cm); err != nil {
		log.Printf("Scene: %v", err)
	}
	if *text != "" {
		if err := r.RenderText(0, *rows-1, *text, true, false, textColor); err != nil {
			log.Printf("Text: %v", err)
		}
	}

	start := time.Now()
	for range max(*frames, 1) {
		tick(r, time.Since(start))
		if _, err := r.Frame(0); err != nil {
			log.Fatalf("Failed to compose frame: %v", err)
		}
	}

	frame, err := r.Frame(0)
	if err != nil {
		log.Fatalf("Failed to compose frame: %v", err)
	}
	if err := intImage.SavePNG(*output, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	s := r.Stats()
	log.Printf("Demo saved to %s (%dx%d, %d compositions, glyph cache hit rate %.1f%%, %d evictions)\n",
		*output, frame.Bounds().Dx(), frame.Bounds().Dy(), s.Compositions,
		100*s.GlyphCacheHitRate(), s.GlyphCacheEvictions)
}

func loadCharmap(path string) (*ttygrid.Charmap, error) {
	if path == "" {
		return ttygrid.DefaultCharmap(), nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ttygrid.ParseCharmap(f, '?', ttygrid.FoldWidth())
}

func loadAtlas(path string, cell int, cm *ttygrid.Charmap) (*ttygrid.Atlas, error) {
	if path == "" {
		return fontatlas.Build(gomono.TTF, cell, cm)
	}
	return ttygrid.LoadAtlas(path, cell, cm)
}

// fillBackdrop paints every background cell.
func fillBackdrop(r *ttygrid.Renderer, c color.NRGBA) {
	cols, rows := r.Size()
	for row := range rows {
		for col := range cols {
			_ = r.WriteBlock(col, row, c)
		}
	}
}

var (
	blockColors = []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	digitColors = []color.NRGBA{
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
		{R: 255, A: 255},
	}
	bannerColor = color.NRGBA{R: 127, G: 127, B: 255, A: 255}
	wrapColor   = color.NRGBA{G: 255, A: 255}
)

// drawScene draws the banner, the character table, a diagonal of colored
// digits and blocks, and a line long enough to wrap past the bottom row.
func drawScene(r *ttygrid.Renderer, cm *ttygrid.Charmap) error {
	banner := strings.Repeat("-", 20)
	if err := r.RenderText(10, 2, banner+"\nAvailable Characters\n"+banner, false, true, bannerColor); err != nil {
		return err
	}
	for i := range 4 {
		if err := r.RenderText(3+i, 5+i, "01234", false, true, digitColors[i]); err != nil {
			return err
		}
		if err := r.WriteBlock(5+i, 5+i, blockColors[i]); err != nil {
			return err
		}
	}
	if err := r.RenderText(3, 10, cm.Table(), false, true, color.NRGBA{R: 255, G: 255, B: 255, A: 255}); err != nil {
		return err
	}
	_, rows := r.Size()
	return r.RenderText(0, rows-2, strings.Repeat("0123456789?.x!=", 8), true, true, wrapColor)
}

// tick prints the elapsed time in a random color, like a status clock.
func tick(r *ttygrid.Renderer, elapsed time.Duration) {
	c := color.NRGBA{
		R: uint8(rand.IntN(256)),
		G: uint8(rand.IntN(256)),
		B: uint8(rand.IntN(256)),
		A: uint8(128 + rand.IntN(128)),
	}
	s := fmt.Sprintf("%.6f", elapsed.Seconds())
	_ = r.RenderText(13, 16, s, false, true, c)
}
