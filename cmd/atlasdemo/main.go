// Command atlasdemo demonstrates the atlas allocation library by
// packing randomly sized icon sprites and rendered text labels into
// atlas surfaces, then saving each surface as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlas"
)

func main() {
	var (
		size    = flag.Int("size", 512, "surface size (128..16384, power of two)")
		icons   = flag.Int("icons", 48, "number of icon sprites to pack")
		labels  = flag.Int("labels", 24, "number of text labels to pack")
		release = flag.Float64("release", 0.25, "fraction of sprites to release again")
		seed    = flag.Int64("seed", 1, "random seed")
		debug   = flag.Bool("debug", false, "draw diagnostic outlines during packing")
		verbose = flag.Bool("v", false, "enable debug logging")
		output  = flag.String("output", "atlas", "output file prefix")
	)
	flag.Parse()

	if *verbose {
		atlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	m := atlas.NewManager(atlas.ManagerConfig{Size: *size, Debug: *debug})
	rng := rand.New(rand.NewSource(*seed))

	var nodes []*atlas.Node

	// Icon sprites: colored squares of random size.
	for i := 0; i < *icons; i++ {
		w := 8 + rng.Intn(56)
		h := 8 + rng.Intn(56)
		node, err := m.Allocate(w, h)
		if err != nil {
			log.Fatalf("Icon allocation failed: %v", err)
		}
		drawSprite(node, makeIcon(w, h, rng))
		nodes = append(nodes, node)
	}

	// Label sprites: text rendered with the Go regular font.
	face, err := newFace(13)
	if err != nil {
		log.Fatalf("Font setup failed: %v", err)
	}
	for i := 0; i < *labels; i++ {
		img := renderLabel(face, fmt.Sprintf("label-%02d", i))
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		node, err := m.Allocate(w, h)
		if err != nil {
			log.Fatalf("Label allocation failed: %v", err)
		}
		drawSprite(node, img)
		nodes = append(nodes, node)
	}

	// Release a fraction to show space reclamation.
	released := 0
	for _, node := range nodes {
		if rng.Float64() < *release {
			if err := m.Release(node); err != nil {
				log.Fatalf("Release failed: %v", err)
			}
			released++
		}
	}

	// Save each surface.
	for i, s := range m.Surfaces() {
		c, err := s.Canvas()
		if err != nil {
			log.Fatalf("Canvas failed: %v", err)
		}
		path := fmt.Sprintf("%s_%d.png", *output, i)
		if err := c.(*atlas.ImageCanvas).SavePNG(path); err != nil {
			log.Fatalf("Failed to save %s: %v", path, err)
		}
		log.Printf("Saved %s (%.1f%% used)", path, s.Utilization()*100)
	}

	stats := m.Stats()
	log.Printf("Packed %d sprites (%d released) across %d surfaces of %dx%d",
		len(nodes), released, stats.SurfaceCount, m.Size(), m.Size())
}

// drawSprite scales src into the node's region on its surface canvas,
// using the clip/translate state so drawing is region-local.
func drawSprite(node *atlas.Node, src image.Image) {
	c, err := node.Surface().Canvas()
	if err != nil {
		log.Fatalf("Canvas failed: %v", err)
	}

	r := node.Rect()
	c.Save()
	c.ClipRect(r)
	local := atlas.NewRect(0, 0, float64(r.Width()), float64(r.Height()))
	c.(*atlas.ImageCanvas).DrawImage(src, local)
	c.Restore()
}

// makeIcon builds a solid sprite with a lighter border.
func makeIcon(w, h int, rng *rand.Rand) *image.RGBA {
	fill := color.RGBA{
		R: uint8(64 + rng.Intn(192)),
		G: uint8(64 + rng.Intn(192)),
		B: uint8(64 + rng.Intn(192)),
		A: 255,
	}
	border := color.RGBA{
		R: fill.R/2 + 127,
		G: fill.G/2 + 127,
		B: fill.B/2 + 127,
		A: 255,
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}

// newFace builds a font face from the bundled Go regular font.
func newFace(pts float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    pts,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// renderLabel rasterizes text onto a tightly sized sprite.
func renderLabel(face font.Face, text string) *image.RGBA {
	metrics := face.Metrics()
	w := font.MeasureString(face, text).Ceil() + 4
	h := (metrics.Ascent + metrics.Descent).Ceil() + 2

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(2), Y: metrics.Ascent + fixed.I(1)},
	}
	d.DrawString(text)
	return img
}
