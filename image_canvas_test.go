package atlas

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func fillRGBA(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestImageCanvas_Dimensions(t *testing.T) {
	c := NewImageCanvas(64, 32)
	if c.Width() != 64 || c.Height() != 32 {
		t.Errorf("got %dx%d, want 64x32", c.Width(), c.Height())
	}
}

func TestImageCanvas_ClearRect(t *testing.T) {
	c := NewImageCanvas(32, 32)
	fillRGBA(c.Image(), color.RGBA{R: 255, A: 255})

	c.ClearRect(rectOf(8, 8, 16, 16))

	if got := c.Image().RGBAAt(8, 8); got.A != 0 {
		t.Errorf("pixel inside cleared region = %v, want transparent", got)
	}
	if got := c.Image().RGBAAt(15, 15); got.A != 0 {
		t.Errorf("pixel inside cleared region = %v, want transparent", got)
	}
	if got := c.Image().RGBAAt(16, 16); got.A == 0 {
		t.Error("pixel outside cleared region was cleared")
	}
	if got := c.Image().RGBAAt(7, 8); got.A == 0 {
		t.Error("pixel outside cleared region was cleared")
	}
}

func TestImageCanvas_ClipTranslatesOrigin(t *testing.T) {
	c := NewImageCanvas(32, 32)
	fillRGBA(c.Image(), color.RGBA{G: 255, A: 255})

	c.Save()
	c.ClipRect(rectOf(10, 10, 20, 20))

	// Local (0,0) now maps to canvas (10,10); clearing a local 4x4
	// square must hit canvas pixels (10,10)..(13,13) only.
	c.ClearRect(rectOf(0, 0, 4, 4))
	c.Restore()

	if got := c.Image().RGBAAt(10, 10); got.A != 0 {
		t.Error("translated clear missed (10,10)")
	}
	if got := c.Image().RGBAAt(13, 13); got.A != 0 {
		t.Error("translated clear missed (13,13)")
	}
	if got := c.Image().RGBAAt(0, 0); got.A == 0 {
		t.Error("clear leaked to untranslated origin")
	}
	if got := c.Image().RGBAAt(14, 14); got.A == 0 {
		t.Error("clear leaked outside the local rect")
	}
}

func TestImageCanvas_ClipLimitsClear(t *testing.T) {
	c := NewImageCanvas(32, 32)
	fillRGBA(c.Image(), color.RGBA{B: 255, A: 255})

	c.Save()
	c.ClipRect(rectOf(10, 10, 14, 14))
	// A clear larger than the clip must not escape it.
	c.ClearRect(rectOf(0, 0, 32, 32))
	c.Restore()

	if got := c.Image().RGBAAt(13, 13); got.A != 0 {
		t.Error("clear inside clip did not apply")
	}
	if got := c.Image().RGBAAt(14, 14); got.A == 0 {
		t.Error("clear escaped the clip region")
	}
}

func TestImageCanvas_SaveRestore(t *testing.T) {
	c := NewImageCanvas(32, 32)
	fillRGBA(c.Image(), color.RGBA{R: 128, A: 255})

	c.Save()
	c.ClipRect(rectOf(8, 8, 16, 16))
	c.Restore()

	// After restore, clipping and translation are back to the full
	// canvas.
	c.ClearRect(rectOf(0, 0, 2, 2))
	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Error("restore did not reset the origin translation")
	}

	// Restore on an empty stack is a no-op.
	c.Restore()
	c.Restore()
}

func TestImageCanvas_NestedClip(t *testing.T) {
	c := NewImageCanvas(64, 64)
	fillRGBA(c.Image(), color.RGBA{R: 1, A: 255})

	c.Save()
	c.ClipRect(rectOf(10, 10, 40, 40))
	c.Save()
	// Nested clip in local coordinates: canvas region (20,20)-(30,30).
	c.ClipRect(rectOf(10, 10, 20, 20))
	c.ClearRect(rectOf(0, 0, 64, 64))
	c.Restore()
	c.Restore()

	if got := c.Image().RGBAAt(20, 20); got.A != 0 {
		t.Error("nested clip clear missed its region")
	}
	if got := c.Image().RGBAAt(19, 19); got.A == 0 {
		t.Error("nested clip clear escaped inner region")
	}
	if got := c.Image().RGBAAt(30, 30); got.A == 0 {
		t.Error("nested clip clear escaped inner region")
	}
}

func TestImageCanvas_DrawImageScales(t *testing.T) {
	c := NewImageCanvas(32, 32)

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillRGBA(src, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	c.DrawImage(src, rectOf(4, 4, 12, 12))

	if got := c.Image().RGBAAt(8, 8); got.A == 0 {
		t.Error("DrawImage did not fill the destination rect")
	}
	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Error("DrawImage painted outside the destination rect")
	}
}

func TestImageCanvas_DrawImageRespectsClip(t *testing.T) {
	c := NewImageCanvas(64, 64)

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fillRGBA(src, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	c.Save()
	c.ClipRect(rectOf(0, 0, 16, 16))
	// Destination larger than the clip: only the clipped part may be
	// written.
	c.DrawImage(src, rectOf(0, 0, 32, 32))
	c.Restore()

	if got := c.Image().RGBAAt(8, 8); got.A == 0 {
		t.Error("DrawImage did not fill inside the clip")
	}
	if got := c.Image().RGBAAt(24, 24); got.A != 0 {
		t.Errorf("DrawImage bled outside the clip: pixel (24,24) = %v, want transparent", got)
	}
	if got := c.Image().RGBAAt(16, 16); got.A != 0 {
		t.Errorf("DrawImage bled outside the clip: pixel (16,16) = %v, want transparent", got)
	}
}

func TestImageCanvas_DrawImageClippedKeepsScale(t *testing.T) {
	c := NewImageCanvas(64, 64)

	// Left half red, right half blue.
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
		for x := 4; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	c.Save()
	// Clip keeps only the left half of the 32x32 destination, which
	// maps to the red half of the source. Blue must not appear inside
	// the clip.
	c.ClipRect(rectOf(0, 0, 16, 32))
	c.DrawImage(src, rectOf(0, 0, 32, 32))
	c.Restore()

	// With the source mapping intact, canvas x=12 still falls in the
	// red half; squeezing the whole source into the clipped region
	// would put blue there.
	if got := c.Image().RGBAAt(12, 16); got.R == 0 || got.B != 0 {
		t.Errorf("clipped draw distorted the source mapping: pixel (12,16) = %v, want red", got)
	}
}

func TestImageCanvas_DrawImageNilSrc(t *testing.T) {
	c := NewImageCanvas(8, 8)
	c.DrawImage(nil, rectOf(0, 0, 4, 4)) // must not panic
}

func TestImageCanvas_OutlineRect(t *testing.T) {
	c := NewImageCanvas(32, 32)
	c.OutlineRect(rectOf(4, 4, 12, 12))

	for _, pt := range [][2]int{{4, 4}, {11, 4}, {4, 11}, {11, 11}, {7, 4}, {4, 7}} {
		if got := c.Image().RGBAAt(pt[0], pt[1]); got != outlineColor {
			t.Errorf("expected outline at (%d,%d), got %v", pt[0], pt[1], got)
		}
	}
	if got := c.Image().RGBAAt(7, 7); got == outlineColor {
		t.Error("outline filled the interior")
	}
}

func TestImageCanvas_OutlineRespectsClip(t *testing.T) {
	c := NewImageCanvas(64, 64)

	c.Save()
	c.ClipRect(rectOf(0, 0, 16, 16))
	c.OutlineRect(rectOf(0, 0, 32, 32))
	c.Restore()

	if got := c.Image().RGBAAt(8, 0); got != outlineColor {
		t.Error("outline missing inside the clip")
	}
	if got := c.Image().RGBAAt(24, 0); got.A != 0 {
		t.Errorf("outline bled outside the clip: pixel (24,0) = %v, want transparent", got)
	}
}

func TestImageCanvas_ClearRectBase(t *testing.T) {
	c := NewImageCanvas(32, 32)
	fillRGBA(c.Image(), color.RGBA{R: 255, A: 255})

	c.Save()
	c.ClipRect(rectOf(16, 16, 24, 24))
	// Canvas coordinates, unaffected by the active clip and origin.
	c.ClearRectBase(rectOf(0, 0, 8, 8))
	c.Restore()

	if got := c.Image().RGBAAt(4, 4); got.A != 0 {
		t.Errorf("base clear missed its region: pixel (4,4) = %v, want transparent", got)
	}
	if got := c.Image().RGBAAt(16, 16); got.A == 0 {
		t.Error("base clear leaked into the clip region")
	}
}

func TestImageCanvas_FromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	c := NewImageCanvasFromImage(img)
	if c.Image() != img {
		t.Error("NewImageCanvasFromImage should wrap without copying")
	}
}

func TestImageCanvas_SavePNG(t *testing.T) {
	c := NewImageCanvas(16, 16)
	fillRGBA(c.Image(), color.RGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
}

func TestImageCanvasProvider(t *testing.T) {
	c, err := imageCanvasProvider{}.CreateCanvas(128)
	if err != nil {
		t.Fatalf("CreateCanvas failed: %v", err)
	}
	if c.Width() != 128 || c.Height() != 128 {
		t.Errorf("got %dx%d, want square 128", c.Width(), c.Height())
	}
}
