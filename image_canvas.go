package atlas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// outlineColor is used for diagnostic rectangle outlines in debug mode.
var outlineColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// canvasState is one entry of an ImageCanvas's save/restore stack.
type canvasState struct {
	clip   image.Rectangle
	tx, ty int // translation applied to local coordinates
}

// ImageCanvas is a CPU-backed Canvas over an *image.RGBA. It is the
// default drawing surface for atlas surfaces and supports software
// rendering workflows: clients draw into allocated regions through the
// clip/translate state, and the whole atlas can be inspected or saved
// as an image.
//
// ImageCanvas is NOT safe for concurrent use. The clip and origin form
// mutable drawing state; use one goroutine per canvas or synchronize
// externally.
type ImageCanvas struct {
	img    *image.RGBA
	states []canvasState
	cur    canvasState
}

// NewImageCanvas creates a canvas of the given pixel dimensions.
func NewImageCanvas(width, height int) *ImageCanvas {
	bounds := image.Rect(0, 0, width, height)
	return &ImageCanvas{
		img: image.NewRGBA(bounds),
		cur: canvasState{clip: bounds},
	}
}

// NewImageCanvasFromImage wraps an existing *image.RGBA as a canvas.
// The image is used directly without copying.
func NewImageCanvasFromImage(img *image.RGBA) *ImageCanvas {
	return &ImageCanvas{
		img: img,
		cur: canvasState{clip: img.Bounds()},
	}
}

// Width returns the canvas width in pixels.
func (c *ImageCanvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *ImageCanvas) Height() int {
	return c.img.Bounds().Dy()
}

// Save pushes the current clip and origin onto the state stack.
func (c *ImageCanvas) Save() {
	c.states = append(c.states, c.cur)
}

// Restore pops the most recently saved clip and origin.
// Restore on an empty stack is a no-op.
func (c *ImageCanvas) Restore() {
	if len(c.states) == 0 {
		return
	}
	c.cur = c.states[len(c.states)-1]
	c.states = c.states[:len(c.states)-1]
}

// ClipRect restricts drawing to r and moves the origin to r's top-left,
// so subsequent operations use region-local coordinates.
func (c *ImageCanvas) ClipRect(r Rect) {
	abs := c.absRect(r)
	c.cur.clip = c.cur.clip.Intersect(abs)
	c.cur.tx += r.Left
	c.cur.ty += r.Top
}

// ClearRect clears the pixels inside r (local coordinates, limited to
// the current clip) to fully transparent.
func (c *ImageCanvas) ClearRect(r Rect) {
	region := c.absRect(r).Intersect(c.cur.clip)
	if region.Empty() {
		return
	}
	draw.Draw(c.img, region, image.Transparent, image.Point{}, draw.Src)
}

// ClearRectBase clears the pixels inside r, in canvas coordinates, to
// fully transparent. Unlike ClearRect it ignores the current clip and
// origin, so region bookkeeping stays correct even while a client is
// mid Save/ClipRect.
func (c *ImageCanvas) ClearRectBase(r Rect) {
	region := image.Rect(r.Left, r.Top, r.Right, r.Bottom).Intersect(c.img.Bounds())
	if region.Empty() {
		return
	}
	draw.Draw(c.img, region, image.Transparent, image.Point{}, draw.Src)
}

// DrawImage scales src into the rectangle dst (local coordinates).
// This is a convenience for filling allocated regions with sprite
// content; the atlas core itself never calls it.
func (c *ImageCanvas) DrawImage(src image.Image, dst Rect) {
	if src == nil {
		return
	}
	target := c.absRect(dst)
	region := target.Intersect(c.cur.clip)
	if region.Empty() {
		return
	}

	sb := src.Bounds()
	if region == target {
		xdraw.ApproxBiLinear.Scale(c.img, region, src, sb, xdraw.Over, nil)
		return
	}

	// The clip cut part of the target away. Map the surviving region
	// back to the matching source sub-rectangle so the visible part
	// keeps its scale instead of squeezing the whole source into it.
	sub := image.Rect(
		sb.Min.X+(region.Min.X-target.Min.X)*sb.Dx()/target.Dx(),
		sb.Min.Y+(region.Min.Y-target.Min.Y)*sb.Dy()/target.Dy(),
		sb.Min.X+(region.Max.X-target.Min.X)*sb.Dx()/target.Dx(),
		sb.Min.Y+(region.Max.Y-target.Min.Y)*sb.Dy()/target.Dy(),
	)
	xdraw.ApproxBiLinear.Scale(c.img, region, src, sub, xdraw.Over, nil)
}

// OutlineRect draws a one-pixel diagnostic outline around r (local
// coordinates, limited to the current clip). Used by debug mode during
// split and claim.
func (c *ImageCanvas) OutlineRect(r Rect) {
	region := c.absRect(r).Intersect(c.cur.clip)
	if region.Empty() {
		return
	}
	for x := region.Min.X; x < region.Max.X; x++ {
		c.img.SetRGBA(x, region.Min.Y, outlineColor)
		c.img.SetRGBA(x, region.Max.Y-1, outlineColor)
	}
	for y := region.Min.Y; y < region.Max.Y; y++ {
		c.img.SetRGBA(region.Min.X, y, outlineColor)
		c.img.SetRGBA(region.Max.X-1, y, outlineColor)
	}
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the canvas.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// At returns the color of a single pixel in canvas coordinates.
func (c *ImageCanvas) At(x, y int) color.Color {
	return c.img.At(x, y)
}

// SavePNG saves the canvas content to a PNG file.
func (c *ImageCanvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, c.img)
}

// absRect converts a local-coordinate Rect into canvas coordinates
// using the current origin translation.
func (c *ImageCanvas) absRect(r Rect) image.Rectangle {
	return image.Rect(
		r.Left+c.cur.tx,
		r.Top+c.cur.ty,
		r.Right+c.cur.tx,
		r.Bottom+c.cur.ty,
	)
}

// imageCanvasProvider is the default CanvasProvider, producing square
// ImageCanvas surfaces.
type imageCanvasProvider struct{}

func (imageCanvasProvider) CreateCanvas(size int) (Canvas, error) {
	return NewImageCanvas(size, size), nil
}
