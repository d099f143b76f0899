package atlas

// Canvas is the drawing surface an atlas surface carves regions out of.
//
// The atlas core never draws client pixel content itself; it touches a
// Canvas only to clear released regions and to scope drawing to an
// allocated region (clip with a translated origin, bracketed by
// Save/Restore). Anything beyond that narrow contract belongs to the
// canvas implementation and its clients.
type Canvas interface {
	// Width returns the canvas width in pixels.
	Width() int

	// Height returns the canvas height in pixels.
	Height() int

	// Save pushes the current clip and origin onto the state stack.
	Save()

	// Restore pops the most recently saved clip and origin. Restore on
	// an empty stack is a no-op.
	Restore()

	// ClipRect restricts subsequent drawing to r and translates the
	// drawing origin to r's top-left corner, so that clients draw in
	// region-local coordinates.
	ClipRect(r Rect)

	// ClearRect clears the pixel content inside r, in current local
	// coordinates, to fully transparent.
	ClearRect(r Rect)
}

// CanvasProvider produces the drawing surface backing a new atlas
// surface. Providers are consulted lazily: no canvas exists until a
// surface's canvas is first needed.
type CanvasProvider interface {
	// CreateCanvas returns a canvas of the given square pixel size.
	CreateCanvas(size int) (Canvas, error)
}

// Texture is a handle onto the GPU texture derived from a surface's
// canvas. Handles are cheap to clone: clones share the underlying pixel
// storage and differ only in their UV mapping, which is how each leaf
// node exposes its own sub-region of the shared surface texture.
type Texture interface {
	// Clone returns a new handle sharing this texture's storage, with
	// an independent copy of the UV mapping.
	Clone() Texture

	// SetOffset sets the UV offset (bottom-left origin).
	SetOffset(u, v float64)

	// SetRepeat sets the UV repeat (the sampled fraction per axis).
	SetRepeat(u, v float64)

	// Offset returns the current UV offset.
	Offset() (u, v float64)

	// Repeat returns the current UV repeat.
	Repeat() (u, v float64)

	// Dispose releases the handle. Disposing an already-disposed handle
	// is a no-op.
	Dispose()
}

// TextureBinder derives a base texture handle from a canvas. One base
// handle exists per surface; every leaf's handle is cloned from it.
type TextureBinder interface {
	// Bind returns a texture handle over the canvas's pixel storage.
	Bind(c Canvas) (Texture, error)
}

// rectOutliner is implemented by canvases that can draw diagnostic
// rectangle outlines. Debug mode uses it when available, the same way
// optional capabilities are probed elsewhere in the gogpu stack.
type rectOutliner interface {
	OutlineRect(r Rect)
}

// baseRectClearer is implemented by canvases that can clear a region in
// canvas coordinates regardless of the current clip and origin. Release
// prefers it over ClearRect so a client that is mid Save/ClipRect does
// not shift or mask the cleared region.
type baseRectClearer interface {
	ClearRectBase(r Rect)
}
