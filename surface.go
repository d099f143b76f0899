package atlas

import (
	"fmt"
	"sync"
)

// Default surface settings.
const (
	// DefaultSurfaceSize is the default surface dimension (1024x1024).
	DefaultSurfaceSize = 1024
)

// SurfaceConfig holds configuration for creating a Surface directly.
// Most callers go through a Manager instead, which fills these in from
// its own configuration.
type SurfaceConfig struct {
	// Size is the square side length in pixels.
	// Defaults to DefaultSurfaceSize when not positive.
	Size int

	// Provider creates the drawing surface on first use.
	// Defaults to the built-in image-backed provider.
	Provider CanvasProvider

	// Binder derives the base texture handle on first use.
	// Defaults to a GPUBinder without a device (logical textures).
	Binder TextureBinder

	// Debug enables diagnostic outline drawing during split and claim.
	Debug bool
}

// Surface is one fixed-size atlas: a square drawing surface, its
// derived base texture handle, and the space-partition tree carving
// regions out of it.
//
// The canvas and the base texture are built lazily, so a surface that
// only performs allocation math never touches its providers. A Surface
// is safe for concurrent use.
type Surface struct {
	mu sync.Mutex

	size     int
	provider CanvasProvider
	binder   TextureBinder
	debug    bool

	// canvas and texture are nil until first requested.
	canvas  Canvas
	texture Texture

	root *Node

	// Statistics
	usedArea   int
	allocCount int
}

// NewSurface creates a surface with the given configuration.
func NewSurface(config SurfaceConfig) *Surface {
	size := config.Size
	if size <= 0 {
		size = DefaultSurfaceSize
	}

	provider := config.Provider
	if provider == nil {
		provider = imageCanvasProvider{}
	}

	binder := config.Binder
	if binder == nil {
		binder = NewGPUBinder(nil)
	}

	s := &Surface{
		size:     size,
		provider: provider,
		binder:   binder,
		debug:    config.Debug,
	}
	s.root = &Node{surface: s, rect: rectOf(0, 0, size, size)}
	return s
}

// Size returns the surface side length in pixels.
func (s *Surface) Size() int {
	return s.size
}

// AllocateNode finds a free region of exactly w by h pixels, splitting
// the tree as needed, and returns the claimed leaf. It returns nil when
// the surface has no room for the request. Requests with non-positive
// dimensions always return nil.
func (s *Surface) AllocateNode(w, h int) *Node {
	if w <= 0 || h <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.allocate(w, h)
}

// Canvas returns the surface's drawing surface, building it on first
// call.
func (s *Surface) Canvas() (Canvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvasLocked()
}

// canvasLocked returns the canvas, building it on first use. The
// surface lock must be held.
func (s *Surface) canvasLocked() (Canvas, error) {
	if s.canvas != nil {
		return s.canvas, nil
	}

	c, err := s.provider.CreateCanvas(s.size)
	if err != nil {
		return nil, fmt.Errorf("atlas: failed to create canvas: %w", err)
	}
	if c == nil {
		return nil, ErrNilCanvas
	}

	s.canvas = c
	Logger().Info("atlas: canvas built", "size", s.size)
	return c, nil
}

// Texture returns the surface's base texture handle, building the
// canvas and binding the texture on first call. Leaf nodes clone this
// handle and remap its UV fields to their own rectangle.
func (s *Surface) Texture() (Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textureLocked()
}

// textureLocked returns the base texture, binding it on first use. The
// surface lock must be held.
func (s *Surface) textureLocked() (Texture, error) {
	if s.texture != nil {
		return s.texture, nil
	}

	c, err := s.canvasLocked()
	if err != nil {
		return nil, err
	}

	t, err := s.binder.Bind(c)
	if err != nil {
		return nil, fmt.Errorf("atlas: failed to bind texture: %w", err)
	}
	if t == nil {
		return nil, ErrNilTexture
	}

	s.texture = t
	return t, nil
}

// outlineLocked draws a diagnostic outline when the canvas supports it.
// The surface lock must be held.
func (s *Surface) outlineLocked(r Rect) {
	c, err := s.canvasLocked()
	if err != nil {
		Logger().Warn("atlas: debug outline skipped", "error", err)
		return
	}
	if o, ok := c.(rectOutliner); ok {
		o.OutlineRect(r)
	}
}

// UsedArea returns the total area of occupied leaves in pixels.
func (s *Surface) UsedArea() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usedArea
}

// Utilization returns the fraction of surface area occupied (0.0 to 1.0).
func (s *Surface) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalArea := s.size * s.size
	if totalArea == 0 {
		return 0
	}
	return float64(s.usedArea) / float64(totalArea)
}

// AllocCount returns the number of successful allocations over the
// surface's lifetime. Releases do not decrement it.
func (s *Surface) AllocCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocCount
}
