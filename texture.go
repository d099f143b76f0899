package atlas

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// GPUTexture is the default Texture implementation. It tracks the
// logical GPU resource for one surface (or a cloned view of it) along
// with the mutable UV mapping each clone carries.
//
// Clones share the texture and view IDs; only the UV fields and the
// disposed flag are per-handle. This mirrors how one surface texture
// backs every leaf node, with the leaf's rectangle encoded purely in
// its UV offset and repeat.
//
// GPUTexture is safe for concurrent read access. UV writes and Dispose
// should be synchronized externally.
type GPUTexture struct {
	mu sync.RWMutex

	// GPU resource IDs. Zero for logical textures created without a
	// device (software and test use).
	textureID core.TextureID
	viewID    core.TextureViewID

	// Texture properties
	width  int
	height int
	format gputypes.TextureFormat
	label  string

	// UV mapping, bottom-left origin
	offsetU, offsetV float64
	repeatU, repeatV float64

	disposed atomic.Bool
}

// Width returns the texture width in pixels.
func (t *GPUTexture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *GPUTexture) Height() int {
	return t.height
}

// Format returns the texture pixel format.
func (t *GPUTexture) Format() gputypes.TextureFormat {
	return t.format
}

// Label returns the debug label.
func (t *GPUTexture) Label() string {
	return t.label
}

// TextureID returns the underlying wgpu texture ID.
// Returns a zero ID for logical textures.
func (t *GPUTexture) TextureID() core.TextureID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textureID
}

// ViewID returns the texture view ID.
// Returns a zero ID for logical textures.
func (t *GPUTexture) ViewID() core.TextureViewID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewID
}

// Clone returns a new handle sharing this texture's storage with an
// independent copy of the UV mapping.
func (t *GPUTexture) Clone() Texture {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &GPUTexture{
		textureID: t.textureID,
		viewID:    t.viewID,
		width:     t.width,
		height:    t.height,
		format:    t.format,
		label:     t.label,
		offsetU:   t.offsetU,
		offsetV:   t.offsetV,
		repeatU:   t.repeatU,
		repeatV:   t.repeatV,
	}
}

// SetOffset sets the UV offset.
func (t *GPUTexture) SetOffset(u, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offsetU, t.offsetV = u, v
}

// SetRepeat sets the UV repeat.
func (t *GPUTexture) SetRepeat(u, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repeatU, t.repeatV = u, v
}

// Offset returns the current UV offset.
func (t *GPUTexture) Offset() (u, v float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.offsetU, t.offsetV
}

// Repeat returns the current UV repeat.
func (t *GPUTexture) Repeat() (u, v float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.repeatU, t.repeatV
}

// Dispose releases the handle. Only the first call has any effect.
func (t *GPUTexture) Dispose() {
	if !t.disposed.CompareAndSwap(false, true) {
		return
	}

	// TODO: release the wgpu texture view through the owning device
	// once view lifetimes are wired through gpucontext.
	Logger().Debug("atlas: texture handle disposed",
		"label", t.label, "size", t.width)
}

// IsDisposed returns true if the handle has been disposed.
func (t *GPUTexture) IsDisposed() bool {
	return t.disposed.Load()
}

// GPUBinder is the default TextureBinder. It derives GPUTexture handles
// from a surface canvas, optionally using a GPU device shared by the
// host application.
//
// Following the gogpu integration model, the binder RECEIVES a device
// from the host through a gpucontext.DeviceProvider rather than
// creating one. With a nil provider the binder produces logical
// textures with zero resource IDs, which is sufficient for software
// rendering and tests.
type GPUBinder struct {
	provider gpucontext.DeviceProvider
	format   gputypes.TextureFormat
	label    string
}

// GPUBinderConfig holds configuration for creating a GPUBinder.
type GPUBinderConfig struct {
	// Provider supplies the shared GPU device. May be nil for logical
	// (CPU-only) textures.
	Provider gpucontext.DeviceProvider

	// Format is the texture pixel format.
	// Defaults to gputypes.TextureFormatRGBA8Unorm.
	Format gputypes.TextureFormat

	// Label is an optional debug label applied to bound textures.
	Label string
}

// NewGPUBinder creates a binder producing textures in RGBA8 format.
// Pass nil to bind logical textures without a GPU device.
func NewGPUBinder(provider gpucontext.DeviceProvider) *GPUBinder {
	return NewGPUBinderConfig(GPUBinderConfig{Provider: provider})
}

// NewGPUBinderConfig creates a binder with explicit configuration.
func NewGPUBinderConfig(config GPUBinderConfig) *GPUBinder {
	format := config.Format
	var unset gputypes.TextureFormat
	if format == unset {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &GPUBinder{
		provider: config.Provider,
		format:   format,
		label:    config.Label,
	}
}

// Bind derives a base texture handle from the canvas. The handle maps
// the full canvas: offset (0, 0), repeat (1, 1).
func (b *GPUBinder) Bind(c Canvas) (Texture, error) {
	if c == nil {
		return nil, ErrNilCanvas
	}

	// TODO: create the wgpu texture and upload the canvas pixels once
	// queue.WriteTexture is reachable through the provider. Until then
	// the handle is logical, with zero resource IDs.
	_ = b.provider

	return &GPUTexture{
		width:   c.Width(),
		height:  c.Height(),
		format:  b.format,
		label:   b.label,
		repeatU: 1,
		repeatV: 1,
	}, nil
}
