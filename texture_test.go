package atlas

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

func TestGPUBinder_Bind(t *testing.T) {
	b := NewGPUBinder(nil)

	tex, err := b.Bind(NewImageCanvas(64, 64))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	gt, ok := tex.(*GPUTexture)
	if !ok {
		t.Fatalf("expected *GPUTexture, got %T", tex)
	}
	if gt.Width() != 64 || gt.Height() != 64 {
		t.Errorf("got %dx%d, want 64x64", gt.Width(), gt.Height())
	}
	if gt.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", gt.Format())
	}

	u, v := gt.Offset()
	ru, rv := gt.Repeat()
	if u != 0 || v != 0 || ru != 1 || rv != 1 {
		t.Errorf("base UV = offset(%v,%v) repeat(%v,%v), want full mapping", u, v, ru, rv)
	}

	// Without a device, textures are logical: zero resource IDs.
	var zeroTex core.TextureID
	var zeroView core.TextureViewID
	if gt.TextureID() != zeroTex || gt.ViewID() != zeroView {
		t.Error("logical texture should have zero resource IDs")
	}
}

func TestGPUBinder_BindNilCanvas(t *testing.T) {
	b := NewGPUBinder(nil)
	if _, err := b.Bind(nil); !errors.Is(err, ErrNilCanvas) {
		t.Errorf("Bind(nil) error = %v, want ErrNilCanvas", err)
	}
}

func TestGPUBinder_ConfigDefaults(t *testing.T) {
	b := NewGPUBinderConfig(GPUBinderConfig{Label: "atlas-0"})

	tex, err := b.Bind(NewImageCanvas(32, 32))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	gt := tex.(*GPUTexture)
	if gt.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("default Format() = %v, want RGBA8Unorm", gt.Format())
	}
	if gt.Label() != "atlas-0" {
		t.Errorf("Label() = %q, want atlas-0", gt.Label())
	}
}

func TestGPUTexture_CloneIndependentUV(t *testing.T) {
	b := NewGPUBinder(nil)
	base, err := b.Bind(NewImageCanvas(64, 64))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	clone := base.Clone()
	clone.SetOffset(0.25, 0.5)
	clone.SetRepeat(0.125, 0.25)

	// The clone carries its own UV mapping...
	if u, v := clone.Offset(); u != 0.25 || v != 0.5 {
		t.Errorf("clone Offset() = (%v, %v)", u, v)
	}
	if u, v := clone.Repeat(); u != 0.125 || v != 0.25 {
		t.Errorf("clone Repeat() = (%v, %v)", u, v)
	}

	// ...while the base mapping is untouched.
	if u, v := base.Offset(); u != 0 || v != 0 {
		t.Errorf("base Offset() changed: (%v, %v)", u, v)
	}
	if u, v := base.Repeat(); u != 1 || v != 1 {
		t.Errorf("base Repeat() changed: (%v, %v)", u, v)
	}
}

func TestGPUTexture_CloneSharesStorage(t *testing.T) {
	b := NewGPUBinder(nil)
	base, err := b.Bind(NewImageCanvas(64, 64))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	gt := base.(*GPUTexture)
	clone := base.Clone().(*GPUTexture)
	if clone.TextureID() != gt.TextureID() || clone.ViewID() != gt.ViewID() {
		t.Error("clone should share the base texture's resource IDs")
	}
	if clone.Width() != gt.Width() || clone.Height() != gt.Height() {
		t.Error("clone should share the base texture's dimensions")
	}
}

func TestGPUTexture_DisposeIdempotent(t *testing.T) {
	b := NewGPUBinder(nil)
	tex, err := b.Bind(NewImageCanvas(32, 32))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	gt := tex.(*GPUTexture)
	if gt.IsDisposed() {
		t.Fatal("fresh texture should not be disposed")
	}

	tex.Dispose()
	if !gt.IsDisposed() {
		t.Error("texture should be disposed after Dispose")
	}
	tex.Dispose() // must be a no-op
	if !gt.IsDisposed() {
		t.Error("texture should stay disposed")
	}
}

func TestGPUTexture_DisposeDoesNotAffectClones(t *testing.T) {
	b := NewGPUBinder(nil)
	base, err := b.Bind(NewImageCanvas(32, 32))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	clone := base.Clone().(*GPUTexture)
	base.Dispose()

	if clone.IsDisposed() {
		t.Error("disposing the base handle must not dispose clones")
	}
}
