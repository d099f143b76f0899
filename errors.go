package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrQueueNotInitialized is returned by Solve when no batched request
	// was ever queued through AllocateBatch.
	ErrQueueNotInitialized = errors.New("atlas: batch queue not initialized")

	// ErrReleaseBranch is returned when releasing a node that still has
	// children. Only leaf nodes are ever handed to callers, so hitting
	// this means a stale internal reference is being released.
	ErrReleaseBranch = errors.New("atlas: cannot release a node with children")

	// ErrNilCanvas is returned when a canvas provider produces no canvas.
	ErrNilCanvas = errors.New("atlas: canvas provider returned nil canvas")

	// ErrNilTexture is returned when a texture binder produces no texture.
	ErrNilTexture = errors.New("atlas: texture binder returned nil texture")
)

// SizeError is returned when a requested width or height exceeds the
// configured surface size. No surface of that size could ever hold the
// request, so the manager fails fast instead of creating one.
//
// The error is user-correctable: shrink the request or construct the
// manager with a larger surface size.
type SizeError struct {
	// Width and Height are the requested dimensions.
	Width  int
	Height int

	// Max is the configured surface size.
	Max int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("atlas: requested %dx%d exceeds surface size %d", e.Width, e.Height, e.Max)
}
