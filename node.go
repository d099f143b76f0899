package atlas

import "sync/atomic"

// nodeIDCounter is the process-local source of occupancy identifiers.
// IDs only need to be unique among concurrently occupied leaves, so a
// monotonically increasing counter is sufficient. 0 is reserved for
// "free".
var nodeIDCounter atomic.Uint64

// newOccupancyID returns a fresh non-zero occupancy identifier.
func newOccupancyID() uint64 {
	return nodeIDCounter.Add(1)
}

// Node is one rectangle in a surface's binary space-partition tree.
//
// A node is either a leaf (free or occupied) or a branch whose two
// children exactly and disjointly partition its rectangle. Branches are
// never occupied and never split again; leaves are the unit handed to
// callers by Allocate. A released leaf keeps its rectangle and tree
// position forever: sibling space is never merged back into the parent.
//
// All tree mutation is guarded by the owning surface's lock, so Node
// methods are safe to call concurrently with other operations on the
// same surface.
type Node struct {
	surface     *Surface
	left, right *Node
	rect        Rect

	// id is the occupancy identifier; 0 means free.
	id uint64

	// texture is the lazily derived per-leaf handle, cloned from the
	// surface's base texture.
	texture Texture
}

// Surface returns the surface this node belongs to.
func (n *Node) Surface() *Surface {
	return n.surface
}

// Rect returns the node's rectangle on the surface.
func (n *Node) Rect() Rect {
	return n.rect
}

// ID returns the occupancy identifier, or 0 if the node is free.
func (n *Node) ID() uint64 {
	n.surface.mu.Lock()
	defer n.surface.mu.Unlock()
	return n.id
}

// HasChildren returns true if the node has been split.
func (n *Node) HasChildren() bool {
	n.surface.mu.Lock()
	defer n.surface.mu.Unlock()
	return n.left != nil
}

// IsOccupied returns true if the node is a claimed leaf.
func (n *Node) IsOccupied() bool {
	n.surface.mu.Lock()
	defer n.surface.mu.Unlock()
	return n.id != 0
}

// allocate searches the subtree for a free leaf of exactly w by h
// pixels, splitting larger leaves as needed. It returns nil when the
// subtree has no room. The surface lock must be held.
//
// The search is greedy with no backtracking: once a leaf is chosen and
// split, the request commits to that region.
func (n *Node) allocate(w, h int) *Node {
	if n.left != nil {
		if got := n.left.allocate(w, h); got != nil {
			return got
		}
		return n.right.allocate(w, h)
	}

	if n.id != 0 {
		return nil
	}

	nw, nh := n.rect.Width(), n.rect.Height()
	if w > nw || h > nh {
		return nil
	}

	if w == nw && h == nh {
		n.claim()
		return n
	}

	n.split(w, h)
	return n.left.allocate(w, h)
}

// claim marks a free leaf as occupied. The surface lock must be held.
func (n *Node) claim() {
	n.id = newOccupancyID()
	n.surface.usedArea += n.rect.Width() * n.rect.Height()
	n.surface.allocCount++

	Logger().Debug("atlas: leaf claimed", "rect", n.rect.String(), "id", n.id)
	if n.surface.debug {
		n.surface.outlineLocked(n.rect)
	}
}

// split turns a free leaf into a branch with two new free leaves that
// partition its rectangle. The axis is chosen so the larger leftover
// dimension stays undivided, tending to preserve large contiguous free
// space for future requests. The surface lock must be held.
func (n *Node) split(w, h int) {
	r := n.rect
	if r.Width()-w > r.Height()-h {
		// Vertical split: left child takes the requested width at full
		// height, right child the remaining column.
		n.left = &Node{surface: n.surface, rect: rectOf(r.Left, r.Top, r.Left+w, r.Bottom)}
		n.right = &Node{surface: n.surface, rect: rectOf(r.Left+w, r.Top, r.Right, r.Bottom)}
	} else {
		// Horizontal split: left child takes the requested height at
		// full width, right child the remaining strip below.
		n.left = &Node{surface: n.surface, rect: rectOf(r.Left, r.Top, r.Right, r.Top+h)}
		n.right = &Node{surface: n.surface, rect: rectOf(r.Left, r.Top+h, r.Right, r.Bottom)}
	}

	Logger().Debug("atlas: leaf split",
		"rect", r.String(), "left", n.left.rect.String(), "right", n.right.rect.String())
	if n.surface.debug {
		n.surface.outlineLocked(n.left.rect)
		n.surface.outlineLocked(n.right.rect)
	}
}

// Release frees an occupied leaf: the derived texture handle is
// disposed, the leaf's pixel region is cleared on the surface canvas,
// and the occupancy identifier is reset. The rectangle and tree
// position are retained, so the leaf can later satisfy a request of
// equal or smaller size at this exact spot.
//
// Releasing a node that has children returns ErrReleaseBranch: branch
// nodes are never handed out, so this indicates a stale reference.
// Releasing an already-free leaf is a no-op; the texture handle is
// never disposed twice.
func (n *Node) Release() error {
	n.surface.mu.Lock()
	defer n.surface.mu.Unlock()
	return n.release()
}

// release implements Release. The surface lock must be held.
func (n *Node) release() error {
	if n.left != nil || n.right != nil {
		return ErrReleaseBranch
	}

	if n.texture != nil {
		n.texture.Dispose()
		n.texture = nil
	}

	// Clearing pixels only matters if the canvas was ever built; a
	// surface that never drew has nothing to erase. n.rect is in
	// surface coordinates, so clear through the untranslated path when
	// the canvas offers one.
	if c := n.surface.canvas; c != nil {
		if bc, ok := c.(baseRectClearer); ok {
			bc.ClearRectBase(n.rect)
		} else {
			c.ClearRect(n.rect)
		}
	}

	if n.id != 0 {
		n.surface.usedArea -= n.rect.Width() * n.rect.Height()
		Logger().Debug("atlas: leaf released", "rect", n.rect.String(), "id", n.id)
	}
	n.id = 0
	return nil
}

// Texture returns the node's texture handle, deriving it on first call
// by cloning the surface's base texture and remapping the UV fields to
// this node's rectangle. The handle is disposed on Release.
func (n *Node) Texture() (Texture, error) {
	n.surface.mu.Lock()
	defer n.surface.mu.Unlock()

	if n.texture != nil {
		return n.texture, nil
	}

	base, err := n.surface.textureLocked()
	if err != nil {
		return nil, err
	}

	size := float64(n.surface.size)
	t := base.Clone()
	t.SetOffset(float64(n.rect.Left)/size, 1-float64(n.rect.Bottom)/size)
	t.SetRepeat(float64(n.rect.Width())/size, float64(n.rect.Height())/size)
	n.texture = t
	return t, nil
}
