package atlas

import "sync"

// surfaceSizes is the set of accepted surface side lengths. Anything
// outside this set silently falls back to DefaultSurfaceSize.
var surfaceSizes = map[int]bool{
	128:   true,
	256:   true,
	512:   true,
	1024:  true,
	2048:  true,
	4096:  true,
	8192:  true,
	16384: true,
}

// ManagerConfig holds configuration for creating a Manager.
type ManagerConfig struct {
	// Size is the side length of every surface the manager creates.
	// Must be one of 128, 256, 512, 1024, 2048, 4096, 8192, or 16384;
	// any other value falls back to DefaultSurfaceSize.
	Size int

	// Provider creates each surface's drawing surface on first use.
	// Defaults to the built-in image-backed provider.
	Provider CanvasProvider

	// Binder derives each surface's base texture handle on first use.
	// Defaults to a GPUBinder without a device (logical textures).
	Binder TextureBinder

	// Debug enables diagnostic outline drawing during split and claim.
	// Purely observational: packing decisions are unaffected.
	Debug bool
}

// pendingRequest is one queued batch allocation awaiting Solve.
type pendingRequest struct {
	width, height int
	alloc         *Allocation
}

// Manager owns an ordered collection of surfaces and hands out regions
// across them. Every allocation scans the surfaces in creation order
// and takes the first fit; when none fits, exactly one new surface of
// the configured size is created.
//
// Three allocation modes are offered: immediate (Allocate), deferred
// single (AllocateAsync), and deferred batch (AllocateBatch plus
// Solve). The batch queue is the extension point for placement
// optimization: deferring placement would let a future implementation
// sort or group pending requests before packing, though today they are
// still processed in submission order.
//
// A Manager is safe for concurrent use, but the design assumes a
// single logical owner; concurrent allocation from many goroutines
// serializes on the manager's lock.
type Manager struct {
	mu sync.Mutex

	size     int
	debug    bool
	provider CanvasProvider
	binder   TextureBinder

	// surfaces in creation order, scanned in that order on every
	// allocation attempt.
	surfaces []*Surface

	// pending is nil until the first AllocateBatch call; Solve on a
	// nil queue is an error, Solve on a drained-but-initialized queue
	// is not.
	pending []pendingRequest
}

// NewManager creates a manager with the given configuration.
func NewManager(config ManagerConfig) *Manager {
	size := config.Size
	if !surfaceSizes[size] {
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

	return &Manager{
		size:     size,
		debug:    config.Debug,
		provider: provider,
		binder:   binder,
	}
}

// Size returns the configured surface size.
func (m *Manager) Size() int {
	return m.size
}

// validateSize rejects requests that no surface of the configured size
// could ever hold, so the manager never uselessly creates a surface for
// them. Non-positive dimensions are rejected for the same reason.
func (m *Manager) validateSize(w, h int) error {
	if w <= 0 || h <= 0 || w > m.size || h > m.size {
		return &SizeError{Width: w, Height: h, Max: m.size}
	}
	return nil
}

// allocateLocked scans existing surfaces in creation order and returns
// the first successful allocation; if every surface is out of room it
// creates one new surface of the configured size and allocates from
// that. The caller must have validated the size, which guarantees the
// final attempt succeeds. The manager lock must be held.
func (m *Manager) allocateLocked(w, h int) *Node {
	for _, s := range m.surfaces {
		if n := s.AllocateNode(w, h); n != nil {
			return n
		}
	}

	// TODO: when a request fits no existing surface, try progressively
	// larger surface sizes instead of always using the configured one.
	s := NewSurface(SurfaceConfig{
		Size:     m.size,
		Provider: m.provider,
		Binder:   m.binder,
		Debug:    m.debug,
	})
	m.surfaces = append(m.surfaces, s)

	Logger().Info("atlas: surface created", "size", m.size, "surfaces", len(m.surfaces))
	return s.AllocateNode(w, h)
}

// Allocate synchronously allocates a region of exactly w by h pixels
// and returns its leaf node. It returns a *SizeError when either
// dimension exceeds the configured surface size (or is not positive),
// regardless of existing free space.
func (m *Manager) Allocate(w, h int) (*Node, error) {
	if err := m.validateSize(w, h); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocateLocked(w, h), nil
}

// AllocateAsync allocates like Allocate but delivers the result through
// an Allocation future. The returned future is already settled: this
// mode only changes how the outcome is consumed, not when placement
// happens.
func (m *Manager) AllocateAsync(w, h int) *Allocation {
	a := newAllocation()
	node, err := m.Allocate(w, h)
	a.complete(node, err)
	return a
}

// AllocateBatch queues a region request for deferred placement. Size
// validation happens eagerly: an oversized request returns an already
// rejected future. A valid request is appended to the batch queue and
// its future stays pending until Solve runs.
func (m *Manager) AllocateBatch(w, h int) *Allocation {
	a := newAllocation()
	if err := m.validateSize(w, h); err != nil {
		a.complete(nil, err)
		return a
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		m.pending = make([]pendingRequest, 0, 16)
	}
	m.pending = append(m.pending, pendingRequest{width: w, height: h, alloc: a})
	return a
}

// Solve drains the batch queue, placing every queued request in FIFO
// order against the packing state as it exists now, and resolving each
// request's future in submission order. The queue is reset before
// dispatch, so batch requests submitted during resolution start a fresh
// queue.
//
// Solve returns ErrQueueNotInitialized when no batch request was ever
// queued. Otherwise it returns a Batch future that settles once all
// drained futures have settled.
func (m *Manager) Solve() (*Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return nil, ErrQueueNotInitialized
	}

	queue := m.pending
	m.pending = make([]pendingRequest, 0, 16)

	allocs := make([]*Allocation, len(queue))
	for i, req := range queue {
		// Size was validated at queue time, so placement cannot fail.
		node := m.allocateLocked(req.width, req.height)
		req.alloc.complete(node, nil)
		allocs[i] = req.alloc
	}

	batch := newBatch(allocs)
	batch.settle()
	return batch, nil
}

// Release frees the node's region. Release is nil-safe: releasing a nil
// node does nothing. See Node.Release for the full semantics.
func (m *Manager) Release(n *Node) error {
	if n == nil {
		return nil
	}
	return n.Release()
}

// SurfaceCount returns the number of surfaces created so far.
func (m *Manager) SurfaceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.surfaces)
}

// Surfaces returns the surfaces in creation order. The returned slice
// is a copy; the surfaces themselves are shared.
func (m *Manager) Surfaces() []*Surface {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Surface, len(m.surfaces))
	copy(out, m.surfaces)
	return out
}

// PendingCount returns the number of batch requests awaiting Solve.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// ManagerStats summarizes a manager's packing state.
type ManagerStats struct {
	// SurfaceCount is the number of surfaces created.
	SurfaceCount int

	// AllocCount is the total number of successful allocations.
	AllocCount int

	// UsedArea is the total occupied area in pixels across surfaces.
	UsedArea int

	// Utilization is the occupied fraction of total surface area.
	Utilization float64
}

// Stats returns a snapshot of the manager's packing state.
func (m *Manager) Stats() ManagerStats {
	m.mu.Lock()
	surfaces := make([]*Surface, len(m.surfaces))
	copy(surfaces, m.surfaces)
	size := m.size
	m.mu.Unlock()

	var stats ManagerStats
	stats.SurfaceCount = len(surfaces)
	for _, s := range surfaces {
		stats.AllocCount += s.AllocCount()
		stats.UsedArea += s.UsedArea()
	}
	if total := len(surfaces) * size * size; total > 0 {
		stats.Utilization = float64(stats.UsedArea) / float64(total)
	}
	return stats
}
