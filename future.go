package atlas

import (
	"context"
	"sync"
)

// Allocation is the deferred result of an allocation request. It is
// returned by the asynchronous manager entry points and settles exactly
// once, either with a node or with an error.
//
// An Allocation obtained from AllocateAsync is already settled when it
// is returned. An Allocation obtained from AllocateBatch stays pending
// until the manager's Solve call processes the queue; if Solve is never
// called the Allocation remains pending forever (there is no
// cancellation of a queued request, only of the wait itself).
type Allocation struct {
	done chan struct{}
	once sync.Once

	node *Node
	err  error
}

// newAllocation creates a pending Allocation.
func newAllocation() *Allocation {
	return &Allocation{done: make(chan struct{})}
}

// complete settles the Allocation. Later calls are ignored.
func (a *Allocation) complete(node *Node, err error) {
	a.once.Do(func() {
		a.node = node
		a.err = err
		close(a.done)
	})
}

// Done returns a channel that is closed when the Allocation settles.
func (a *Allocation) Done() <-chan struct{} {
	return a.done
}

// Settled reports whether the Allocation has already settled.
func (a *Allocation) Settled() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// Result blocks until the Allocation settles and returns its outcome.
func (a *Allocation) Result() (*Node, error) {
	<-a.done
	return a.node, a.err
}

// Wait blocks until the Allocation settles or ctx is done. A context
// error abandons the wait only; the queued request itself stays valid
// and still settles on a later Solve.
func (a *Allocation) Wait(ctx context.Context) (*Node, error) {
	select {
	case <-a.done:
		return a.node, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Batch is the aggregate result of one Solve pass. It settles after
// every Allocation drained from the queue has settled, and exposes the
// individual results in submission order.
type Batch struct {
	done   chan struct{}
	allocs []*Allocation
}

// newBatch creates a pending Batch over the given allocations.
func newBatch(allocs []*Allocation) *Batch {
	return &Batch{done: make(chan struct{}), allocs: allocs}
}

// settle marks the Batch as complete.
func (b *Batch) settle() {
	close(b.done)
}

// Done returns a channel that is closed when the Batch settles.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Len returns the number of allocations in the batch.
func (b *Batch) Len() int {
	return len(b.allocs)
}

// Allocations returns the individual allocation futures in submission
// order. The returned slice must not be modified.
func (b *Batch) Allocations() []*Allocation {
	return b.allocs
}

// Wait blocks until the Batch settles or ctx is done, then returns the
// allocated nodes in submission order. The first allocation error, if
// any, is returned alongside the nodes gathered so far.
func (b *Batch) Wait(ctx context.Context) ([]*Node, error) {
	select {
	case <-b.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	nodes := make([]*Node, 0, len(b.allocs))
	for _, a := range b.allocs {
		node, err := a.Result()
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
