// Package dedupe binds client request IDs to the screening they created so
// that retried submissions return the original screening.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50000

// Deduper remembers which screening a request ID produced.
type Deduper interface {
	// Claim atomically binds requestID to screeningID unless it is already
	// bound. It returns the bound screening ID and whether it existed before.
	Claim(ctx context.Context, requestID, screeningID string) (string, bool)

	// Release forgets requestID so it can be submitted again. Used when the
	// screening it claimed was never queued (e.g. queue backpressure).
	Release(ctx context.Context, requestID string)

	Size() int64
}

// node is one entry of the insertion-ordered list.
type node struct {
	requestID   string
	screeningID string
	prev, next  *node
}

func (n *node) reset() {
	n.requestID = ""
	n.screeningID = ""
	n.prev = nil
	n.next = nil
}

// inMemoryDeduper implements Deduper with a map plus a doubly linked list
// ordered newest first. When bounded, the oldest claim is evicted.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]*node
	head     *node // newest
	tail     *node // oldest
	maxSize  int   // 0 or negative = unbounded
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*node),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, requestID, screeningID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.seen[requestID]; ok {
		return n.screeningID, true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	n := d.nodePool.Get().(*node)
	n.requestID = requestID
	n.screeningID = screeningID
	d.pushFront(n)
	d.seen[requestID] = n
	d.size.Add(1)
	return screeningID, false
}

func (d *inMemoryDeduper) Release(_ context.Context, requestID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, ok := d.seen[requestID]
	if !ok {
		return
	}
	d.remove(n)
}

// Size returns the current number of claims.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// Callers below must hold d.mu.

func (d *inMemoryDeduper) pushFront(n *node) {
	n.next = d.head
	if d.head != nil {
		d.head.prev = n
	}
	d.head = n
	if d.tail == nil {
		d.tail = n
	}
}

func (d *inMemoryDeduper) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		d.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		d.tail = n.prev
	}
	delete(d.seen, n.requestID)
	n.reset()
	d.nodePool.Put(n)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) evictOldest() {
	if d.tail != nil {
		d.remove(d.tail)
	}
}
