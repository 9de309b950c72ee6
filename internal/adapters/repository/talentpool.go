package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"sync"

	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/types"
	"github.com/okian/screener/pkg/metrics"
)

// Treap-based, in-memory TalentPool, one treap per role.
//
// Ordering: score DESC, then arrival sequence ASC. "less" means ranks
// earlier, so an in-order walk yields the leaderboard from best to worst.
// Subtree sizes give O(log n) rank lookups.

// Scores are rounded to two decimals upstream; four keep them exact.
const scoreScale = 10_000

const defaultMaxLimit = 1000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	return scoreFP(math.Round(x * scoreScale))
}

func toFloat(x scoreFP) float64 {
	return float64(x) / scoreScale
}

// record is the best offer seen for a candidate.
type record struct {
	score scoreFP
	seq   uint64
	name  string
}

type node struct {
	id    string
	score scoreFP
	seq   uint64
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aScore, aSeq) is placed before (bScore, bSeq).
func less(aScore scoreFP, aSeq uint64, bScore scoreFP, bSeq uint64) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aSeq < bSeq
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// priority hashes the candidate and its arrival so the tree shape is
// reproducible across runs.
func priority(id string, seq uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	var b [8]byte
	for i := range b {
		b[i] = byte(seq >> (8 * i))
	}
	_, _ = h.Write(b[:])
	return h.Sum64()
}

func insert(n, nd *node) *node {
	if n == nil {
		nd.size = 1
		return nd
	}
	if less(nd.score, nd.seq, n.score, n.seq) {
		n.left = insert(n.left, nd)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, nd)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, score scoreFP, seq uint64) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && seq == n.seq:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, score, seq)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, score, seq)
		}
	case less(score, seq, n.score, n.seq):
		n.left = deleteNode(n.left, score, seq)
	default:
		n.right = deleteNode(n.right, score, seq)
	}
	fix(n)
	return n
}

// position returns the 1-based place of (score, seq), or 0 when absent.
func position(n *node, score scoreFP, seq uint64) int {
	pos := 0
	for n != nil {
		if score == n.score && seq == n.seq {
			return pos + nsize(n.left) + 1
		}
		if less(score, seq, n.score, n.seq) {
			n = n.left
		} else {
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit entries in leaderboard order.
func collectTopN(n *node, limit int, records map[string]record, out *[]types.Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, records, out)
	if len(*out) < limit {
		rec := records[n.id]
		*out = append(*out, types.Entry{
			Rank:        len(*out) + 1,
			CandidateID: n.id,
			Name:        rec.name,
			Score:       toFloat(rec.score),
		})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

type board struct {
	root *node
	byID map[string]record
}

// TreapPool is an in-memory TalentPool.
type TreapPool struct {
	mu       sync.RWMutex
	boards   map[string]*board
	seq      uint64
	maxLimit int
}

// NewTreapPool constructs an empty talent pool.
func NewTreapPool(opts ...PoolOption) *TreapPool {
	p := &TreapPool{
		boards:   make(map[string]*board),
		maxLimit: defaultMaxLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Offer implements TalentPool.Offer in O(log n) expected time. An equal
// score keeps the earlier arrival in place.
func (p *TreapPool) Offer(_ context.Context, role string, c model.RankedCandidate) (bool, error) { //nolint:gocritic // candidates travel by value
	if role == "" || c.ID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_entry")
		return false, fmt.Errorf("offer to %q: %w", role, ErrInvalidEntry)
	}
	ns := toFixedPoint(c.Score)

	p.mu.Lock()
	b, ok := p.boards[role]
	if !ok {
		b = &board{byID: make(map[string]record)}
		p.boards[role] = b
	}
	if old, ok := b.byID[c.ID]; ok {
		if ns <= old.score {
			p.mu.Unlock()
			return false, nil
		}
		b.root = deleteNode(b.root, old.score, old.seq)
	}
	p.seq++
	seq := p.seq
	b.byID[c.ID] = record{score: ns, seq: seq, name: c.Name}
	b.root = insert(b.root, &node{id: c.ID, score: ns, seq: seq, prio: priority(c.ID, seq)})
	size := len(b.byID)
	p.mu.Unlock()

	metrics.UpdateTalentPoolSize(role, size)
	return true, nil
}

// Rank implements TalentPool.Rank in O(log n).
func (p *TreapPool) Rank(_ context.Context, role, candidateID string) (types.Entry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.boards[role]
	if !ok {
		return types.Entry{}, fmt.Errorf("role %q: %w", role, ErrNotFound)
	}
	rec, ok := b.byID[candidateID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return types.Entry{}, fmt.Errorf("candidate %q: %w", candidateID, ErrNotFound)
	}
	return types.Entry{
		Rank:        position(b.root, rec.score, rec.seq),
		CandidateID: candidateID,
		Name:        rec.name,
		Score:       toFloat(rec.score),
	}, nil
}

// TopN implements TalentPool.TopN. Limits above the configured maximum are
// clamped; an unknown role yields an empty list.
func (p *TreapPool) TopN(_ context.Context, role string, n int) ([]types.Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	if n > p.maxLimit {
		n = p.maxLimit
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	b, ok := p.boards[role]
	if !ok {
		return []types.Entry{}, nil
	}
	out := make([]types.Entry, 0, min(n, len(b.byID)))
	collectTopN(b.root, n, b.byID, &out)
	return out, nil
}

// Count implements TalentPool.Count.
func (p *TreapPool) Count(_ context.Context, role string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.boards[role]; ok {
		return len(b.byID)
	}
	return 0
}

// Roles implements TalentPool.Roles in alphabetical order.
func (p *TreapPool) Roles(_ context.Context) []string {
	p.mu.RLock()
	out := make([]string, 0, len(p.boards))
	for role := range p.boards {
		out = append(out, role)
	}
	p.mu.RUnlock()
	sort.Strings(out)
	return out
}
