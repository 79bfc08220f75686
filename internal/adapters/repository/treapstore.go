package repository

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/dcf21/star-charter/pkg/metrics"
)

// Treap-based, in-memory Index implementation.
//
// Ordering: magnitude ASC, then RA ASC, then ID ASC. "less" means emitted
// earlier, so in-order traversal yields the output order. Node priorities are
// a hash of the record ID, which keeps the tree shape independent of insertion
// timing and the same on every run.

type key struct {
	mag float64
	ra  float64
	id  int
}

func less(a, b key) bool {
	if a.mag != b.mag {
		return a.mag < b.mag
	}
	if a.ra != b.ra {
		return a.ra < b.ra
	}
	return a.id < b.id
}

// treap node
type node struct {
	k     key
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

// idPriority is the splitmix64 finaliser of the record ID.
func idPriority(id int) uint64 {
	z := uint64(id) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func insert(n *node, k key) *node {
	if n == nil {
		return &node{k: k, prio: idPriority(k.id), size: 1}
	}
	if less(k, n.k) {
		n.left = insert(n.left, k)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, k)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// position returns the number of keys ordered before k.
func position(n *node, k key) int {
	pos := 0
	for n != nil {
		switch {
		case less(k, n.k):
			n = n.left
		case less(n.k, k):
			pos += nsize(n.left) + 1
			n = n.right
		default:
			return pos + nsize(n.left)
		}
	}
	return pos
}

func toEntry(k key, rank int) Entry {
	return Entry{Rank: rank, ID: k.id, Magnitude: k.mag, RA: k.ra}
}

// TreapIndex is an Index backed by a treap.
type TreapIndex struct {
	mu       sync.RWMutex
	root     *node
	byID     map[int]key
	sizeHint int
}

// NewTreapIndex constructs an empty index.
func NewTreapIndex(opts ...Option) *TreapIndex {
	s := &TreapIndex{sizeHint: 1024}
	for _, opt := range opts {
		opt(s)
	}
	s.byID = make(map[int]key, s.sizeHint)
	return s
}

// Insert implements Index.Insert with O(log n) expected time.
func (s *TreapIndex) Insert(_ context.Context, e Entry) error {
	if math.IsNaN(e.Magnitude) || math.IsInf(e.Magnitude, 0) {
		metrics.RecordErrorByComponent("repository", "invalid_magnitude")
		return fmt.Errorf("record %d: %w", e.ID, ErrInvalidMagnitude)
	}
	k := key{mag: e.Magnitude, ra: e.RA, id: e.ID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[e.ID]; ok {
		metrics.RecordErrorByComponent("repository", "duplicate")
		return fmt.Errorf("record %d: %w", e.ID, ErrDuplicateEntry)
	}
	s.byID[e.ID] = k
	s.root = insert(s.root, k)
	return nil
}

// Ascend implements Index.Ascend. The walk stops early when ctx is cancelled.
func (s *TreapIndex) Ascend(ctx context.Context, fn func(Entry) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stack := make([]*node, 0, 64)
	n := s.root
	rank := 0
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rank++
		if rank%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if !fn(toEntry(n.k, rank)) {
			return nil
		}
		n = n.right
	}
	return nil
}

// Rank returns the entry for id in O(log n).
func (s *TreapIndex) Rank(_ context.Context, id int) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	return toEntry(k, position(s.root, k)+1), nil
}

// TopN returns the first n entries in emission order.
func (s *TreapIndex) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	out := make([]Entry, 0, min(n, s.Count(ctx)))
	err := s.Ascend(ctx, func(e Entry) bool {
		out = append(out, e)
		return len(out) < n
	})
	return out, err
}

// Count returns the total number of indexed records.
func (s *TreapIndex) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
