package acgtrie


// MaxRows is the row ceiling: the store holds at most MaxRows rows, so the
// largest index it allocates is MaxRows-1. Row indices are 32-bit, and
// index 2^32-1 is reserved as a sentinel to keep the last allocation
// attempt a hard failure rather than a silent wraparound.
const MaxRows = uint32(1)<<32 - 1

// DefaultGrowChunk mirrors the reference implementation's default initial
// capacity for a single process's trie: 10,000,000 rows, or about 280MB
// across the six columns.
const DefaultGrowChunk = 10_000_000

// Store holds the six parallel columnar arrays backing a trie: four child
// columns, a count column, and a packed-sequence column. Growth
// reallocates one column at a time so peak memory during a resize is
// capacity+one column rather than a full doubling of the whole structure.
//
// The four child columns are declared and serialized in file-suffix order
// A, C, G, T (see serialize.Header's "structs" field), but are indexed by
// up2bit base value {A=0, C=1, T=2, G=3} wherever a Base
// selects a child (see Row.Child, ChildAt, SetChildAt) — the column named
// "g" holds the slot for base value 3, and "t" holds the slot for base
// value 2. This is the single place that mapping is applied; get it wrong
// here and nowhere else needs to compensate.
type Store struct {
	a, c, g, t []uint32
	count      []uint32
	seq        []int64

	// GrowChunk is the number of rows added per grow() call once the
	// store runs out of capacity. Tests may shrink this to exercise
	// growth cheaply; production callers should leave it at
	// DefaultGrowChunk or size it to the expected input.
	GrowChunk int
}

// New creates a Store with initialCapacity rows of headroom and row 0
// initialized to its root defaults (see Row docs).
func New(initialCapacity int) *Store {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	s := &Store{
		a:         make([]uint32, 1, initialCapacity),
		c:         make([]uint32, 1, initialCapacity),
		g:         make([]uint32, 1, initialCapacity),
		t:         make([]uint32, 1, initialCapacity),
		count:     make([]uint32, 1, initialCapacity),
		seq:       make([]int64, 1, initialCapacity),
		GrowChunk: DefaultGrowChunk,
	}
	s.seq[0] = int64(emptySeq)
	return s
}

// Len returns the number of live rows, always >= 1 (row 0 always exists).
func (s *Store) Len() uint32 {
	return uint32(len(s.count))
}

// Get returns a value-type snapshot of row i. Row.Child is indexed by
// up2bit base value, not by column declaration order; see the Store
// doc comment.
//
// REQUIRES: i < s.Len().
func (s *Store) Get(i uint32) Row {
	return Row{
		Count: s.count[i],
		Child: [4]uint32{s.a[i], s.c[i], s.t[i], s.g[i]},
		Seq:   uint64(s.seq[i]),
	}
}

// Set overwrites row i with r. r.Child is indexed by up2bit base value;
// see the Store doc comment.
//
// REQUIRES: i < s.Len().
func (s *Store) Set(i uint32, r Row) {
	s.a[i] = r.Child[0]
	s.c[i] = r.Child[1]
	s.t[i] = r.Child[2]
	s.g[i] = r.Child[3]
	s.count[i] = r.Count
	s.seq[i] = int64(r.Seq)
}

// Count returns row i's count without materializing a full Row.
func (s *Store) Count(i uint32) uint32 { return s.count[i] }

// AddCount adds delta to row i's count in place.
func (s *Store) AddCount(i uint32, delta uint32) {
	s.count[i] += delta
}

// Seq returns row i's packed edge label without materializing a full Row.
func (s *Store) Seq(i uint32) uint64 { return uint64(s.seq[i]) }

// SetSeq overwrites row i's packed edge label in place.
func (s *Store) SetSeq(i uint32, v uint64) {
	s.seq[i] = int64(v)
}

// ChildAt returns row i's child pointer for base b (up2bit value: A=0,
// C=1, T=2, G=3).
func (s *Store) ChildAt(i uint32, baseIdx uint8) uint32 {
	switch baseIdx & 3 {
	case 0:
		return s.a[i]
	case 1:
		return s.c[i]
	case 2:
		return s.t[i]
	default:
		return s.g[i]
	}
}

// SetChildAt sets row i's child pointer for base b (up2bit value) to idx.
func (s *Store) SetChildAt(i uint32, baseIdx uint8, idx uint32) {
	switch baseIdx & 3 {
	case 0:
		s.a[i] = idx
	case 1:
		s.c[i] = idx
	case 2:
		s.t[i] = idx
	default:
		s.g[i] = idx
	}
}

// ClearChildren zeroes all four child pointers of row i.
func (s *Store) ClearChildren(i uint32) {
	s.a[i] = 0
	s.c[i] = 0
	s.g[i] = 0
	s.t[i] = 0
}

// Alloc appends a new zero-valued row (Count=0, Seq=empty, no children)
// and returns its index. It grows the backing columns first if they are
// at capacity.
func (s *Store) Alloc() (uint32, error) {
	n := uint32(len(s.count))
	if n == MaxRows {
		return 0, newError(CapacityExceeded, "acgtrie.Store.Alloc", "row capacity exhausted (2^32-1 rows)")
	}
	if len(s.count) == cap(s.count) {
		if err := s.grow(s.growChunk()); err != nil {
			return 0, err
		}
	}
	s.a = append(s.a, 0)
	s.c = append(s.c, 0)
	s.g = append(s.g, 0)
	s.t = append(s.t, 0)
	s.count = append(s.count, 0)
	s.seq = append(s.seq, int64(emptySeq))
	return n, nil
}

func (s *Store) growChunk() int {
	if s.GrowChunk <= 0 {
		return DefaultGrowChunk
	}
	return s.GrowChunk
}

// grow reallocates each of the six columns with additional rows of spare
// capacity, copying one column at a time so peak extra memory is bounded
// by a single column's worth of the new capacity rather than the whole
// row's.
func (s *Store) grow(additional int) error {
	newCap := cap(s.count) + additional
	if newCap < 0 || uint64(newCap) > uint64(MaxRows) {
		newCap = int(MaxRows)
	}
	if newCap <= cap(s.count) {
		return newError(CapacityExceeded, "acgtrie.Store.grow", "cannot grow store further")
	}
	s.a = growColumn(s.a, newCap)
	s.c = growColumn(s.c, newCap)
	s.g = growColumn(s.g, newCap)
	s.t = growColumn(s.t, newCap)
	s.count = growColumn(s.count, newCap)
	s.seq = growSeqColumn(s.seq, newCap)
	return nil
}

func growColumn(old []uint32, newCap int) []uint32 {
	next := make([]uint32, len(old), newCap)
	copy(next, old)
	return next
}

func growSeqColumn(old []int64, newCap int) []int64 {
	next := make([]int64, len(old), newCap)
	copy(next, old)
	return next
}
