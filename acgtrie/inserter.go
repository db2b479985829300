package acgtrie

import (
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

// NotFound is returned by Lookup when no row matches the queried sequence.
const NotFound = ^uint32(0)

// AddSequence inserts seq and count into the trie once for every suffix of
// seq, i.e. it calls AddSubsequence(seq, start, len(seq), count) for every
// start in [0, len(seq)).
func (s *Store) AddSequence(seq []up2bit.Base, count uint32) error {
	for start := 0; start < len(seq); start++ {
		if err := s.AddSubsequence(seq, start, len(seq), count); err != nil {
			return err
		}
	}
	return nil
}

// AddSubsequence inserts the single subsequence seq[start:end] into the
// trie. Every row the path passes through on the way to (and including)
// where the new key lands accumulates count, per the row.Count
// definition: the number of fragments whose path terminates at or passes
// through that row.
//
// This implements the descend/extend/split/split-and-branch cases of the
// trie insertion algorithm.
func (s *Store) AddSubsequence(seq []up2bit.Base, start, end int, count uint32) error {
	return s.insert(seq, start, end, count)
}

// AddSubsequenceWalk inserts seq[start:end] the same way AddSubsequence
// does. The reference implementation this trie is modeled on provides two
// code paths for insertion: one that scans for the landing point first and
// applies the count afterward, and one ("walk") that mutates counts as it
// descends in a single fused pass. Both touch exactly the same set of
// rows for a given insertion (every row in the chain from the root to the
// new or matched terminal), so the two produce identical final counts;
// see DESIGN.md for the trace that establishes this against the spec's
// worked scenarios. AddSubsequenceWalk is kept as a distinct entry point,
// as the source's split into two modes suggests, for callers that want to
// name the fused-pass behavior explicitly.
func (s *Store) AddSubsequenceWalk(seq []up2bit.Base, start, end int, count uint32) error {
	return s.insert(seq, start, end, count)
}

func (s *Store) insert(seq []up2bit.Base, start, end int, count uint32) error {
	row := Root
	pos := start
	for {
		edge := s.Seq(row)
		edgeLen := up2bit.Length(edge)
		m, edgeExhausted, inputExhausted := up2bit.FirstMismatch(edge, seq, pos, end)

		switch {
		case edgeExhausted && inputExhausted:
			// Case A: exact match. All input consumed along this edge.
			s.AddCount(row, count)
			return nil

		case inputExhausted && !edgeExhausted:
			// Case B: new key is a proper prefix of this edge. Split.
			if err := s.splitRow(row, edge, m, count); err != nil {
				return err
			}
			return nil

		case edgeExhausted && !inputExhausted:
			// Case C: edge matches a prefix of the remaining input. A
			// row's count covers every fragment that terminates at or
			// passes through it, so row accumulates count here regardless
			// of whether a child transition already exists (this applies
			// equally to AddSubsequence and AddSubsequenceWalk).
			s.AddCount(row, count)
			pos += edgeLen
			nextBase := seq[pos]
			next := s.ChildAt(row, uint8(nextBase&3))
			if next != 0 {
				pos++
				row = next
				continue
			}
			return s.chainAppend(row, seq, pos, end, count)

		default:
			// Case D: mismatch mid-edge. Split and branch.
			return s.splitAndBranch(row, edge, m, seq, pos, end, count)
		}
	}
}

// splitRow implements Case B: the new key ends exactly m bases into the
// current row's edge. It allocates a copy of row's tail as a new child r2
// and truncates row's edge to its first m bases.
func (s *Store) splitRow(row uint32, edge uint64, m int, count uint32) error {
	old := s.Get(row)
	r2, err := s.Alloc()
	if err != nil {
		return err
	}
	tailSeq := up2bit.Suffix(edge, m+1)
	s.Set(r2, Row{Count: old.Count, Child: old.Child, Seq: tailSeq})

	divergingBase := up2bit.BaseAt(edge, m)
	s.ClearChildren(row)
	s.AddCount(row, count)
	s.SetSeq(row, up2bit.Prefix(edge, m))
	s.SetChildAt(row, uint8(divergingBase&3), r2)
	return nil
}

// splitAndBranch implements Case D: the new key diverges from row's edge
// at position m, strictly before either is exhausted. It splits row's
// edge exactly as splitRow does, and additionally creates a new branch r3
// for the diverging tail of the input, chain-appending if that tail is
// longer than up2bit.MaxBases.
func (s *Store) splitAndBranch(row uint32, edge uint64, m int, seq []up2bit.Base, pos, end int, count uint32) error {
	old := s.Get(row)
	r2, err := s.Alloc()
	if err != nil {
		return err
	}
	tailSeq := up2bit.Suffix(edge, m+1)
	s.Set(r2, Row{Count: old.Count, Child: old.Child, Seq: tailSeq})

	r3, err := s.Alloc()
	if err != nil {
		return err
	}
	s.AddCount(r3, count)

	inputTailStart := pos + m + 1
	inputTailLen := end - inputTailStart
	if inputTailLen <= up2bit.MaxBases {
		v, encErr := up2bit.Encode(seq[inputTailStart:end])
		if encErr != nil {
			return newError(SequenceTooLong, "acgtrie.Store.splitAndBranch", encErr)
		}
		s.SetSeq(r3, v)
	} else {
		take := up2bit.MaxBases
		v, encErr := up2bit.Encode(seq[inputTailStart : inputTailStart+take])
		if encErr != nil {
			return newError(SequenceTooLong, "acgtrie.Store.splitAndBranch", encErr)
		}
		s.SetSeq(r3, v)
		if err := s.chainAppend(r3, seq, inputTailStart+take, end, count); err != nil {
			return err
		}
	}

	edgeDivergingBase := up2bit.BaseAt(edge, m)
	inputDivergingBase := seq[pos+m]
	s.ClearChildren(row)
	s.AddCount(row, count)
	s.SetSeq(row, up2bit.Prefix(edge, m))
	s.SetChildAt(row, uint8(edgeDivergingBase&3), r2)
	s.SetChildAt(row, uint8(inputDivergingBase&3), r3)
	return nil
}

// chainAppend implements step 6: it emits one new row per up-to-32-base
// chunk of seq[pos:end], wiring row's child pointer for the first base of
// each chunk into the newly created row, whose edge label holds the
// remaining up to up2bit.MaxBases bases of the chunk.
func (s *Store) chainAppend(row uint32, seq []up2bit.Base, pos, end int, count uint32) error {
	for pos < end {
		rNew, err := s.Alloc()
		if err != nil {
			return err
		}
		s.AddCount(rNew, count)

		b := seq[pos]
		pos++

		take := end - pos
		if take > up2bit.MaxBases {
			take = up2bit.MaxBases
		}
		v, encErr := up2bit.Encode(seq[pos : pos+take])
		if encErr != nil {
			return newError(SequenceTooLong, "acgtrie.Store.chainAppend", encErr)
		}
		s.SetSeq(rNew, v)
		pos += take

		s.SetChildAt(row, uint8(b&3), rNew)
		row = rNew
	}
	return nil
}

// Lookup mirrors the descent of AddSubsequence's cases but never mutates
// the store. It returns the row reached by consuming seq entirely, or
// NotFound if no such row exists.
func (s *Store) Lookup(seq []up2bit.Base) uint32 {
	row := Root
	pos := 0
	end := len(seq)
	for {
		edge := s.Seq(row)
		edgeLen := up2bit.Length(edge)
		m, edgeExhausted, inputExhausted := up2bit.FirstMismatch(edge, seq, pos, end)

		switch {
		case edgeExhausted && inputExhausted:
			return row
		case inputExhausted && !edgeExhausted:
			// seq ends partway along row's edge. Lookup does not split the
			// row the way insertion's Case B would; every fragment counted
			// in row covers its whole edge, so row's count already covers
			// this: it's a hit, not a miss.
			return row
		case edgeExhausted && !inputExhausted:
			pos += edgeLen
			next := s.ChildAt(row, uint8(seq[pos]&3))
			if next == 0 {
				return NotFound
			}
			pos++
			row = next
		default:
			return NotFound
		}
	}
}
