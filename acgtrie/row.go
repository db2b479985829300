// Package acgtrie implements the ACGTrie: an in-memory, path-compressed
// radix trie over DNA subsequences, with each node ("row") represented as
// a fixed-width entry in six parallel columnar arrays. Storing columns
// separately rather than one array of row structs keeps each column densely
// packed and cheap to grow independently. This file defines the row-level
// data model.
package acgtrie

import (
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

// Root is the reserved index of the trie's root row. Row 0 always exists,
// is never a child of any row, and represents the empty prefix.
const Root uint32 = 0

// emptySeq is the up2bit encoding of the empty base sequence.
const emptySeq uint64 = 1

// Row is a value-type view of one trie node. It is a snapshot, not a
// pointer into the store's columns: mutate via Store.Set.
type Row struct {
	Count uint32
	// Child holds the four child row indices, indexed by up2bit.Base
	// value (A=0, C=1, T=2, G=3). 0 means "no child".
	Child [4]uint32
	// Seq is the up2bit-encoded edge label leading into this row from
	// its parent's child-transition base.
	Seq uint64
}

// ChildAt returns the child row index for base b.
func (r Row) ChildAt(b up2bit.Base) uint32 {
	return r.Child[b&3]
}

// WithChildAt returns a copy of r with the child for base b set to idx.
func (r Row) WithChildAt(b up2bit.Base, idx uint32) Row {
	r.Child[b&3] = idx
	return r
}

// IsLeaf reports whether r has no children.
func (r Row) IsLeaf() bool {
	return r.Child[0] == 0 && r.Child[1] == 0 && r.Child[2] == 0 && r.Child[3] == 0
}

func newRootRow() Row {
	return Row{Count: 0, Seq: emptySeq}
}
