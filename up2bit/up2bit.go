// Package up2bit implements the up2bit encoding: a variable-length,
// 2-bit-per-base packing of a short DNA sequence (0 to 31 bases) into a
// single unsigned 64-bit integer, terminated by a "01" marker pair.
//
// Bases are numbered A=0, C=1, T=2, G=3. The encoded integer is read
// least-significant-bit first: base 0 occupies bits 0-1, base 1 occupies
// bits 2-3, and so on, followed immediately by the 2-bit terminator value
// 1. The empty sequence encodes to the integer 1.
package up2bit

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Base is a single DNA base, encoded as described in the package doc.
type Base uint8

// The four bases, in up2bit bit-pattern order.
const (
	A Base = 0
	C Base = 1
	T Base = 2
	G Base = 3
)

// MaxBases is the largest number of bases a single up2bit value can hold.
const MaxBases = 31

// letters maps a Base to its ASCII representation.
var letters = [4]byte{'A', 'C', 'T', 'G'}

// String returns the single-letter ASCII representation of b.
func (b Base) String() string {
	return string(letters[b&3])
}

// ParseBase converts an ASCII DNA letter to a Base. Only 'A', 'C', 'G', and
// 'T' (either case) are accepted; anything else returns an error
// (acgtrie.ParseDNA reports it as InvalidBase).
func ParseBase(c byte) (Base, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	}
	return 0, errors.E("up2bit.ParseBase", fmt.Sprintf("invalid base byte %q", c))
}

// MaskBase mirrors the original ACGTrie source's lenient decoding
// (ord(char)>>1 & 3), which maps any byte into {A,C,T,G} without
// rejecting malformed input. It is used only by callers that opt into
// lenient parsing (see acgtrie.ParseDNALenient).
func MaskBase(c byte) Base {
	return Base((c >> 1) & 3)
}

// Encode packs bases into an up2bit value. len(bases) must be <= MaxBases,
// or Encode returns a "sequence too long" error (an *errors.Error with no
// kind set; acgtrie wraps it as SequenceTooLong).
func Encode(bases []Base) (uint64, error) {
	if len(bases) > MaxBases {
		return 0, errors.E("up2bit.Encode", fmt.Sprintf("sequence too long: %d bases (max %d)", len(bases), MaxBases))
	}
	var v uint64
	shift := uint(0)
	for _, b := range bases {
		v |= uint64(b&3) << shift
		shift += 2
	}
	v |= uint64(1) << shift // terminator
	return v, nil
}

// Length returns the number of bases packed into v.
func Length(v uint64) int {
	if v == 0 {
		return 0
	}
	return (bitLen(v) - 1) / 2
}

func bitLen(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// BaseAt returns the base at position i (0-indexed) of the sequence
// encoded in v. Behavior is undefined if i >= Length(v).
func BaseAt(v uint64, i int) Base {
	return Base((v >> uint(2*i)) & 3)
}

// Decode unpacks v into its sequence of bases. Behavior is undefined if v
// lacks a valid up2bit terminator (only produced by Encode or by the trie
// inserter's internal manipulation of edge labels).
func Decode(v uint64) []Base {
	n := Length(v)
	bases := make([]Base, n)
	for i := 0; i < n; i++ {
		bases[i] = BaseAt(v, i)
	}
	return bases
}

// Prefix returns the up2bit encoding of the first k bases of v.
// Requires k <= Length(v).
func Prefix(v uint64, k int) uint64 {
	mask := uint64(1)<<uint(2*k) - 1
	return (v & mask) | (uint64(1) << uint(2*k))
}

// Suffix returns the up2bit encoding of bases [k, Length(v)) of v.
// Requires k <= Length(v).
func Suffix(v uint64, k int) uint64 {
	return v >> uint(2*k)
}

// FirstMismatch compares the sequence encoded in edge against
// bases[start:end], returning the number of leading bases that match and
// which side (if either) was exhausted first. It performs no allocation.
func FirstMismatch(edge uint64, bases []Base, start, end int) (matched int, edgeExhausted, inputExhausted bool) {
	edgeLen := Length(edge)
	inputLen := end - start
	n := edgeLen
	if inputLen < n {
		n = inputLen
	}
	i := 0
	for ; i < n; i++ {
		if BaseAt(edge, i) != bases[start+i]&3 {
			break
		}
	}
	return i, i == edgeLen, i == inputLen
}
