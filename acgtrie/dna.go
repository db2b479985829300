package acgtrie

import (
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

// ParseDNA converts an ASCII DNA string into up2bit.Base values, the form
// every insertion and lookup function in this package expects. It is the
// boundary where InvalidBase is raised: non-ACGT bytes are rejected
// outright rather than silently masked into one of the four bases (see
// ParseDNALenient).
func ParseDNA(s []byte) ([]up2bit.Base, error) {
	bases := make([]up2bit.Base, len(s))
	for i, c := range s {
		b, err := up2bit.ParseBase(c)
		if err != nil {
			return nil, newError(InvalidBase, "acgtrie.ParseDNA", err)
		}
		bases[i] = b
	}
	return bases, nil
}

// ParseDNALenient converts an ASCII DNA string into up2bit.Base values
// using the original implementation's lenient addRowWalk masking
// (ord(char)>>1 & 3), which maps any byte into {A,C,T,G} without
// rejecting malformed input. Opt in explicitly; ParseDNA is the default
// boundary behavior.
func ParseDNALenient(s []byte) []up2bit.Base {
	bases := make([]up2bit.Base, len(s))
	for i, c := range s {
		bases[i] = up2bit.MaskBase(c)
	}
	return bases
}
