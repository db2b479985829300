package acgtrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
)

// TestWalkMatchesSubsequence establishes, for the spec's worked scenarios,
// that AddSubsequenceWalk produces the same row-for-row counts as
// AddSubsequence; see the AddSubsequenceWalk doc comment and DESIGN.md for
// why the two entry points are expected to agree.
func TestWalkMatchesSubsequence(t *testing.T) {
	inputs := []string{"ACG", "ACGT", "AC", "A", "ACG"}

	plain := acgtrie.New(8)
	walked := acgtrie.New(8)
	for _, in := range inputs {
		bases := dna(t, in)
		require.NoError(t, plain.AddSubsequence(bases, 0, len(bases), 1))
		require.NoError(t, walked.AddSubsequenceWalk(bases, 0, len(bases), 1))
	}

	require.Equal(t, plain.Len(), walked.Len())
	for i := uint32(0); i < plain.Len(); i++ {
		assert.Equal(t, getRow(t, plain, i), getRow(t, walked, i), "row %d", i)
	}
}

func TestParseDNALenientMasksAnyByte(t *testing.T) {
	bases := acgtrie.ParseDNALenient([]byte("ACGTN"))
	require.Len(t, bases, 5)
}
