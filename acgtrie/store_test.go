package acgtrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

func dna(t *testing.T, s string) []up2bit.Base {
	t.Helper()
	bases, err := acgtrie.ParseDNA([]byte(s))
	require.NoError(t, err)
	return bases
}

// row is a test-only flattened view, in the table-column order the spec's
// worked scenarios use: count, A, C, G, T, seq.
type row struct {
	count      uint32
	a, c, g, t uint32
	seq        string
}

func getRow(t *testing.T, s *acgtrie.Store, i uint32) row {
	t.Helper()
	r := s.Get(i)
	return row{
		count: r.Count,
		a:     r.Child[up2bit.A],
		c:     r.Child[up2bit.C],
		g:     r.Child[up2bit.G],
		t:     r.Child[up2bit.T],
		seq:   basesToString(up2bit.Decode(r.Seq)),
	}
}

func basesToString(bases []up2bit.Base) string {
	out := make([]byte, len(bases))
	for i, b := range bases {
		out[i] = b.String()[0]
	}
	return string(out)
}

func TestEmptyTrie(t *testing.T) {
	s := acgtrie.New(8)
	require.EqualValues(t, 1, s.Len())
	assert.Equal(t, row{}, getRow(t, s, 0))
}

func TestScenario2SingleInsert(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))

	require.EqualValues(t, 2, s.Len())
	assert.Equal(t, row{count: 1, a: 1, seq: ""}, getRow(t, s, 0))
	assert.Equal(t, row{count: 1, seq: "CG"}, getRow(t, s, 1))
}

func TestScenario3DuplicateInsert(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))

	require.EqualValues(t, 2, s.Len())
	assert.Equal(t, row{count: 2, a: 1, seq: ""}, getRow(t, s, 0))
	assert.Equal(t, row{count: 2, seq: "CG"}, getRow(t, s, 1))
}

func TestScenario4ExtendWithSuffix(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))
	require.NoError(t, s.AddSubsequence(dna(t, "ACGT"), 0, 4, 1))

	require.EqualValues(t, 3, s.Len())
	assert.Equal(t, row{count: 2, a: 1, seq: ""}, getRow(t, s, 0))
	assert.Equal(t, row{count: 2, t: 2, seq: "CG"}, getRow(t, s, 1))
	assert.Equal(t, row{count: 1, seq: ""}, getRow(t, s, 2))
}

func TestScenario5SplitOnShorterPrefix(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))
	require.NoError(t, s.AddSubsequence(dna(t, "AC"), 0, 2, 1))

	require.EqualValues(t, 3, s.Len())
	assert.Equal(t, row{count: 2, a: 1, seq: ""}, getRow(t, s, 0))
	assert.Equal(t, row{count: 2, g: 2, seq: "C"}, getRow(t, s, 1))
	assert.Equal(t, row{count: 1, seq: ""}, getRow(t, s, 2))
}

func TestScenario6SplitOnSingleBasePrefix(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSubsequence(dna(t, "ACG"), 0, 3, 1))
	require.NoError(t, s.AddSubsequence(dna(t, "A"), 0, 1, 1))

	require.EqualValues(t, 3, s.Len())
	assert.Equal(t, row{count: 2, a: 1, seq: ""}, getRow(t, s, 0))
	assert.Equal(t, row{count: 2, c: 2, seq: ""}, getRow(t, s, 1))
	assert.Equal(t, row{count: 1, seq: "G"}, getRow(t, s, 2))
}

func TestScenario7AddSequenceSuffixes(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSequence(dna(t, "ACG"), 1))

	for _, q := range []string{"A", "C", "G", "AC", "CG"} {
		idx := s.Lookup(dna(t, q))
		require.NotEqual(t, acgtrie.NotFound, idx, "lookup(%q)", q)
		assert.EqualValues(t, 1, s.Get(idx).Count, "lookup(%q).count", q)
	}
	assert.Equal(t, acgtrie.NotFound, s.Lookup(dna(t, "AG")))
}

func TestRootNeverSplits(t *testing.T) {
	s := acgtrie.New(8)
	for _, frag := range []string{"ACGT", "A", "AC", "TTTT", "GGGG"} {
		require.NoError(t, s.AddSequence(dna(t, frag), 1))
	}
	assert.EqualValues(t, up2bit.Length(s.Seq(acgtrie.Root)), 0)
}

func TestChildBounds(t *testing.T) {
	s := acgtrie.New(8)
	require.NoError(t, s.AddSequence(dna(t, "ACGTACGTACGTACGTACGTACGTACGTACGTACGT"), 1))

	n := s.Len()
	for i := uint32(0); i < n; i++ {
		r := s.Get(i)
		for _, c := range r.Child {
			assert.Less(t, c, n)
			assert.NotEqual(t, i, c)
		}
	}
}

func TestGrowChunkExpandsCapacity(t *testing.T) {
	s := acgtrie.New(1)
	s.GrowChunk = 4
	for i := 0; i < 20; i++ {
		_, err := s.Alloc()
		require.NoError(t, err)
	}
	assert.EqualValues(t, 21, s.Len())
}
