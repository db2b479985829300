package serialize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/serialize"
)

func truncateFile(t *testing.T, src, dst string, n int64) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Less(t, n, int64(len(data)))
	require.NoError(t, os.WriteFile(dst, data[:n], 0o644))
}

func buildStore(t *testing.T, fragments ...string) *acgtrie.Store {
	t.Helper()
	s := acgtrie.New(8)
	for _, f := range fragments {
		bases, err := acgtrie.ParseDNA([]byte(f))
		require.NoError(t, err)
		require.NoError(t, s.AddSequence(bases, 1))
	}
	return s
}

// TestWriteReadRoundTrip checks testable property 6 from the spec this
// package implements: load(save(t)) reconstructs an equivalent trie, row
// for row.
func TestWriteReadRoundTrip(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	want := buildStore(t, "ACGT", "ACG", "TTTT", "GATTACA")
	path := filepath.Join(tmpdir, "trie.bin")

	h := serialize.Header{
		Fragments:      4,
		FragmentAvgLen: 4.5,
		AnalysisTime:   "2026-07-30T00:00:00Z",
	}
	require.NoError(t, serialize.WriteTrie(ctx, path, want, h))

	got, gotHeader, err := serialize.ReadTrie(ctx, path)
	require.NoError(t, err)

	assert.EqualValues(t, 4, gotHeader.Fragments)
	assert.Equal(t, want.Len(), got.Len())
	for i := uint32(0); i < want.Len(); i++ {
		assert.Equal(t, want.Get(i), got.Get(i), "row %d", i)
	}
}

func TestWriteTriePopulatesRowCount(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	s := buildStore(t, "ACGTACGT")
	path := filepath.Join(tmpdir, "trie.bin")
	require.NoError(t, serialize.WriteTrie(ctx, path, s, serialize.Header{}))

	_, h, err := serialize.ReadTrie(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, s.Len(), h.Rows)
}

func TestReadTrieRejectsTruncatedFile(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	s := buildStore(t, "ACGTACGTACGT")
	path := filepath.Join(tmpdir, "trie.bin")
	require.NoError(t, serialize.WriteTrie(ctx, path, s, serialize.Header{}))

	truncated := path + ".trunc"
	truncateFile(t, path, truncated, 150)

	_, _, err := serialize.ReadTrie(ctx, truncated)
	require.Error(t, err)
	assert.True(t, serialize.IsKind(err, serialize.CorruptFile))
}
