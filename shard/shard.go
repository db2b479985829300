// Package shard partitions fragment ingestion across a fixed set of
// tries keyed by a prefix of each sequence, so a build command can
// insert into 4^PrefixLen independent Stores concurrently instead of
// serializing every insertion through one Store. Each shard's Store is
// built and written on its own goroutine via github.com/grailbio/base/traverse
// (see DESIGN.md for why this trades the original's one-process-per-shard
// isolation for Go's cheaper in-process concurrency).
package shard

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/serialize"
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

// Set holds one acgtrie.Store per shard, partitioned by the first
// PrefixLen bases of each inserted sequence.
type Set struct {
	PrefixLen int
	Stores    []*acgtrie.Store

	initialCapacity int
}

// NewSet creates a Set with 4^prefixLen shards (one per possible prefix
// of length prefixLen), each an empty acgtrie.Store.
func NewSet(prefixLen int, initialCapacity int) (*Set, error) {
	if prefixLen < 0 {
		return nil, errors.E("shard.NewSet: prefixLen must be >= 0", prefixLen)
	}
	n := 1
	for i := 0; i < prefixLen; i++ {
		n *= 4
	}
	stores := make([]*acgtrie.Store, n)
	for i := range stores {
		stores[i] = acgtrie.New(initialCapacity)
	}
	return &Set{PrefixLen: prefixLen, Stores: stores, initialCapacity: initialCapacity}, nil
}

// indexOf computes the shard index for bases' first PrefixLen bases.
// Sequences shorter than PrefixLen always route to shard 0; a trie this
// small gains nothing from sharding anyway.
func (set *Set) indexOf(bases []up2bit.Base) int {
	if len(bases) < set.PrefixLen {
		return 0
	}
	idx := 0
	for i := 0; i < set.PrefixLen; i++ {
		idx = idx*4 + int(bases[i]&3)
	}
	return idx
}

// Add routes bases into the shard selected by its prefix and inserts it
// with AddSubsequence(bases, 0, len(bases), count).
func (set *Set) Add(bases []up2bit.Base, count uint32) error {
	i := set.indexOf(bases)
	return set.Stores[i].AddSubsequence(bases, 0, len(bases), count)
}

// AddSequence routes bases the same way Add does, but inserts every
// suffix of bases into that one shard (matching acgtrie.Store.AddSequence).
func (set *Set) AddSequence(bases []up2bit.Base, count uint32) error {
	i := set.indexOf(bases)
	return set.Stores[i].AddSequence(bases, count)
}

// Lookup checks the shard bases' prefix would route to; it does not
// search every shard, since a given sequence is only ever inserted into
// one.
func (set *Set) Lookup(bases []up2bit.Base) uint32 {
	return set.Stores[set.indexOf(bases)].Lookup(bases)
}

// BuildParallel runs build once per shard index concurrently, bounded by
// traverse's own GOMAXPROCS-sized pool, and returns the first error
// encountered (others are still allowed to finish). build must be safe
// to call concurrently with
// distinct shard indices; typical implementations read one input source
// per shard and call set.Stores[i].AddSequence directly, bypassing
// Add/AddSequence's own routing.
func BuildParallel(set *Set, build func(shardIndex int, s *acgtrie.Store) error) error {
	return traverse.Each(len(set.Stores), func(i int) error {
		return build(i, set.Stores[i])
	})
}

// WriteAll serializes every shard to its own path, path=pathFn(shardIndex),
// in parallel, each carrying a copy of h with Rows overwritten per-shard
// by serialize.WriteTrie.
func WriteAll(ctx context.Context, set *Set, h serialize.Header, pathFn func(shardIndex int) string) error {
	return traverse.Each(len(set.Stores), func(i int) error {
		return serialize.WriteTrie(ctx, pathFn(i), set.Stores[i], h)
	})
}
