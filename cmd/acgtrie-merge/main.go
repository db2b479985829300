// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
acgtrie-merge combines multiple trie files built from disjoint slices of
the same input (for example, one per acgtrie-build -prefix-bits shard, or
one per input file of a batch) into a single trie, by replaying every
source trie's rows into one store.
*/

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/serialize"
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

var outputPath = flag.String("out", "", "Output merged trie path (required)")

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] trie1 trie2 ...\n", os.Args[0])
	flag.PrintDefaults()
}

// replayRow visits every row under row i of src (where prefix is the
// up2bit bases consumed getting there) and reinserts into merged exactly
// the fragments that originally terminated at each row — not the
// pass-through total stored in Row.Count, which also includes fragments
// that continued into a child. A row's own terminal count is its count
// minus the sum of its children's counts, since every fragment that
// continues past a row also incremented that row's count (see the
// acgtrie insertion algorithm's Case C).
func replayRow(src *acgtrie.Store, merged *acgtrie.Store, i uint32, prefix []up2bit.Base) error {
	r := src.Get(i)
	full := append(append([]up2bit.Base(nil), prefix...), up2bit.Decode(r.Seq)...)

	childTotal := uint32(0)
	for _, child := range r.Child {
		if child != 0 {
			childTotal += src.Get(child).Count
		}
	}
	terminal := r.Count - childTotal
	if i != acgtrie.Root && terminal > 0 {
		if err := merged.AddSubsequence(full, 0, len(full), terminal); err != nil {
			return err
		}
	}

	for baseValue, child := range r.Child {
		if child == 0 {
			continue
		}
		childPrefix := append(append([]up2bit.Base(nil), full...), up2bit.Base(baseValue))
		if err := replayRow(src, merged, child, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *outputPath == "" {
		log.Fatalf("-out is required")
	}
	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatalf("at least one input trie path is required")
	}

	ctx := vcontext.Background()
	stores := make([]*acgtrie.Store, len(paths))
	headers := make([]serialize.Header, len(paths))
	if err := traverse.Each(len(paths), func(i int) error {
		s, h, err := serialize.ReadTrie(ctx, paths[i])
		if err != nil {
			return errors.E(err, "reading", paths[i])
		}
		stores[i] = s
		headers[i] = h
		return nil
	}); err != nil {
		log.Panicf("%v", err)
	}

	t0 := time.Now()
	merged := acgtrie.New(0)
	var fragments uint64
	var totalLen float64
	for _, h := range headers {
		fragments += h.Fragments
		totalLen += h.FragmentAvgLen * float64(h.Fragments)
	}
	for i, s := range stores {
		if err := replayRow(s, merged, acgtrie.Root, nil); err != nil {
			log.Panicf("merging %s: %v", paths[i], err)
		}
	}

	avgLen := 0.0
	if fragments > 0 {
		avgLen = totalLen / float64(fragments)
	}
	h := serialize.Header{
		Fragments:        fragments,
		FragmentAvgLen:   avgLen,
		AnalysisTime:     t0.UTC().Format(time.RFC3339),
		AnalysisDuration: time.Since(t0).Seconds(),
	}
	if err := serialize.WriteTrie(ctx, *outputPath, merged, h); err != nil {
		log.Panicf("writing %s: %v", *outputPath, err)
	}
	log.Debug.Printf("exiting")
}
