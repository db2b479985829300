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
acgtrie-build reads DNA fragments from stdin or an input file and builds
a column-stored ACGTrie recording, for every inserted subsequence, how
many times it occurred across the input.
*/

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/preprocess"
	"github.com/JohnLonginotto/ACGTrie/serialize"
	"github.com/JohnLonginotto/ACGTrie/shard"
)

var (
	inputPath   = flag.String("in", "", "Input path; '-' or unset reads stdin")
	inputFormat = flag.String("format", "lines", "Input format: 'lines', 'csv', or 'fasta'")
	outputPath  = flag.String("out", "", "Output trie path (required). With -prefix-bits > 0, shard files are written as <out>.shard<N>")
	fragment    = flag.Bool("fragment", false, "Count every substring of each input sequence, not only its suffixes")
	prefixBits  = flag.Int("prefix-bits", 0, "log4 of the number of shards to partition rows across; 0 disables sharding")
	initialRows = flag.Int("initial-rows", 0, "Initial row capacity per store; 0 uses acgtrie's default")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

func openInput() *os.File {
	if *inputPath == "" || *inputPath == "-" {
		return os.Stdin
	}
	in, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("opening %s: %v", *inputPath, err)
	}
	return in
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *outputPath == "" {
		log.Fatalf("-out is required")
	}

	ctx := vcontext.Background()
	t0 := time.Now()

	var fragments uint64
	var totalLen uint64

	var err error
	if *prefixBits > 0 {
		var set *shard.Set
		set, err = shard.NewSet(*prefixBits, *initialRows)
		if err != nil {
			log.Fatalf("creating shard set: %v", err)
		}
		insert := func(f preprocess.Fragment) error {
			fragments++
			totalLen += uint64(len(f.Bases))
			if *fragment {
				return preprocess.EnumerateSubstrings(f.Bases, func(sub preprocess.Fragment) error {
					return set.Add(sub.Bases, sub.Count)
				})
			}
			return set.AddSequence(f.Bases, f.Count)
		}
		err = scanInput(insert)
		if err != nil {
			log.Panicf("building trie: %v", err)
		}
		h := headerFor(fragments, totalLen, t0)
		if err := shard.WriteAll(ctx, set, h, func(i int) string {
			return *outputPath + ".shard" + strconv.Itoa(i)
		}); err != nil {
			log.Panicf("writing shards for %s: %v", *outputPath, err)
		}
		log.Debug.Printf("exiting")
		return
	}

	store := acgtrie.New(*initialRows)
	insert := func(f preprocess.Fragment) error {
		fragments++
		totalLen += uint64(len(f.Bases))
		if *fragment {
			return preprocess.EnumerateSubstrings(f.Bases, func(sub preprocess.Fragment) error {
				return store.AddSubsequence(sub.Bases, 0, len(sub.Bases), sub.Count)
			})
		}
		return store.AddSequence(f.Bases, f.Count)
	}
	if err = scanInput(insert); err != nil {
		log.Panicf("building trie: %v", err)
	}

	h := headerFor(fragments, totalLen, t0)
	if err := serialize.WriteTrie(ctx, *outputPath, store, h); err != nil {
		log.Panicf("writing %s: %v", *outputPath, err)
	}
	log.Debug.Printf("exiting")
}

func headerFor(fragments, totalLen uint64, t0 time.Time) serialize.Header {
	avgLen := 0.0
	if fragments > 0 {
		avgLen = float64(totalLen) / float64(fragments)
	}
	return serialize.Header{
		Fragments:        fragments,
		FragmentAvgLen:   avgLen,
		AnalysisTime:     t0.UTC().Format(time.RFC3339),
		AnalysisDuration: time.Since(t0).Seconds(),
	}
}

func scanInput(insert preprocess.Sink) error {
	in := openInput()
	if in != os.Stdin {
		defer in.Close() // nolint: errcheck
	}

	switch *inputFormat {
	case "lines":
		return preprocess.ScanLines(in, insert)
	case "csv":
		return preprocess.ScanCSV(in, insert)
	case "fasta":
		return preprocess.ScanFASTA(in, insert)
	default:
		log.Fatalf("unknown -format %q", *inputFormat)
		return nil
	}
}
