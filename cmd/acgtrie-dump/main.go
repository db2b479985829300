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
acgtrie-dump prints a trie file's header and rows, or looks up a single
sequence's count, for inspection and debugging.
*/

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/serialize"
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

var (
	lookup   = flag.String("lookup", "", "Print only this sequence's count instead of dumping every row")
	rowLimit = flag.Int("rows", 0, "Maximum number of rows to print; 0 prints all")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] triepath\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one trie path is required")
	}
	path := flag.Arg(0)

	ctx := vcontext.Background()
	s, h, err := serialize.ReadTrie(ctx, path)
	if err != nil {
		log.Panicf("reading %s: %v", path, err)
	}

	if *lookup != "" {
		bases, err := acgtrie.ParseDNA([]byte(*lookup))
		if err != nil {
			log.Panicf("%v", err)
		}
		idx := s.Lookup(bases)
		if idx == acgtrie.NotFound {
			fmt.Printf("%s\tnotfound\n", *lookup)
			return
		}
		fmt.Printf("%s\t%d\n", *lookup, s.Get(idx).Count)
		return
	}

	enc, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		log.Panicf("%v", err)
	}
	fmt.Println(string(enc))

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush() // nolint: errcheck
	n := s.Len()
	if *rowLimit > 0 && uint32(*rowLimit) < n {
		n = uint32(*rowLimit)
	}
	fmt.Fprintln(w, "row\tcount\tA\tC\tG\tT\tseq")
	for i := uint32(0); i < n; i++ {
		r := s.Get(i)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			i, r.Count, r.Child[up2bit.A], r.Child[up2bit.C], r.Child[up2bit.G], r.Child[up2bit.T],
			decodeSeq(r.Seq))
	}
}

func decodeSeq(v uint64) string {
	bases := up2bit.Decode(v)
	out := make([]byte, len(bases))
	for i, b := range bases {
		out[i] = b.String()[0]
	}
	return string(out)
}
