// Package preprocess turns the external input formats accepted by the
// build command — bare DNA lines, CSV, and FASTA — into the sequence of
// up2bit.Base slices that acgtrie.Store.AddSequence and AddSubsequence
// consume.
package preprocess

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
	"github.com/JohnLonginotto/ACGTrie/encoding/fasta"
	"github.com/JohnLonginotto/ACGTrie/up2bit"
)

// Fragment is one input sequence paired with the number of times it
// should be counted, as produced by every Scan* function in this package.
type Fragment struct {
	Bases []up2bit.Base
	Count uint32
}

// Sink receives fragments as they're parsed, so a caller can feed them
// straight into a acgtrie.Store (or a shard.Set) without buffering the
// whole input in memory.
type Sink func(Fragment) error

// ScanLines reads one bare DNA sequence per line from r and calls sink
// once per line with Count 1. Blank lines are skipped.
func ScanLines(r io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		bases, err := acgtrie.ParseDNA([]byte(line))
		if err != nil {
			return err
		}
		if err := sink(Fragment{Bases: bases, Count: 1}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.E(err, "preprocess.ScanLines")
	}
	return nil
}

// ScanCSV reads "sequence,count" lines from r, one fragment per line. A
// line with no comma is treated as a bare sequence with count 1.
func ScanCSV(r io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seqField, countField, hasCount := strings.Cut(line, ",")
		count := uint32(1)
		if hasCount {
			n, err := strconv.ParseUint(strings.TrimSpace(countField), 10, 32)
			if err != nil {
				return errors.E(err, "preprocess.ScanCSV: malformed count", line)
			}
			count = uint32(n)
		}
		bases, err := acgtrie.ParseDNA([]byte(strings.TrimSpace(seqField)))
		if err != nil {
			return err
		}
		if err := sink(Fragment{Bases: bases, Count: count}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.E(err, "preprocess.ScanCSV")
	}
	return nil
}

// ScanFASTA parses FASTA-formatted data from r, via
// github.com/JohnLonginotto/ACGTrie/encoding/fasta, and calls sink once per
// named sequence with Count 1. Sequences are cleaned with
// biosimd.CleanASCIISeqInplace before parsing, matching the way the rest
// of this codebase normalizes raw read data.
func ScanFASTA(r io.Reader, sink Sink) error {
	f, err := fasta.New(r, fasta.OptClean)
	if err != nil {
		return errors.E(err, "preprocess.ScanFASTA")
	}
	for _, name := range f.SeqNames() {
		n, err := f.Len(name)
		if err != nil {
			return errors.E(err, "preprocess.ScanFASTA: length", name)
		}
		seq, err := f.Get(name, 0, n)
		if err != nil {
			return errors.E(err, "preprocess.ScanFASTA: get", name)
		}
		bases, err := acgtrie.ParseDNA([]byte(seq))
		if err != nil {
			return err
		}
		if err := sink(Fragment{Bases: bases, Count: 1}); err != nil {
			return err
		}
	}
	return nil
}

// EnumerateSubstrings calls sink once per contiguous substring of bases
// (all O(n^2) start,end pairs), each with Count 1 — the -fragment build
// mode, which counts every substring of an input read rather than only
// its suffixes. Substrings longer than up2bit.MaxBases are passed through
// unsplit; acgtrie.Store.AddSubsequence chain-appends them internally.
func EnumerateSubstrings(bases []up2bit.Base, sink Sink) error {
	for start := 0; start < len(bases); start++ {
		for end := start + 1; end <= len(bases); end++ {
			if err := sink(Fragment{Bases: bases[start:end], Count: 1}); err != nil {
				return err
			}
		}
	}
	return nil
}
