// Package fasta parses FASTA-formatted DNA sequences into memory. FASTA
// files consist of a number of named sequences that may be interrupted by
// newlines, e.g.:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// A sequence's name is the text immediately after '>' up to the first
// space; anything after a space is ignored.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/JohnLonginotto/ACGTrie/biosimd"
	"github.com/pkg/errors"
)

const scannerBufferCap = 300 * 1024 * 1024

// Fasta holds a set of named sequences read entirely into memory.
type Fasta struct {
	seqs     map[string]string
	seqNames []string
}

type opts struct {
	clean bool
}

// Opt is an optional argument to New.
type Opt func(*opts)

// OptClean normalizes every sequence with biosimd.CleanASCIISeqInplace as
// it's read: bases are uppercased and anything outside A/C/G/T becomes 'N'.
func OptClean(o *opts) { o.clean = true }

// New reads every sequence out of r into memory.
func New(r io.Reader, userOpts ...Opt) (*Fasta, error) {
	var parsed opts
	for _, o := range userOpts {
		o(&parsed)
	}

	f := &Fasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, scannerBufferCap)
	var name string
	var seq strings.Builder
	flush := func() {
		if name == "" && seq.Len() == 0 {
			return
		}
		f.seqs[name] = seq.String()
		f.seqNames = append(f.seqNames, name)
		seq.Reset()
	}
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			name = strings.SplitN(line[1:], " ", 2)[0]
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "fasta: reading FASTA data")
	}
	flush()

	if parsed.clean {
		for name, s := range f.seqs {
			b := []byte(s)
			biosimd.CleanASCIISeqInplace(b)
			f.seqs[name] = string(b)
		}
	}
	return f, nil
}

// Get returns the half-open range [start, end) of the named sequence.
func (f *Fasta) Get(seqName string, start, end uint64) (string, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return "", errors.Errorf("fasta: sequence not found: %s", seqName)
	}
	if end <= start {
		return "", errors.Errorf("fasta: start must be less than end")
	}
	if end > uint64(len(s)) {
		return "", errors.Errorf("fasta: range %d-%d out of bounds for %s (length %d)",
			start, end, seqName, len(s))
	}
	return s[start:end], nil
}

// Len returns the length of the named sequence.
func (f *Fasta) Len(seqName string) (uint64, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return 0, errors.Errorf("fasta: sequence not found: %s", seqName)
	}
	return uint64(len(s)), nil
}

// SeqNames returns every sequence name, in file order.
func (f *Fasta) SeqNames() []string {
	return f.seqNames
}
