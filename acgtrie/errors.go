package acgtrie

import (
	"github.com/grailbio/base/errors"
)

// Kind classifies the error conditions named in the spec this package
// implements (SequenceTooLong, CapacityExceeded, InvalidBase, CorruptFile).
type Kind int

// The four error kinds a conforming trie implementation surfaces.
const (
	_ Kind = iota
	// SequenceTooLong indicates an attempt to up2bit-encode more than
	// up2bit.MaxBases in one row; seeing this from the inserter
	// indicates a bug, since the inserter chain-appends instead.
	SequenceTooLong
	// CapacityExceeded indicates the row store could not grow further,
	// either because it hit the 2^32-1 row ceiling or the host is out
	// of memory. Fatal: the partial trie must be discarded.
	CapacityExceeded
	// InvalidBase indicates a non-ACGT character reached the inserter.
	InvalidBase
	// CorruptFile indicates a deserialized row's child index is out of
	// range, or the header is malformed.
	CorruptFile
)

func (k Kind) String() string {
	switch k {
	case SequenceTooLong:
		return "SequenceTooLong"
	case CapacityExceeded:
		return "CapacityExceeded"
	case InvalidBase:
		return "InvalidBase"
	case CorruptFile:
		return "CorruptFile"
	default:
		return "Unknown"
	}
}

// Error pairs a Kind with an underlying *errors.Error from
// github.com/grailbio/base/errors, so callers can type-switch on Kind
// while still getting that package's op-chaining and formatting.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func newError(k Kind, args ...interface{}) *Error {
	return &Error{Kind: k, err: errors.E(args...)}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	for err != nil {
		if ae, ok := err.(*Error); ok {
			return ae.Kind == k
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
