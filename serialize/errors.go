package serialize

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Kind categorizes the failure modes this package raises, mirroring the
// acgtrie package's own Kind/Error pair rather than assuming Kind
// constants this module never confirmed grailbio/base/errors exports.
type Kind int

const (
	_ Kind = iota
	// CorruptFile means the header or row records could not be parsed:
	// a missing HEADER_START/HEADER_END marker, malformed JSON, a header
	// declaring zero rows, fewer row bytes than the header's row count
	// needs, or a child index that points past the end of the row table.
	// Bytes after the last declared row are not checked.
	CorruptFile
)

func (k Kind) String() string {
	switch k {
	case CorruptFile:
		return "corrupt file"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind, so callers can test
// serialize.IsKind(err, serialize.CorruptFile) without depending on
// sentinel values from the underlying I/O or JSON packages.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func newCorruptFileError(format string, args ...interface{}) error {
	return &Error{Kind: CorruptFile, err: errors.E(fmt.Sprintf(format, args...))}
}

// IsKind reports whether err, or any error it wraps, is a *Error of kind k.
func IsKind(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == k {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
