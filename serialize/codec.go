package serialize

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/JohnLonginotto/ACGTrie/acgtrie"
)

func errWrap(err error, format string, args ...interface{}) error {
	return errors.E(err, fmt.Sprintf(format, args...))
}

// recordSize is the on-disk width of one row: four uint32 child columns
// plus a uint32 count plus an int64 packed sequence, each little-endian.
const recordSize = 4*4 + 4 + 8

// Row.Child is indexed by up2bit base value (A=0, C=1, T=2, G=3), while
// records on disk are written in file-suffix order (A, C, G, T). These
// constants are the up2bit-value indices into Row.Child, named by the
// on-disk column they correspond to, so the field order below reads the
// same as the file layout.
const (
	up2bitA = 0
	up2bitC = 1
	up2bitG = 3
	up2bitT = 2
)

// WriteTrie writes h followed by one recordSize-byte record per row of s,
// to path. Row records are written in file-suffix column order (A, C, G,
// T, count, seq), which differs from up2bit's in-memory base value order
// (A=0, C=1, T=2, G=3) — see acgtrie.Store's doc comment for why T and G
// swap between the two orderings.
func WriteTrie(ctx context.Context, path string, s *acgtrie.Store, h Header) error {
	h.Rows = s.Len()

	out, err := file.Create(ctx, path)
	if err != nil {
		return errWrap(err, "serialize.WriteTrie: create %s", path)
	}
	defer out.Close(ctx) // nolint: errcheck

	w := bufio.NewWriterSize(out.Writer(ctx), 1<<20)

	header, err := encodeHeader(h)
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return errWrap(err, "serialize.WriteTrie: writing header")
	}

	var rec [recordSize]byte
	for i := uint32(0); i < s.Len(); i++ {
		r := s.Get(i)
		binary.LittleEndian.PutUint32(rec[0:4], r.Child[up2bitA])
		binary.LittleEndian.PutUint32(rec[4:8], r.Child[up2bitC])
		binary.LittleEndian.PutUint32(rec[8:12], r.Child[up2bitG])
		binary.LittleEndian.PutUint32(rec[12:16], r.Child[up2bitT])
		binary.LittleEndian.PutUint32(rec[16:20], r.Count)
		binary.LittleEndian.PutUint64(rec[20:28], uint64(r.Seq))
		if _, err := w.Write(rec[:]); err != nil {
			return errWrap(err, "serialize.WriteTrie: writing row %d", i)
		}
	}

	if err := w.Flush(); err != nil {
		return errWrap(err, "serialize.WriteTrie: flush")
	}
	return out.Close(ctx)
}

// ReadTrie reads a trie file written by WriteTrie and reconstructs an
// equivalent acgtrie.Store.
func ReadTrie(ctx context.Context, path string) (*acgtrie.Store, Header, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, Header{}, errWrap(err, "serialize.ReadTrie: open %s", path)
	}
	defer in.Close(ctx) // nolint: errcheck

	r := bufio.NewReaderSize(in.Reader(ctx), 1<<20)
	h, err := decodeHeader(r)
	if err != nil {
		return nil, Header{}, err
	}

	if h.Rows == 0 {
		return nil, Header{}, newCorruptFileError("header declares 0 rows; row 0 (the root) is always present")
	}

	// acgtrie.New already allocates row 0 (the root); every other row is
	// appended via Alloc, which hands back indices in the same
	// 1, 2, 3, ... order WriteTrie wrote them in.
	s := acgtrie.New(int(h.Rows))
	var rec [recordSize]byte
	for i := uint32(0); i < h.Rows; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, Header{}, newCorruptFileError("row %d: %v", i, err)
		}
		row := acgtrie.Row{
			Count: binary.LittleEndian.Uint32(rec[16:20]),
			Seq:   uint64(binary.LittleEndian.Uint64(rec[20:28])),
		}
		row.Child[up2bitA] = binary.LittleEndian.Uint32(rec[0:4])
		row.Child[up2bitC] = binary.LittleEndian.Uint32(rec[4:8])
		row.Child[up2bitG] = binary.LittleEndian.Uint32(rec[8:12])
		row.Child[up2bitT] = binary.LittleEndian.Uint32(rec[12:16])

		if i == 0 {
			s.Set(acgtrie.Root, row)
			continue
		}
		idx, err := s.Alloc()
		if err != nil {
			return nil, Header{}, errWrap(err, "serialize.ReadTrie: row %d", i)
		}
		s.Set(idx, row)
	}

	for i := uint32(0); i < h.Rows; i++ {
		r := s.Get(i)
		for _, c := range r.Child {
			if c != 0 && c >= h.Rows {
				return nil, Header{}, newCorruptFileError("row %d: child index %d out of range (rows=%d)", i, c, h.Rows)
			}
		}
	}

	return s, h, nil
}
