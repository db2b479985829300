// Package serialize implements the on-disk format for an ACGTrie: a
// line-oriented JSON header followed by one fixed-width 28-byte binary
// record per row, in row-index order.
package serialize

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	"github.com/grailbio/base/errors"
)

const (
	headerStartLine = "HEADER_START\n"
	headerEndLine   = "HEADER_END\n"
	// headerTotalLines is the total number of lines the header occupies,
	// including HEADER_START and HEADER_END themselves.
	headerTotalLines = 100
	// headerJSONMaxLines is the largest pretty-printed JSON rendering
	// that still fits between HEADER_START and HEADER_END; beyond that,
	// the JSON is written dense on a single line instead.
	headerJSONMaxLines = headerTotalLines - 2
)

// Header carries the metadata that precedes a trie's row records.
type Header struct {
	Structs          map[string]string `json:"structs"`
	Fragments        uint64            `json:"fragments"`
	FragmentAvgLen   float64           `json:"fragmentAvgLen"`
	Rows             uint32            `json:"rows"`
	AnalysisTime     string            `json:"analysisTime"`
	AnalysisDuration float64           `json:"analysisDuration"`

	// CountOverflow maps a row index to its true count, for rows whose
	// count exceeded uint32's range. Empty (and omitted) if none
	// overflowed.
	CountOverflow map[uint32]uint64 `json:"countOverflow,omitempty"`
	// WarpOverflow maps a row index to its true child row index, for
	// children whose index exceeded uint32's range. Empty (and omitted)
	// if none overflowed.
	WarpOverflow map[uint32]uint64 `json:"warpOverflow,omitempty"`
}

// DefaultStructs is the "structs" field value this package always writes:
// five uint32 columns (four child pointers and count) and one int64 column
// (the packed sequence).
var DefaultStructs = map[string]string{
	"count": "uint32",
	"a":     "uint32",
	"c":     "uint32",
	"g":     "uint32",
	"t":     "uint32",
	"seq":   "int64",
}

// encodeHeader renders h as the HEADER_START/.../HEADER_END block,
// padding with blank lines so the block is always exactly
// headerTotalLines lines long.
func encodeHeader(h Header) ([]byte, error) {
	if h.Structs == nil {
		h.Structs = DefaultStructs
	}

	pretty, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, errors.E(err, "serialize.encodeHeader: marshal")
	}
	body := pretty
	if bytes.Count(pretty, []byte("\n"))+1 > headerJSONMaxLines {
		dense, err := json.Marshal(h)
		if err != nil {
			return nil, errors.E(err, "serialize.encodeHeader: marshal dense")
		}
		body = dense
	}

	var buf bytes.Buffer
	buf.WriteString(headerStartLine)
	buf.Write(body)
	buf.WriteByte('\n')

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	for lines < headerTotalLines-1 {
		buf.WriteByte('\n')
		lines++
	}
	buf.WriteString(headerEndLine)
	return buf.Bytes(), nil
}

// decodeHeader reads exactly the header block from r (HEADER_START through
// HEADER_END) and parses the JSON object it contains.
func decodeHeader(r *bufio.Reader) (Header, error) {
	var h Header

	start, err := r.ReadString('\n')
	if err != nil {
		return h, newCorruptFileError("reading HEADER_START: %v", err)
	}
	if start != headerStartLine {
		return h, newCorruptFileError("expected HEADER_START, got %q", start)
	}

	var jsonLines []string
	for i := 0; i < headerTotalLines-2; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return h, newCorruptFileError("reading header body (line %d): %v", i, err)
		}
		jsonLines = append(jsonLines, line)
	}
	end, err := r.ReadString('\n')
	if err != nil {
		return h, newCorruptFileError("reading HEADER_END: %v", err)
	}
	if end != headerEndLine {
		return h, newCorruptFileError("expected HEADER_END on line %d, got %q", headerTotalLines, end)
	}

	jsonText := strings.TrimSpace(strings.Join(jsonLines, ""))
	if jsonText == "" {
		return h, newCorruptFileError("empty header JSON")
	}
	if err := json.Unmarshal([]byte(jsonText), &h); err != nil {
		return h, newCorruptFileError("malformed header JSON: %v", err)
	}
	return h, nil
}
