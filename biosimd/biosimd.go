// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd normalizes raw ASCII base calls the way the rest of this
// codebase expects them: uppercase A/C/G/T, everything else folded to 'N'.
package biosimd

var cleanASCIISeqTable = buildCleanASCIISeqTable()

func buildCleanASCIISeqTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	t['A'], t['a'] = 'A', 'A'
	t['C'], t['c'] = 'C', 'C'
	t['G'], t['g'] = 'G', 'G'
	t['T'], t['t'] = 'T', 'T'
	return t
}

// CleanASCIISeqInplace capitalizes 'a'/'c'/'g'/'t', and replaces everything
// else with 'N'.
func CleanASCIISeqInplace(ascii8 []byte) {
	for pos, b := range ascii8 {
		ascii8[pos] = cleanASCIISeqTable[b]
	}
}
