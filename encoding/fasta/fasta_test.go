package fasta_test

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/JohnLonginotto/ACGTrie/encoding/fasta"
)

const fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"

func TestGet(t *testing.T) {
	tests := []struct {
		seq        string
		start, end uint64
		want       string
		wantErr    bool
	}{
		{"seq1", 1, 2, "C", false},
		{"seq1", 1, 6, "CGTAC", false},
		{"seq1", 0, 12, "ACGTACGTACGT", false},
		{"seq1", 10, 12, "GT", false},
		{"seq2", 0, 8, "ACGTACGT", false},
		{"seq2", 2, 5, "GTA", false},
		{"seq0", 0, 1, "", true},
		{"seq1", 10, 13, "", true},
		{"seq1", 4, 3, "", true},
	}
	f, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Fatalf("couldn't create Fasta: %v", err)
	}
	for _, tt := range tests {
		got, err := f.Get(tt.seq, tt.start, tt.end)
		if (err != nil) != tt.wantErr {
			t.Errorf("Get(%s, %d, %d): unexpected error state: %v", tt.seq, tt.start, tt.end, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%s, %d, %d): got %q, want %q", tt.seq, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		seq     string
		want    uint64
		wantErr bool
	}{
		{"seq1", 12, false},
		{"seq2", 8, false},
		{"seq0", 0, true},
	}
	f, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Fatalf("couldn't create Fasta: %v", err)
	}
	for _, tt := range tests {
		got, err := f.Len(tt.seq)
		if (err != nil) != tt.wantErr {
			t.Errorf("Len(%s): unexpected error state: %v", tt.seq, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Len(%s): got %d, want %d", tt.seq, got, tt.want)
		}
	}
}

func TestSeqNames(t *testing.T) {
	f, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Fatalf("couldn't create Fasta: %v", err)
	}
	want := sort.StringSlice([]string{"seq1", "seq2"})
	want.Sort()
	got := sort.StringSlice(f.SeqNames())
	got.Sort()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOptClean(t *testing.T) {
	f, err := fasta.New(strings.NewReader(">seq1\nacgtNnacgt\n"), fasta.OptClean)
	if err != nil {
		t.Fatalf("couldn't create Fasta: %v", err)
	}
	got, err := f.Get("seq1", 0, 10)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := "ACGTNNACGT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
