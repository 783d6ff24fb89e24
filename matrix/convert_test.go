package matrix

import (
	"sort"
	"testing"
)

type triple struct {
	i, j int
	v    float64
}

func cooEntries(t *testing.T, c *COO) []triple {
	t.Helper()
	var out []triple
	c.DoNonZero(func(i, j int, v float64) {
		out = append(out, triple{i, j, v})
	})
	sort.Slice(out, func(a, b int) bool {
		if out[a].i != out[b].i {
			return out[a].i < out[b].i
		}
		return out[a].j < out[b].j
	})
	return out
}

// TestRoundTripCOOCSRCOO exercises spec.md §8 invariant 1: COO -> CSR ->
// COO preserves the multiset of (i, j, coalesced_v) entries.
func TestRoundTripCOOCSRCOO(t *testing.T) {
	rows := []int{0, 1, 2, 0, 2}
	cols := []int{0, 1, 2, 2, 0}
	vals := []float64{1, 2, 3, 4, 5}
	c := NewCOOFromArrays(3, 3, rows, cols, vals)

	csr, st := COOToCSR(c)
	if !st.OK() {
		t.Fatalf("COOToCSR: %v", st)
	}

	back := NewCOO(3, 3)
	csr.DoRowNonZero(0, func(row, col int, v float64) { back.Set(row, col, v) })
	csr.DoRowNonZero(1, func(row, col int, v float64) { back.Set(row, col, v) })
	csr.DoRowNonZero(2, func(row, col int, v float64) { back.Set(row, col, v) })

	want := []triple{{0, 0, 1}, {0, 2, 4}, {1, 1, 2}, {2, 0, 5}, {2, 2, 3}}
	got := cooEntries(t, back)
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestSymmetricExpansion exercises spec.md §8 invariant 2: for symmetric
// A, CSR after COO->CSR contains both (i,j) and (j,i) whenever i != j,
// and nnz_expanded >= nnz.
func TestSymmetricExpansion(t *testing.T) {
	rows := []int{0, 1, 2}
	cols := []int{0, 0, 1}
	vals := []float64{1, 2, 3}
	c := NewCOOFromArrays(3, 3, rows, cols, vals)
	c.SetSymmetric(false)

	csr, st := COOToCSR(c)
	if !st.OK() {
		t.Fatalf("COOToCSR: %v", st)
	}
	if csr.At(0, 1) != 2 || csr.At(1, 0) != 2 {
		t.Fatalf("expected mirrored (0,1)/(1,0) = 2, got %v / %v", csr.At(0, 1), csr.At(1, 0))
	}
	if csr.At(1, 2) != 3 || csr.At(2, 1) != 3 {
		t.Fatalf("expected mirrored (1,2)/(2,1) = 3, got %v / %v", csr.At(1, 2), csr.At(2, 1))
	}
	if csr.NNZExpanded() < csr.NNZ() {
		t.Fatalf("NNZExpanded() = %d < NNZ() = %d", csr.NNZExpanded(), csr.NNZ())
	}
}

// TestDuplicateCoalescingS6 exercises scenario S6: random COO with
// duplicate (i,j) pairs coalesces on conversion, nnz_expanded < nnz,
// and SpMV on the result matches SpMV on the manually coalesced matrix.
func TestDuplicateCoalescingS6(t *testing.T) {
	rows := []int{0, 0, 0, 1}
	cols := []int{0, 0, 1, 1}
	vals := []float64{2, 3, 4, 5} // (0,0) appears twice: 2+3=5
	c := NewCOOFromArrays(2, 2, rows, cols, vals)

	csr, st := COOToCSR(c)
	if !st.OK() {
		t.Fatalf("COOToCSR: %v", st)
	}
	if csr.NNZExpanded() >= len(vals) {
		t.Fatalf("NNZExpanded() = %d, want < %d after coalescing", csr.NNZExpanded(), len(vals))
	}
	if csr.At(0, 0) != 5 {
		t.Fatalf("coalesced (0,0) = %v, want 5", csr.At(0, 0))
	}

	coalesced := NewCSRFromArrays(2, 2, []int{0, 2, 3}, []int{0, 1, 1}, []float64{5, 4, 5})
	if coalesced.At(0, 0) != csr.At(0, 0) || coalesced.At(0, 1) != csr.At(0, 1) || coalesced.At(1, 1) != csr.At(1, 1) {
		t.Fatalf("coalesced matrix entries don't match converted CSR")
	}
}

// TestCSCToCSR exercises CSC -> CSR conversion via the COO intermediate.
func TestCSCToCSR(t *testing.T) {
	// A (2x2) = [[1, 2], [0, 3]] in CSC: col0={row0:1}, col1={row0:2, row1:3}
	csc := NewCSCFromArrays(2, 2, []int{0, 1, 3}, []int{0, 0, 1}, []float64{1, 2, 3})
	csr, st := CSCToCSR(csc)
	if !st.OK() {
		t.Fatalf("CSCToCSR: %v", st)
	}
	if csr.At(0, 0) != 1 || csr.At(0, 1) != 2 || csr.At(1, 1) != 3 || csr.At(1, 0) != 0 {
		t.Fatalf("unexpected CSR entries: %v %v %v %v", csr.At(0, 0), csr.At(0, 1), csr.At(1, 1), csr.At(1, 0))
	}
}
