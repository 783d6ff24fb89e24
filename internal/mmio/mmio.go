// Package mmio is a minimal MatrixMarket coordinate-real reader, kept
// internal since it is a non-core convenience rather than a supported
// public I/O surface (spec.md §1 lists file I/O as out of scope as a
// component; SPEC_FULL.md §9 keeps it around anyway for feeding literal
// fixture matrices into the end-to-end scenario tests). Grounded in
// gonum's linsolve/internal/mmarket reader, adapted to build a
// matrix.COO directly instead of an intermediate triplet type.
package mmio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gridsolve/resolve/matrix"
)

var (
	errBadFormat   = errors.New("mmio: bad file format")
	errUnsupported = errors.New("mmio: matrix type not supported")
)

// ReadMatrix parses a MatrixMarket "coordinate real" file (general or
// symmetric) from r and returns it as a COO matrix, 0-indexed. Symmetric
// input is marked symmetric but not expanded: only the stored triangle
// is returned, and matrix.COOToCSR mirrors it.
func ReadMatrix(r io.Reader) (*matrix.COO, error) {
	s := bufio.NewScanner(r)

	if !s.Scan() {
		return nil, errBadFormat
	}
	header := strings.Fields(s.Text())
	if len(header) < 5 || header[0] != "%%MatrixMarket" {
		return nil, errBadFormat
	}
	if header[1] != "matrix" || header[2] != "coordinate" {
		return nil, errBadFormat
	}
	if header[3] != "real" {
		return nil, errUnsupported
	}
	symmetric := header[4] == "symmetric"

	var nr, nc, nnz int
	for s.Scan() {
		line := s.Text()
		if line == "" || line[0] == '%' {
			continue
		}
		if n, err := fmt.Sscan(line, &nr, &nc, &nnz); err != nil || n != 3 {
			return nil, errBadFormat
		}
		break
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if symmetric && nr != nc {
		return nil, errBadFormat
	}

	rows := make([]int, 0, nnz)
	cols := make([]int, 0, nnz)
	vals := make([]float64, 0, nnz)
	for i := 0; i < nnz; i++ {
		if !s.Scan() {
			return nil, errBadFormat
		}
		var row, col int
		var v float64
		if n, err := fmt.Sscan(s.Text(), &row, &col, &v); err != nil || n != 3 {
			return nil, errBadFormat
		}
		if row < 1 || row > nr || col < 1 || col > nc {
			return nil, errBadFormat
		}
		rows = append(rows, row-1)
		cols = append(cols, col-1)
		vals = append(vals, v)
	}

	c := matrix.NewCOOFromArrays(nr, nc, rows, cols, vals)
	if symmetric {
		c.SetSymmetric(false)
	}
	return c, nil
}

// ReadVector parses a whitespace-separated list of real values, one per
// line, comments (lines starting with '%') skipped - enough to load the
// dense right-hand-side fixtures the scenario tests need alongside a
// MatrixMarket coefficient matrix.
func ReadVector(r io.Reader) ([]float64, error) {
	s := bufio.NewScanner(r)
	var out []float64
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '%' {
			continue
		}
		var v float64
		if _, err := fmt.Sscan(line, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
