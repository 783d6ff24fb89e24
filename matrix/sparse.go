// Package matrix provides the dual-residency sparse matrix containers
// (COO, CSR, CSC) and their format conversions, per SPEC_FULL.md §5.2 /
// spec.md §3-4.1. Each type implements gonum.org/v1/gonum/mat.Matrix so
// it interoperates with the wider gonum ecosystem, following the
// teacher's (github.com/james-bowman/sparse) convention of implementing
// mat.Matrix directly on every sparse format.
package matrix

import (
	"sync/atomic"

	"github.com/gridsolve/resolve"
)

var tokenCounter uint64

func nextToken() uint64 {
	return atomic.AddUint64(&tokenCounter, 1)
}

// Format identifies a sparse storage layout.
type Format int

const (
	FormatCOO Format = iota
	FormatCSR
	FormatCSC
)

func (f Format) String() string {
	switch f {
	case FormatCOO:
		return "COO"
	case FormatCSR:
		return "CSR"
	case FormatCSC:
		return "CSC"
	default:
		return "unknown"
	}
}

// sparse carries the logical attributes shared by every format: shape,
// nominal and expanded nonzero counts, symmetric/expanded flags, and the
// handler identity token described in spec.md §9 ("the handler caches
// descriptors keyed by a stable matrix identifier issued by the matrix on
// first registration").
type sparse struct {
	n, m        int
	nnz         int
	nnzExpanded int
	symmetric   bool
	expanded    bool
	token       uint64
}

// Dims returns the number of rows and columns.
func (s *sparse) Dims() (int, int) { return s.n, s.m }

// NNZ returns the nominal (as-stored) nonzero count.
func (s *sparse) NNZ() int { return s.nnz }

// NNZExpanded returns the expanded nonzero count (>= NNZ once a
// symmetric matrix has been expanded to store both triangles).
func (s *sparse) NNZExpanded() int {
	if s.expanded {
		return s.nnzExpanded
	}
	return s.nnz
}

// Symmetric reports whether the logical matrix is symmetric.
func (s *sparse) Symmetric() bool { return s.symmetric }

// Expanded reports whether both triangles are materialized in storage.
func (s *sparse) Expanded() bool { return s.expanded }

// Token returns the stable opaque identity a handler keys its descriptor
// cache on, assigning one lazily on first use.
func (s *sparse) Token() uint64 {
	if s.token == 0 {
		s.token = nextToken()
	}
	return s.token
}

func checkSpace(space resolve.Space) {
	if space != resolve.Host && space != resolve.Device {
		panic("resolve/matrix: invalid memory space")
	}
}
