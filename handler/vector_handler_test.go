package handler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridsolve/resolve/backend"
)

func TestVectorHandlerDotScalAxpy(t *testing.T) {
	h := NewVectorHandler(backend.NewHost())
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	require.Equal(t, 32.0, h.Dot(x, y))

	h.Scal(2, x)
	require.Equal(t, []float64{2, 4, 6}, x)

	h.Axpy(1, x, y)
	require.Equal(t, []float64{6, 9, 12}, y)
}

func TestVectorHandlerGemv(t *testing.T) {
	h := NewVectorHandler(backend.NewHost())
	v := []float64{1, 2, 3, 4}
	y := []float64{1, 1}
	x := []float64{0, 0}
	h.Gemv(false, 2, 2, 1, 0, v, y, x)
	require.Equal(t, []float64{4, 6}, x)
}
