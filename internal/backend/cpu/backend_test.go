package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

func rawFrom(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestMatMul(t *testing.T) {
	b := New()

	// (2,3) x (3,2) -> (2,2)
	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	x := rawFrom(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := b.MatMul(a, x)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{58, 64, 139, 154}, out.AsFloat32())
}

func TestMatMul_DimensionMismatch(t *testing.T) {
	b := New()

	a := rawFrom(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	x := rawFrom(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	assert.Panics(t, func() { b.MatMul(a, x) })
}

func TestTranspose(t *testing.T) {
	b := New()

	a := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := b.Transpose(a)

	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.AsFloat32())
}

func TestMul_Broadcast(t *testing.T) {
	b := New()

	// A (1, nO) mask multiplied into a (N, nO) batch.
	batch := rawFrom(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	mask := rawFrom(t, []float32{2, 0, 2}, tensor.Shape{1, 3})

	out := b.Mul(batch, mask)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{2, 0, 6, 8, 0, 12}, out.AsFloat32())
}

func TestAddSubDiv(t *testing.T) {
	b := New()

	a := rawFrom(t, []float32{4, 9, 16}, tensor.Shape{3})
	x := rawFrom(t, []float32{2, 3, 4}, tensor.Shape{3})

	assert.Equal(t, []float32{6, 12, 20}, b.Add(a, x).AsFloat32())
	assert.Equal(t, []float32{2, 6, 12}, b.Sub(a, x).AsFloat32())
	assert.Equal(t, []float32{2, 3, 4}, b.Div(a, x).AsFloat32())
}

func TestMulScalar(t *testing.T) {
	b := New()

	a := rawFrom(t, []float32{1, -2, 3}, tensor.Shape{3})
	out := b.MulScalar(a, float32(0.5))
	assert.Equal(t, []float32{0.5, -1, 1.5}, out.AsFloat32())
}

func TestRows(t *testing.T) {
	b := New()

	table := rawFrom(t, []float32{
		0, 0, // row 0
		1, 2, // row 1
		3, 4, // row 2
	}, tensor.Shape{3, 2})

	ids, err := tensor.NewRaw(tensor.Shape{3}, tensor.Uint64, tensor.CPU)
	require.NoError(t, err)
	copy(ids.AsUint64(), []uint64{2, 0, 2})

	out := b.Rows(table, ids)
	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{3, 4, 0, 0, 3, 4}, out.AsFloat32())
}

func TestRows_OutOfRange(t *testing.T) {
	b := New()

	table := rawFrom(t, []float32{1, 2}, tensor.Shape{1, 2})
	ids, err := tensor.NewRaw(tensor.Shape{1}, tensor.Uint64, tensor.CPU)
	require.NoError(t, err)
	ids.AsUint64()[0] = 5

	assert.Panics(t, func() { b.Rows(table, ids) })
}

func TestDropoutMask_Disabled(t *testing.T) {
	b := New()
	assert.Nil(t, b.DropoutMask(tensor.Shape{1, 8}, 0))
	assert.Nil(t, b.DropoutMask(tensor.Shape{1, 8}, -0.5))
}

func TestDropoutMask_Scaling(t *testing.T) {
	b := New()

	rate := float32(0.25)
	keep := 1 / (1 - rate)

	mask := b.DropoutMask(tensor.Shape{1, 1000}, rate)
	require.NotNil(t, mask)
	assert.True(t, mask.Shape().Equal(tensor.Shape{1, 1000}))

	kept := 0
	for _, v := range mask.AsFloat32() {
		if v != 0 {
			assert.InDelta(t, keep, v, 1e-6)
			kept++
		}
	}
	// Roughly 75% of entries survive.
	assert.Greater(t, kept, 650)
	assert.Less(t, kept, 850)
}

func TestDropoutMask_FullDropPanics(t *testing.T) {
	b := New()
	assert.Panics(t, func() { b.DropoutMask(tensor.Shape{1, 4}, 1) })
}
