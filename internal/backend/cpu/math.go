package cpu

import (
	"fmt"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// kernel is an element-wise binary operation over float64-widened operands.
type kernel func(a, b float64) float64

func addKernel(a, b float64) float64 { return a + b }
func subKernel(a, b float64) float64 { return a - b }
func mulKernel(a, b float64) float64 { return a * b }
func divKernel(a, b float64) float64 { return a / b }

// binaryOp applies an element-wise binary operation with NumPy-style
// broadcasting. Same-shape inputs take the fast contiguous path.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, k kernel) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		applyContiguous(name, result, a, b, k)
	} else {
		applyBroadcast(name, result, a, b, outShape, k)
	}

	return result
}

// applyContiguous runs the kernel over same-shape operands.
func applyContiguous(name string, result, a, b *tensor.RawTensor, k kernel) {
	switch a.DType() {
	case tensor.Float32:
		av, bv, rv := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := range av {
			rv[i] = float32(k(float64(av[i]), float64(bv[i])))
		}
	case tensor.Float64:
		av, bv, rv := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := range av {
			rv[i] = k(av[i], bv[i])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
}

// applyBroadcast runs the kernel with per-element index translation.
// Broadcast dimensions contribute a zero stride on the smaller operand.
func applyBroadcast(name string, result, a, b *tensor.RawTensor, outShape tensor.Shape, k kernel) {
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()
	n := outShape.NumElements()

	read := func(t *tensor.RawTensor, idx int) float64 {
		switch t.DType() {
		case tensor.Float32:
			return float64(t.AsFloat32()[idx])
		case tensor.Float64:
			return t.AsFloat64()[idx]
		default:
			panic(fmt.Sprintf("%s: unsupported dtype %s", name, t.DType()))
		}
	}

	write := func(idx int, v float64) {
		switch result.DType() {
		case tensor.Float32:
			result.AsFloat32()[idx] = float32(v)
		case tensor.Float64:
			result.AsFloat64()[idx] = v
		default:
			panic(fmt.Sprintf("%s: unsupported dtype %s", name, result.DType()))
		}
	}

	for flat := 0; flat < n; flat++ {
		aIdx, bIdx := 0, 0
		rem := flat
		for dim := 0; dim < len(outShape); dim++ {
			coord := rem / outStrides[dim]
			rem %= outStrides[dim]
			aIdx += coord * aStrides[dim]
			bIdx += coord * bStrides[dim]
		}
		write(flat, k(read(a, aIdx), read(b, bIdx)))
	}
}

// broadcastStrides returns strides for indexing a tensor of shape `in` as if
// it had shape `out`: missing and size-1 dimensions get stride 0.
func broadcastStrides(in, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for i := range out {
		j := i - offset
		if j < 0 || in[j] == 1 {
			strides[i] = 0
		} else {
			strides[i] = inStrides[j]
		}
	}
	return strides
}
