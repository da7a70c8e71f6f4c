//go:build windows

package webgpu

import (
	"fmt"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// MatMul performs matrix multiplication on the GPU.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := other.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := b.runMatMul(a, other, m, k, n)
	if err != nil {
		panic(fmt.Sprintf("webgpu matmul: %v", err))
	}
	return result
}

// Mul performs element-wise multiplication. Same-shape float32 operands run
// on the GPU; broadcasting shapes fall back to the CPU kernels.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() == tensor.Float32 && a.Shape().Equal(other.Shape()) {
		result, err := b.runMul(a, other)
		if err == nil {
			return result
		}
	}
	return b.fallback.Mul(a, other)
}

// Add performs element-wise addition (CPU fallback).
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.fallback.Add(a, other)
}

// Sub performs element-wise subtraction (CPU fallback).
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.fallback.Sub(a, other)
}

// Div performs element-wise division (CPU fallback).
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.fallback.Div(a, other)
}

// MulScalar multiplies every element by a scalar (CPU fallback).
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.fallback.MulScalar(x, scalar)
}

// Transpose swaps the two axes of a 2D tensor (CPU fallback).
func (b *Backend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	return b.fallback.Transpose(t)
}

// Rows gathers rows from a 2D table by index (CPU fallback; the gather is
// memory-bound and the table lives in host memory anyway).
func (b *Backend) Rows(table, ids *tensor.RawTensor) *tensor.RawTensor {
	return b.fallback.Rows(table, ids)
}

// DropoutMask draws a fresh scaled dropout mask (CPU fallback).
func (b *Backend) DropoutMask(shape tensor.Shape, rate float32) *tensor.RawTensor {
	return b.fallback.DropoutMask(shape, rate)
}
