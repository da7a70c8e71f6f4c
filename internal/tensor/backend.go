package tensor

// Backend defines the numeric-operations abstraction that the StaticVectors
// layer and its collaborators are written against. Backends handle the actual
// computation for tensor operations.
//
// Implementations:
//   - CPU: Pure Go kernels (internal/backend/cpu)
//   - WebGPU: GPU compute via WGSL shaders (internal/backend/webgpu)
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Matrix operations
	// MatMul: [M, K] @ [K, N] -> [M, N]
	MatMul(a, b *RawTensor) *RawTensor
	// Transpose swaps the two axes of a 2D tensor.
	Transpose(t *RawTensor) *RawTensor

	// Rows gathers rows from a 2D table by index: table [V, M], ids [N]
	// (uint64) -> [N, M]. Indices must already be in range; out-of-vocabulary
	// policy is the caller's concern.
	Rows(table, ids *RawTensor) *RawTensor

	// DropoutMask draws a fresh scaled dropout mask of the given shape at the
	// given drop rate. Returns nil when rate <= 0 (the trivial mask). Kept
	// elements carry 1/(1-rate) so activations keep their expected scale.
	DropoutMask(shape Shape, rate float32) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
