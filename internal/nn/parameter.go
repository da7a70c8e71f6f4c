package nn

import (
	"fmt"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are tensors that require gradient computation during training.
// The gradient buffer is an accumulator: backward passes add into it, and it
// is consumed (and reset) by the optimizer. Repeated backward calls without
// an intervening optimizer step therefore sum their contributions.
//
// Example:
//
//	weight := nn.NewParameter("W", weightTensor)
//	weight.AccumulateGrad(delta)
//	sgd.Step(weight.FlatWeights(), weight.FlatGrad(), key)
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "W")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
	grad   *tensor.Tensor[float32, B] // Gradient accumulator (allocated on first use)
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
// The gradient accumulator is allocated lazily on the first backward pass.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient accumulator.
//
// Returns nil if no gradient has been accumulated yet.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// AccumulateGrad adds delta into the gradient accumulator.
// The accumulator is allocated zeroed on first use; subsequent calls sum.
func (p *Parameter[B]) AccumulateGrad(delta *tensor.Tensor[float32, B]) {
	if !p.tensor.Shape().Equal(delta.Shape()) {
		panic(fmt.Sprintf("parameter %s: gradient shape %v does not match weight shape %v",
			p.name, delta.Shape(), p.tensor.Shape()))
	}
	if p.grad == nil {
		p.grad = tensor.Zeros[float32](p.tensor.Shape(), p.tensor.Backend())
	}
	g := p.grad.Data()
	d := delta.Data()
	for i := range g {
		g[i] += d[i]
	}
}

// FlatWeights returns the parameter's flat float32 buffer.
// The slice aliases the parameter memory: optimizer updates through it are
// updates to the parameter.
func (p *Parameter[B]) FlatWeights() []float32 {
	return p.tensor.Data()
}

// FlatGrad returns the gradient accumulator's flat float32 buffer,
// allocating a zeroed accumulator if none exists yet.
func (p *Parameter[B]) FlatGrad() []float32 {
	if p.grad == nil {
		p.grad = tensor.Zeros[float32](p.tensor.Shape(), p.tensor.Backend())
	}
	return p.grad.Data()
}

// ZeroGrad resets the gradient accumulator in place.
// The buffer identity is preserved so optimizer callbacks holding the flat
// slice keep seeing the live accumulator.
func (p *Parameter[B]) ZeroGrad() {
	if p.grad == nil {
		return
	}
	g := p.grad.Data()
	for i := range g {
		g[i] = 0
	}
}
