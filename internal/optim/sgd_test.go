package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSGD_Defaults(t *testing.T) {
	sgd := NewSGD(SGDConfig{})
	assert.Equal(t, float32(0.01), sgd.GetLR())
}

func TestSGD_Step(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1})

	weights := []float32{1, 2, 3}
	grads := []float32{1, -1, 0.5}

	sgd.Step(weights, grads, "layer-a")

	assert.InDeltaSlice(t, []float32{0.9, 2.1, 2.95}, weights, 1e-6)
	// The accumulator is consumed.
	assert.Equal(t, []float32{0, 0, 0}, grads)
}

func TestSGD_Momentum(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1, Momentum: 0.9})

	weights := []float32{1}

	grads := []float32{1}
	sgd.Step(weights, grads, "layer-a")
	// v = 1, w = 1 - 0.1*1 = 0.9
	assert.InDelta(t, 0.9, weights[0], 1e-6)

	grads[0] = 1
	sgd.Step(weights, grads, "layer-a")
	// v = 0.9*1 + 1 = 1.9, w = 0.9 - 0.19 = 0.71
	assert.InDelta(t, 0.71, weights[0], 1e-6)
}

// Velocities are per layer key: two layers sharing one optimizer must not
// share momentum state.
func TestSGD_MomentumPerKey(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1, Momentum: 0.9})

	a := []float32{1}
	b := []float32{1}

	sgd.Step(a, []float32{1}, "layer-a")
	sgd.Step(a, []float32{1}, "layer-a")
	sgd.Step(b, []float32{1}, "layer-b")

	assert.InDelta(t, 0.71, a[0], 1e-6)
	assert.InDelta(t, 0.9, b[0], 1e-6)
}

func TestSGD_SetLR(t *testing.T) {
	sgd := NewSGD(SGDConfig{LR: 0.1})
	sgd.SetLR(0.001)
	assert.Equal(t, float32(0.001), sgd.GetLR())
}
