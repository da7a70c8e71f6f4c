package optim

// SGD implements stochastic gradient descent with optional momentum over
// flat parameter buffers.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Velocities are keyed by the layer key, so one SGD instance serves any
// number of layers.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	output, backprop, _ := layer.BeginUpdate(ids, 0.2)
//	backprop(grads, sgd.Step)
type SGD struct {
	lr         float32
	momentum   float32
	velocities map[string][]float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[string][]float32),
	}
}

// Step applies one update to a layer's flat buffers and zeroes the gradient
// accumulator. Step satisfies the Callback contract.
func (s *SGD) Step(weights, grads []float32, key string) {
	if s.momentum == 0 {
		for i := range weights {
			weights[i] -= s.lr * grads[i]
		}
	} else {
		v, ok := s.velocities[key]
		if !ok {
			v = make([]float32, len(weights))
			s.velocities[key] = v
		}
		for i := range weights {
			v[i] = s.momentum*v[i] + grads[i]
			weights[i] -= s.lr * v[i]
		}
	}

	// Consume the accumulator: the next backward pass starts from zero.
	for i := range grads {
		grads[i] = 0
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}
