// Package optim implements the optimizer callback contract and a flat-buffer
// SGD optimizer.
//
// Layers never update their own weights: the backward pass hands the flat
// parameter buffer, the flat gradient accumulator, and a layer-identifying
// key to a Callback, and the optimizer performs the update.
package optim

// Callback applies an optimizer update to one layer's parameters.
//
// weights and grads alias the layer's live buffers; key identifies the layer
// so the optimizer can associate per-layer state (momentum velocities etc.).
// Implementations consume the gradient accumulator: after the call, grads is
// zeroed.
type Callback func(weights, grads []float32, key string)
