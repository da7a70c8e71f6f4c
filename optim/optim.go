// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/staticvec-ml/staticvec/internal/optim"
)

// Callback applies an optimizer update to one layer's flat parameter and
// gradient buffers, keyed by layer.
type Callback = optim.Callback

// SGD implements stochastic gradient descent with optional momentum over
// flat parameter buffers.
type SGD = optim.SGD

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	backprop(grads, sgd.Step)
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
