// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the optimizer callback contract and the flat-buffer
// SGD optimizer. Layers never update their own weights: their backward pass
// hands flat parameter and gradient buffers to a Callback together with a
// layer-identifying key.
package optim
