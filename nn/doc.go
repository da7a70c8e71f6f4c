// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the StaticVectors embedding layer:
// the layer itself, the word-ids tokenization adapter, trainable parameters,
// and weight initializers.
//
// Example:
//
//	registry := vectors.NewRegistry()
//	registry.Register("en", table)
//
//	backend := cpu.New()
//	layer, err := nn.NewStaticVectors("en", 128, registry, backend, nn.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids := nn.FlattenIDs(nn.WordIDs(docs, 1, nil))
//	output, backprop, err := layer.BeginUpdate(ids, 0.2)
package nn
