// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/staticvec-ml/staticvec/internal/nn"
	"github.com/staticvec-ml/staticvec/internal/tensor"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

// ErrNoVectors is returned when a layer is constructed over a vectors table
// with zero feature columns.
var ErrNoVectors = nn.ErrNoVectors

// Parameter represents a trainable parameter with an accumulating gradient
// buffer.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// StaticVectors maps vocabulary ids to dense vectors from a precomputed
// embedding table and projects them through a learned linear map.
type StaticVectors[B tensor.Backend] = nn.StaticVectors[B]

// Config holds StaticVectors configuration.
type Config = nn.Config

// Backprop computes parameter gradients for one forward pass.
type Backprop[B tensor.Backend] = nn.Backprop[B]

// NewStaticVectors creates a StaticVectors layer resolving its table through
// the provider under the given locale key.
//
// Example:
//
//	backend := cpu.New()
//	layer, err := nn.NewStaticVectors("en", 128, registry, backend, nn.Config{})
func NewStaticVectors[B tensor.Backend](lang string, nO int, provider vectors.Provider, backend B, cfg Config) (*StaticVectors[B], error) {
	return nn.NewStaticVectors(lang, nO, provider, backend, cfg)
}

// Token is the token-like object the word-ids adapter consumes.
type Token = nn.Token

// Doc is an ordered sequence of tokens.
type Doc = nn.Doc

// WordIDs converts a batch of documents into padded id sequences.
func WordIDs(docs []Doc, pad int, ignore func(Token) bool) [][]uint64 {
	return nn.WordIDs(docs, pad, ignore)
}

// FlattenIDs concatenates per-document sequences into a flat id batch.
func FlattenIDs(seqs [][]uint64) []uint64 {
	return nn.FlattenIDs(seqs)
}

// Xavier initializes a weight tensor with Xavier/Glorot uniform values.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// LSUVInit rescales a StaticVectors projection until the layer produces
// unit-variance output on a sample id batch.
func LSUVInit[B tensor.Backend](layer *StaticVectors[B], sampleIDs []uint64, tol float32, maxIter int) error {
	return nn.LSUVInit(layer, sampleIDs, tol, maxIter)
}
