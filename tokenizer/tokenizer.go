// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer provides text tokenization for the StaticVec toolkit.
//
// It wraps the internal tiktoken implementation and produces documents the
// word-ids adapter can consume.
//
// Example:
//
//	tok, err := tokenizer.NewTikToken(tokenizer.EncodingCL100kBase)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	docs := tok.Docs(texts, table)
//	ids := nn.FlattenIDs(nn.WordIDs(docs, 1, nil))
package tokenizer

import (
	"github.com/staticvec-ml/staticvec/internal/tokenizer"
)

// Supported BPE encodings.
const (
	// EncodingCL100kBase is the encoding used by GPT-4 era models.
	EncodingCL100kBase = tokenizer.EncodingCL100kBase
	// EncodingP50kBase is the encoding used by GPT-3 era models.
	EncodingP50kBase = tokenizer.EncodingP50kBase
)

// TikToken wraps OpenAI BPE tokenizers.
type TikToken = tokenizer.TikToken

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}

// NewTikTokenForModel creates a TikToken tokenizer for a specific model.
//
// Example models: "gpt-4", "gpt-3.5-turbo".
func NewTikTokenForModel(modelName string) (*TikToken, error) {
	return tokenizer.NewTikTokenForModel(modelName)
}
