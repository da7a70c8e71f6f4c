// Copyright 2025 StaticVec Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vectors provides the public API for static embedding tables:
// the table type, the locale-keyed provider/registry, and the text and
// native binary table formats.
package vectors

import (
	"io"

	"github.com/staticvec-ml/staticvec/internal/tensor"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

// Table holds a static embedding table: float32 [rows, width] plus an
// optional word → row vocabulary.
type Table = vectors.Table

// Provider resolves an embedding table by language/locale key.
type Provider = vectors.Provider

// Registry is a thread-safe Provider backed by an in-memory map.
type Registry = vectors.Registry

// Sentinel errors.
var (
	ErrNotFound           = vectors.ErrNotFound
	ErrBadMagic           = vectors.ErrBadMagic
	ErrUnsupportedVersion = vectors.ErrUnsupportedVersion
	ErrChecksumMismatch   = vectors.ErrChecksumMismatch
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return vectors.NewRegistry()
}

// NewTable wraps a raw tensor as an embedding table.
// The tensor must be 2D float32.
func NewTable(data *tensor.RawTensor) (*Table, error) {
	return vectors.NewTable(data)
}

// FromSlice builds a table from a flat float32 slice.
func FromSlice(data []float32, rows, width int) (*Table, error) {
	return vectors.FromSlice(data, rows, width)
}

// ReadText parses a word2vec-style text table.
func ReadText(r io.Reader) (*Table, error) {
	return vectors.ReadText(r)
}

// ReadTextFile loads a word2vec-style text table from disk.
func ReadTextFile(path string) (*Table, error) {
	return vectors.ReadTextFile(path)
}

// ReadBinary reads a table in the native SVEC binary format.
func ReadBinary(r io.Reader) (*Table, error) {
	return vectors.ReadBinary(r)
}

// ReadBinaryFile loads a native SVEC table from disk.
func ReadBinaryFile(path string) (*Table, error) {
	return vectors.ReadBinaryFile(path)
}

// WriteBinary writes a table in the native SVEC binary format.
func WriteBinary(w io.Writer, table *Table) error {
	return vectors.WriteBinary(w, table)
}

// WriteBinaryFile writes a native SVEC table to disk.
func WriteBinaryFile(path string, table *Table) error {
	return vectors.WriteBinaryFile(path, table)
}
