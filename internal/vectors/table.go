// Package vectors provides static embedding tables and the provider lookup
// the StaticVectors layer resolves its table through.
package vectors

import (
	"fmt"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// Table holds a static embedding table: a dense float32 matrix of shape
// [rows, width], with an optional word → row vocabulary for building lexical
// ids from text.
//
// A Table is immutable from the layer's perspective; replacing a table is
// done by swapping it in the registry, which is why consumers re-resolve the
// table on every forward pass.
type Table struct {
	data  *tensor.RawTensor
	vocab map[string]uint64
}

// NewTable wraps a raw tensor as an embedding table.
// The tensor must be 2D float32.
func NewTable(data *tensor.RawTensor) (*Table, error) {
	if len(data.Shape()) != 2 {
		return nil, fmt.Errorf("vectors: table must be 2D, got shape %v", data.Shape())
	}
	if data.DType() != tensor.Float32 {
		return nil, fmt.Errorf("vectors: table must be float32, got %s", data.DType())
	}
	return &Table{data: data}, nil
}

// FromSlice builds a table from a flat float32 slice.
func FromSlice(data []float32, rows, width int) (*Table, error) {
	if rows*width != len(data) {
		return nil, fmt.Errorf("vectors: shape [%d, %d] requires %d values, got %d", rows, width, rows*width, len(data))
	}
	raw, err := tensor.NewRaw(tensor.Shape{rows, width}, tensor.Float32, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("vectors: %w", err)
	}
	copy(raw.AsFloat32(), data)
	return &Table{data: raw}, nil
}

// Raw returns the underlying tensor.
func (t *Table) Raw() *tensor.RawTensor {
	return t.data
}

// Rows returns the number of rows (vocabulary size).
func (t *Table) Rows() int {
	return t.data.Shape()[0]
}

// Width returns the vector dimensionality.
func (t *Table) Width() int {
	return t.data.Shape()[1]
}

// SetVocab attaches a word → row mapping.
func (t *Table) SetVocab(vocab map[string]uint64) {
	t.vocab = vocab
}

// RowID looks up the table row for a word.
// Returns false when the word is absent or no vocabulary is attached.
func (t *Table) RowID(word string) (uint64, bool) {
	if t.vocab == nil {
		return 0, false
	}
	id, ok := t.vocab[word]
	return id, ok
}

// VocabSize returns the number of words in the attached vocabulary.
func (t *Table) VocabSize() int {
	return len(t.vocab)
}
