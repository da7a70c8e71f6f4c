package nn

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/staticvec-ml/staticvec/internal/optim"
	"github.com/staticvec-ml/staticvec/internal/tensor"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

// ErrNoVectors is returned when the resolved vector table has zero feature
// columns: pretrained vectors were requested but never actually loaded.
var ErrNoVectors = errors.New("staticvectors: cannot use a vectors table with dimension 0 (are the pretrained vectors loaded?)")

// Backprop computes parameter gradients for one forward pass.
//
// It re-applies the forward pass's dropout mask to the incoming gradients,
// accumulates the batch outer product into the projection's gradient buffer,
// and, when sgd is non-nil, hands the flat weight and gradient buffers to it
// along with the layer key. Nothing is returned: the embedding table is
// frozen, so no gradient flows further back.
type Backprop[B tensor.Backend] func(gradients *tensor.Tensor[float32, B], sgd optim.Callback)

// Config holds StaticVectors configuration.
type Config struct {
	// DropFactor is stored on the layer but not read by the forward path;
	// it is reserved for variant layers that scale their dropout rate.
	DropFactor float32
}

// StaticVectors maps vocabulary ids to dense vectors from a precomputed
// embedding table and projects them through a learned linear map.
//
// The table is resolved through a Provider keyed by language/locale on every
// forward pass, so a table hot-swapped in the provider takes effect on the
// next call. Out-of-vocabulary ids (id >= table rows) alias to row 0: every
// id resolves to some vector deterministically, and the same id always
// receives the same vector.
//
// Only the projection W [nO, nM] is trained; the table is frozen.
type StaticVectors[B tensor.Backend] struct {
	lang       string
	nO         int // output width
	nM         int // table column count (vector dimensionality)
	nV         int // table row count at construction
	dropFactor float32
	w          *Parameter[B]
	provider   vectors.Provider
	backend    B
	key        string
}

// NewStaticVectors creates a StaticVectors layer.
//
// The vector table is fetched through the provider under the given locale
// key; nM and nV are derived from its shape and W [nO, nM] is initialized
// with Xavier uniform. Construction fails with ErrNoVectors when the fetched
// table has zero columns.
func NewStaticVectors[B tensor.Backend](lang string, nO int, provider vectors.Provider, backend B, cfg Config) (*StaticVectors[B], error) {
	table, err := provider.Vectors(lang)
	if err != nil {
		return nil, fmt.Errorf("staticvectors: %w", err)
	}

	nM := table.Width()
	if nM == 0 {
		return nil, ErrNoVectors
	}
	nV := table.Rows()

	w := NewParameter("W", Xavier(nM, nO, tensor.Shape{nO, nM}, backend))

	return &StaticVectors[B]{
		lang:       lang,
		nO:         nO,
		nM:         nM,
		nV:         nV,
		dropFactor: cfg.DropFactor,
		w:          w,
		provider:   provider,
		backend:    backend,
		key:        uuid.NewString(),
	}, nil
}

// Lang returns the locale key the layer resolves its table under.
func (s *StaticVectors[B]) Lang() string { return s.lang }

// NO returns the output width.
func (s *StaticVectors[B]) NO() int { return s.nO }

// NM returns the vector dimensionality.
func (s *StaticVectors[B]) NM() int { return s.nM }

// NV returns the table row count observed at construction.
func (s *StaticVectors[B]) NV() int { return s.nV }

// DropFactor returns the stored drop factor (unused by the forward path).
func (s *StaticVectors[B]) DropFactor() float32 { return s.dropFactor }

// W returns the projection parameter.
func (s *StaticVectors[B]) W() *Parameter[B] { return s.w }

// Key returns the layer-identifying key passed to optimizer callbacks.
func (s *StaticVectors[B]) Key() string { return s.key }

// Vectors resolves the layer's table through the provider.
// Resolved fresh on every call, never cached, so provider-side swaps are
// picked up immediately.
func (s *StaticVectors[B]) Vectors() (*vectors.Table, error) {
	return s.provider.Vectors(s.lang)
}

// BeginUpdate runs the forward pass and returns the projected output with a
// backprop for the backward pass.
//
// Steps:
//  1. Resolve the table (fresh, hot-swap tolerant).
//  2. Neutralize any id >= table rows to 0 before the gather — the OOV
//     aliasing policy.
//  3. Project the gathered vectors: output = gathered @ W^T.
//  4. Draw a dropout mask over the feature dimension at the given rate and,
//     when non-trivial, multiply it into the output.
func (s *StaticVectors[B]) BeginUpdate(ids []uint64, drop float32) (*tensor.Tensor[float32, B], Backprop[B], error) {
	table, err := s.Vectors()
	if err != nil {
		return nil, nil, fmt.Errorf("staticvectors: %w", err)
	}

	rows := uint64(table.Rows()) //nolint:gosec // G115: row count is non-negative

	// ids * (ids < rows): anything out of range collapses onto row 0.
	masked := make([]uint64, len(ids))
	for i, id := range ids {
		if id < rows {
			masked[i] = id
		}
	}

	idTensor, err := tensor.FromSlice(masked, tensor.Shape{len(masked)}, s.backend)
	if err != nil {
		return nil, nil, fmt.Errorf("staticvectors: %w", err)
	}

	gathered := tensor.New[float32, B](s.backend.Rows(table.Raw(), idTensor.Raw()), s.backend)

	// [n, nM] @ [nM, nO] -> [n, nO]
	output := gathered.MatMul(s.w.Tensor().Transpose())

	var mask *tensor.Tensor[float32, B]
	if raw := s.backend.DropoutMask(tensor.Shape{1, s.nO}, drop); raw != nil {
		mask = tensor.New[float32, B](raw, s.backend)
		output = output.Mul(mask)
	}

	backprop := func(gradients *tensor.Tensor[float32, B], sgd optim.Callback) {
		if mask != nil {
			gradients = gradients.Mul(mask)
		}
		// Batch outer product: [nO, n] @ [n, nM] -> [nO, nM], summed into d_W.
		s.w.AccumulateGrad(gradients.Transpose().MatMul(gathered))
		if sgd != nil {
			sgd(s.w.FlatWeights(), s.w.FlatGrad(), s.key)
		}
	}

	return output, backprop, nil
}

// Forward runs a prediction-only pass: no dropout and no backprop.
func (s *StaticVectors[B]) Forward(ids []uint64) (*tensor.Tensor[float32, B], error) {
	output, _, err := s.BeginUpdate(ids, 0)
	return output, err
}

// Parameters returns the list of trainable parameters.
func (s *StaticVectors[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{s.w}
}
