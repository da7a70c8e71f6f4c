package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is appropriate for weight initialization
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}

	return t
}

// LSUVInit rescales a StaticVectors projection until the layer produces
// unit-variance output on a sample id batch (layer-sequential unit variance).
//
// Each iteration runs a dropout-free forward pass, measures the output
// variance, and divides W by its square root. Stops once the variance is
// within tol of 1 or after maxIter iterations.
func LSUVInit[B tensor.Backend](layer *StaticVectors[B], sampleIDs []uint64, tol float32, maxIter int) error {
	if len(sampleIDs) == 0 {
		return fmt.Errorf("lsuv: sample batch is empty")
	}

	for i := 0; i < maxIter; i++ {
		output, _, err := layer.BeginUpdate(sampleIDs, 0)
		if err != nil {
			return fmt.Errorf("lsuv: %w", err)
		}

		v := variance(output.Data())
		if v == 0 {
			return fmt.Errorf("lsuv: output variance is 0, cannot rescale")
		}
		if math.Abs(float64(v)-1) <= float64(tol) {
			return nil
		}

		scale := float32(1 / math.Sqrt(float64(v)))
		w := layer.W().FlatWeights()
		for j := range w {
			w[j] *= scale
		}
	}

	return nil
}

// variance computes the population variance of a float32 slice.
func variance(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}

	var mean float64
	for _, v := range data {
		mean += float64(v)
	}
	mean /= float64(len(data))

	var sum float64
	for _, v := range data {
		d := float64(v) - mean
		sum += d * d
	}
	return float32(sum / float64(len(data)))
}
