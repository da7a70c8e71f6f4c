package cpu

import (
	"fmt"
	"math/rand"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// DropoutMask draws a fresh scaled dropout mask of the given shape.
//
// Returns nil for rate <= 0: callers treat a nil mask as "no dropout" and
// skip the multiply entirely. Kept elements carry 1/(1-rate) (inverted
// dropout) so the expected activation scale is unchanged.
func (cpu *CPUBackend) DropoutMask(shape tensor.Shape, rate float32) *tensor.RawTensor {
	if rate <= 0 {
		return nil
	}
	if rate >= 1 {
		panic(fmt.Sprintf("dropout: rate must be < 1, got %v", rate))
	}

	mask, err := tensor.NewRaw(shape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("dropout: failed to create mask tensor: %v", err))
	}

	keep := 1 - rate
	scale := 1 / keep
	data := mask.AsFloat32()
	for i := range data {
		//nolint:gosec // math/rand is appropriate for dropout sampling
		if rand.Float32() < keep {
			data[i] = scale
		}
	}

	return mask
}
