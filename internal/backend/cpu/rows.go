package cpu

import (
	"fmt"

	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// Rows gathers rows from a 2D table by index.
// table [V, M] (float32), ids [N] (uint64) -> [N, M].
//
// Indices must already be in range; callers enforce their own
// out-of-vocabulary policy before the gather.
func (cpu *CPUBackend) Rows(table, ids *tensor.RawTensor) *tensor.RawTensor {
	tShape := table.Shape()
	if len(tShape) != 2 {
		panic(fmt.Sprintf("rows: table must be 2D, got %dD", len(tShape)))
	}
	if ids.DType() != tensor.Uint64 {
		panic(fmt.Sprintf("rows: ids must be uint64, got %s", ids.DType()))
	}
	if table.DType() != tensor.Float32 {
		panic(fmt.Sprintf("rows: table must be float32, got %s", table.DType()))
	}

	numRows, width := tShape[0], tShape[1]
	idx := ids.AsUint64()

	result, err := tensor.NewRaw(tensor.Shape{len(idx), width}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("rows: failed to create result tensor: %v", err))
	}

	src := table.AsFloat32()
	dst := result.AsFloat32()
	for i, id := range idx {
		if id >= uint64(numRows) {
			panic(fmt.Sprintf("rows: index %d out of range for table with %d rows", id, numRows))
		}
		copy(dst[i*width:(i+1)*width], src[int(id)*width:(int(id)+1)*width])
	}

	return result
}
