//go:build !windows

package backend

import (
	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// probeWebGPU reports no accelerator on platforms where the WebGPU backend
// is not built.
func probeWebGPU() tensor.Backend {
	return nil
}

func releaseBackend(tensor.Backend) {}
