// Package backend selects a compute backend at startup.
//
// Rather than conditionally importing an accelerator library, the toolkit
// enumerates the backends actually usable on the running system and picks
// the best one, falling back to the pure-Go CPU kernels.
package backend

import (
	"github.com/staticvec-ml/staticvec/internal/backend/cpu"
	"github.com/staticvec-ml/staticvec/internal/tensor"
)

// Select returns the best available backend: WebGPU when an adapter can be
// initialized, otherwise CPU.
func Select() tensor.Backend {
	if gpu := probeWebGPU(); gpu != nil {
		return gpu
	}
	return cpu.New()
}

// Available returns the names of the backends usable on this system.
// CPU is always present.
func Available() []string {
	names := []string{"CPU"}
	if gpu := probeWebGPU(); gpu != nil {
		names = append(names, gpu.Name())
		releaseBackend(gpu)
	}
	return names
}
